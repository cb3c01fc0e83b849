package querybuilder

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// fieldPlan is the exported, db-tagged field layout of one struct type.
type fieldPlan struct {
	columns []string
	index   []int
}

var plans sync.Map // reflect.Type -> *fieldPlan

func planFor(t reflect.Type) (*fieldPlan, error) {
	if cached, ok := plans.Load(t); ok {
		return cached.(*fieldPlan), nil
	}
	plan := &fieldPlan{}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		plan.columns = append(plan.columns, col)
		plan.index = append(plan.index, i)
	}
	if len(plan.columns) == 0 {
		return nil, fmt.Errorf("%s has no db columns", t)
	}
	actual, _ := plans.LoadOrStore(t, plan)
	return actual.(*fieldPlan), nil
}

func modelValue(model any) (reflect.Value, error) {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, errors.New("model cannot be nil")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, errors.New("model must be struct")
	}
	return v, nil
}

func (p *fieldPlan) values(v reflect.Value) []any {
	out := make([]any, len(p.index))
	for i, idx := range p.index {
		out[i] = v.Field(idx).Interface()
	}
	return out
}

// InsertModel builds a single-row insert from the db tags of model.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	v, err := modelValue(model)
	if err != nil {
		return "", nil, err
	}
	plan, err := planFor(v.Type())
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).Columns(plan.columns...).Values(plan.values(v)...).Suffix(suffix).ToSQL()
}

// InsertModels builds one multi-row insert from models of a single struct type.
func InsertModels[T any](table string, models []T, suffix string) (string, []any, error) {
	batches, err := InsertBatches(table, models, suffix, 0)
	if err != nil {
		return "", nil, err
	}
	if len(batches) != 1 {
		return "", nil, fmt.Errorf("insert into %s needs %d statements; use InsertBatches", table, len(batches))
	}
	return batches[0].SQL, batches[0].Args, nil
}

// InsertBatches splits models into multi-row inserts that each bind at most
// maxParams values. maxParams <= 0 means MaxBindParams.
func InsertBatches[T any](table string, models []T, suffix string, maxParams int) ([]Statement, error) {
	if len(models) == 0 {
		return nil, errors.New("models are required")
	}
	if maxParams <= 0 || maxParams > MaxBindParams {
		maxParams = MaxBindParams
	}

	first, err := modelValue(models[0])
	if err != nil {
		return nil, err
	}
	plan, err := planFor(first.Type())
	if err != nil {
		return nil, err
	}
	rowsPerStatement := maxParams / len(plan.columns)
	if rowsPerStatement == 0 {
		return nil, fmt.Errorf("%d columns exceed %d bind parameters", len(plan.columns), maxParams)
	}

	out := make([]Statement, 0, (len(models)+rowsPerStatement-1)/rowsPerStatement)
	for start := 0; start < len(models); start += rowsPerStatement {
		end := min(start+rowsPerStatement, len(models))
		builder := InsertInto(table).Columns(plan.columns...).Suffix(suffix)
		for i := start; i < end; i++ {
			v, err := modelValue(models[i])
			if err != nil {
				return nil, fmt.Errorf("model %d: %w", i, err)
			}
			builder.Values(plan.values(v)...)
		}
		st, err := builder.Statement()
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}
