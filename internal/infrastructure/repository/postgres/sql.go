package postgres

import (
	"database/sql"
	"errors"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isUniqueViolation understands both lib/pq and pgx errors since either driver can be configured.
func isUniqueViolation(err error) bool {
	return sqlStateOf(err) == uniqueViolationCode
}

func isForeignKeyViolation(err error) bool {
	return sqlStateOf(err) == foreignKeyViolationCode
}

func sqlStateOf(err error) string {
	if err == nil {
		return ""
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// jsonText encodes v for a nullable JSONB column. A nil input stays NULL.
// The value is passed as text because lib/pq would send []byte as bytea.
func jsonText[T any](v T, present bool) (*string, error) {
	if !present {
		return nil, nil
	}
	raw, err := sonic.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := string(raw)
	return &out, nil
}

func intsToInt64Array(items []int) pq.Int64Array {
	out := make(pq.Int64Array, 0, len(items))
	for _, v := range items {
		out = append(out, int64(v))
	}
	return out
}

func nonNilStrings(items []string) pq.StringArray {
	if items == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(items)
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	utc := t.UTC()
	return &utc
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.UTC()
}
