package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/match-crawler/internal/domain/timeline"
	qb "github.com/riskibarqy/match-crawler/internal/platform/querybuilder"
)

type TimelineRepository struct {
	db *sqlx.DB
}

func NewTimelineRepository(db *sqlx.DB) *TimelineRepository {
	return &TimelineRepository{db: db}
}

// InsertFrame stores one frame's participant snapshots and events atomically.
func (r *TimelineRepository) InsertFrame(ctx context.Context, gameID int64, frame timeline.Frame) error {
	if len(frame.ParticipantFrames) == 0 && len(frame.Events) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert frame tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if len(frame.ParticipantFrames) > 0 {
		rows := make([]participantFrameInsertModel, 0, len(frame.ParticipantFrames))
		for _, pf := range frame.ParticipantFrames {
			rows = append(rows, participantFrameModel(gameID, frame, pf))
		}
		statements, err := qb.InsertBatches("participant_frames", rows, "", qb.MaxBindParams)
		if err != nil {
			return fmt.Errorf("build insert participant frames query: %w", err)
		}
		for _, st := range statements {
			if _, err := tx.ExecContext(ctx, st.SQL, st.Args...); err != nil {
				if isUniqueViolation(err) {
					return fmt.Errorf("insert participant frames game_id=%d ts=%s: already stored: %w", gameID, frame.Timestamp, err)
				}
				return fmt.Errorf("insert participant frames game_id=%d ts=%s: %w", gameID, frame.Timestamp, err)
			}
		}
	}

	if len(frame.Events) > 0 {
		rows := make([]eventInsertModel, 0, len(frame.Events))
		for _, ev := range frame.Events {
			rows = append(rows, eventModel(gameID, ev))
		}
		statements, err := qb.InsertBatches("events", rows, "", qb.MaxBindParams)
		if err != nil {
			return fmt.Errorf("build insert events query: %w", err)
		}
		for _, st := range statements {
			if _, err := tx.ExecContext(ctx, st.SQL, st.Args...); err != nil {
				if isForeignKeyViolation(err) {
					return fmt.Errorf("insert events game_id=%d ts=%s: unknown participant: %w", gameID, frame.Timestamp, err)
				}
				return fmt.Errorf("insert events game_id=%d ts=%s: %w", gameID, frame.Timestamp, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert frame tx: %w", err)
	}
	return nil
}

func participantFrameModel(gameID int64, frame timeline.Frame, pf timeline.ParticipantFrame) participantFrameInsertModel {
	ts := pf.Timestamp
	if ts == 0 {
		ts = frame.Timestamp
	}
	out := participantFrameInsertModel{
		ParticipantID:       pf.ParticipantID,
		GameID:              gameID,
		TimestampMs:         ts.Milliseconds(),
		MinionsKilled:       pf.MinionsKilled,
		JungleMinionsKilled: pf.JungleMinionsKilled,
		TeamScore:           pf.TeamScore,
		DominionScore:       pf.DominionScore,
		TotalGold:           pf.TotalGold,
		CurrentGold:         pf.CurrentGold,
		Level:               pf.Level,
		XP:                  pf.XP,
	}
	if pf.Position != nil {
		x, y := pf.Position.X, pf.Position.Y
		out.PositionX, out.PositionY = &x, &y
	}
	return out
}

func eventModel(gameID int64, ev timeline.Event) eventInsertModel {
	out := eventInsertModel{
		GameID:                  gameID,
		Type:                    ev.Type,
		TimestampMs:             ev.Timestamp.Milliseconds(),
		ParticipantID:           ev.ParticipantID,
		KillerID:                ev.KillerID,
		VictimID:                ev.VictimID,
		CreatorID:               ev.CreatorID,
		AssistingParticipantIDs: pq.StringArray(ev.AssistingParticipantIDs),
		ItemID:                  ev.ItemID,
		BeforeID:                ev.BeforeID,
		AfterID:                 ev.AfterID,
		SkillSlot:               ev.SkillSlot,
		LevelUpType:             ev.LevelUpType,
		WardType:                ev.WardType,
		TowerType:               ev.TowerType,
		BuildingType:            ev.BuildingType,
		LaneType:                ev.LaneType,
		MonsterType:             ev.MonsterType,
		MonsterSubType:          ev.MonsterSubType,
		AscendedType:            ev.AscendedType,
		PointCaptured:           ev.PointCaptured,
		EventType:               ev.EventType,
		TeamID:                  ev.TeamID,
	}
	if ev.Position != nil {
		x, y := ev.Position.X, ev.Position.Y
		out.PositionX, out.PositionY = &x, &y
	}
	return out
}
