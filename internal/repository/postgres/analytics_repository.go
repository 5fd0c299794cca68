package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/analytics"
)

type AnalyticsRepository struct {
	db *sql.DB
}

func NewAnalyticsRepository(db *sql.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) Create(ctx context.Context, event analytics.Event) error {
	event.ID = common.NewUUID()
	event.CreatedAt = time.Now().UTC()
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to encode event payload", err)
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO analytics_events (id, name, user_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		event.ID, event.Name, nullableUUID(event.UserID), payload, event.CreatedAt)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to record event", err)
	}
	return nil
}

func (r *AnalyticsRepository) CountByName(ctx context.Context, since time.Time) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, COUNT(*) FROM analytics_events
		WHERE created_at >= $1 GROUP BY name`, since)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count events", err)
	}
	defer rows.Close()
	counts := make(map[string]int64)
	for rows.Next() {
		var name string
		var count int64
		if err := rows.Scan(&name, &count); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan event count", err)
		}
		counts[name] = count
	}
	return counts, nil
}

func nullableUUID(id *common.UUID) interface{} {
	if id == nil {
		return nil
	}
	return id.String()
}
