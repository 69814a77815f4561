package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var _ domain.HabitRepository = (*PostgresHabitRepository)(nil)

// PostgresHabitRepository reads habit snapshots: the habit row plus its
// completion history summed per day.
type PostgresHabitRepository struct {
	db *sqlx.DB
}

func NewPostgresHabitRepository(db *sqlx.DB) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

type habitRow struct {
	ID           string     `db:"id"`
	UserID       string     `db:"user_id"`
	Name         string     `db:"title"`
	ScheduleText string     `db:"schedule_text"`
	GoalText     string     `db:"goal_text"`
	StartDate    time.Time  `db:"start_date"`
	EndDate      *time.Time `db:"end_date"`
	SortOrder    int        `db:"sort_order"`
}

func (r habitRow) snapshot() *domain.HabitSnapshot {
	return &domain.HabitSnapshot{
		ID:                r.ID,
		UserID:            r.UserID,
		Name:              r.Name,
		StartDate:         r.StartDate,
		EndDate:           r.EndDate,
		ScheduleText:      r.ScheduleText,
		GoalText:          r.GoalText,
		SortOrder:         r.SortOrder,
		CompletionHistory: make(map[string]int),
	}
}

type dailyTotal struct {
	HabitID string    `db:"habit_id"`
	Day     time.Time `db:"day"`
	Total   int       `db:"total"`
}

const habitColumns = `id, user_id, title, schedule_text, goal_text, start_date, end_date, sort_order`

func (r *PostgresHabitRepository) GetByID(ctx context.Context, id string) (*domain.HabitSnapshot, error) {
	var row habitRow
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = $1 AND deleted_at IS NULL`

	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	h := row.snapshot()
	if err := r.attachHistory(ctx, map[string]*domain.HabitSnapshot{h.ID: h}); err != nil {
		return nil, err
	}
	return h, nil
}

func (r *PostgresHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.HabitSnapshot, error) {
	rows := []habitRow{}
	query := `
        SELECT ` + habitColumns + ` FROM habits
        WHERE user_id = $1 AND deleted_at IS NULL
        ORDER BY sort_order ASC, created_at DESC`

	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	habits := make([]*domain.HabitSnapshot, 0, len(rows))
	byID := make(map[string]*domain.HabitSnapshot, len(rows))
	for _, row := range rows {
		h := row.snapshot()
		habits = append(habits, h)
		byID[h.ID] = h
	}

	if err := r.attachHistory(ctx, byID); err != nil {
		return nil, err
	}
	return habits, nil
}

// attachHistory loads every live entry of the given habits in one query and
// fills their CompletionHistory with per-day totals.
func (r *PostgresHabitRepository) attachHistory(ctx context.Context, byID map[string]*domain.HabitSnapshot) error {
	if len(byID) == 0 {
		return nil
	}

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	totals := []dailyTotal{}
	query := `
        SELECT habit_id, completion_date::date AS day, SUM(value) AS total
        FROM habit_entries
        WHERE habit_id = ANY($1) AND deleted_at IS NULL
        GROUP BY habit_id, day`

	if err := r.db.SelectContext(ctx, &totals, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("history query error: %w", err)
	}

	for _, t := range totals {
		if h, ok := byID[t.HabitID]; ok {
			h.CompletionHistory[domain.DayKey(t.Day)] = t.Total
		}
	}
	return nil
}
