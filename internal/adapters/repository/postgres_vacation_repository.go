package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

var _ domain.VacationRepository = (*PostgresVacationRepository)(nil)

type PostgresVacationRepository struct {
	db *sqlx.DB
}

func NewPostgresVacationRepository(db *sqlx.DB) *PostgresVacationRepository {
	return &PostgresVacationRepository{db: db}
}

// GetByUserID returns the user's vacation schedule. Users without a settings
// row get an inactive schedule, not an error.
func (r *PostgresVacationRepository) GetByUserID(ctx context.Context, userID string) (*domain.VacationSchedule, error) {
	schedule := &domain.VacationSchedule{UserID: userID}

	err := r.db.GetContext(ctx, &schedule.Active,
		`SELECT active FROM vacation_settings WHERE user_id = $1`, userID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("vacation settings query error: %w", err)
	}

	schedule.Periods = []domain.VacationPeriod{}
	query := `
        SELECT start_date, end_date FROM vacation_periods
        WHERE user_id = $1
        ORDER BY start_date ASC`
	if err := r.db.SelectContext(ctx, &schedule.Periods, query, userID); err != nil {
		return nil, fmt.Errorf("vacation periods query error: %w", err)
	}

	return schedule, nil
}
