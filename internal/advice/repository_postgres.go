package advice

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Save(ctx context.Context, record *Record) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}

	query := `
		INSERT INTO advice_history (
			id, category, brand, model, city, plan_tier, model_used,
			market_price_low, market_price_high, suggested_price,
			confidence, searched
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.Exec(ctx, query,
		record.ID, record.Category, record.Brand, record.Model, record.City,
		record.PlanTier, record.ModelUsed,
		record.Low, record.High, record.Suggested,
		record.Confidence, record.Searched,
	)
	return err
}

func (r *PostgresRepository) Recent(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := `
		SELECT id, category, brand, model, city, plan_tier, model_used,
		       market_price_low, market_price_high, suggested_price,
		       confidence, searched, created_at
		FROM advice_history
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record := &Record{}
		if err := rows.Scan(
			&record.ID, &record.Category, &record.Brand, &record.Model,
			&record.City, &record.PlanTier, &record.ModelUsed,
			&record.Low, &record.High, &record.Suggested,
			&record.Confidence, &record.Searched, &record.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
