package store

import (
	"context"
	"fmt"

	"github.com/harukin/binder-services/internal/bindersvc/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PackStore struct {
	db *pgxpool.Pool
}

func NewPackStore(db *pgxpool.Pool) *PackStore {
	return &PackStore{db: db}
}

func (s *PackStore) ListPacks(ctx context.Context) ([]models.Pack, error) {
	query := `
		SELECT code, series_id, name
		FROM packs
		ORDER BY code ASC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list packs: %w", err)
	}
	defer rows.Close()

	packs := []models.Pack{}
	for rows.Next() {
		var p models.Pack
		if err := rows.Scan(&p.Code, &p.SeriesID, &p.Name); err != nil {
			return nil, err
		}
		packs = append(packs, p)
	}

	return packs, rows.Err()
}
