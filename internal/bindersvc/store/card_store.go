package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/harukin/binder-services/internal/bindersvc/models"
	"github.com/harukin/binder-services/internal/bindersvc/search"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type CardStore struct {
	db *pgxpool.Pool
}

func NewCardStore(db *pgxpool.Pool) *CardStore {
	return &CardStore{db: db}
}

// Search compiles the keyword into one statement and executes it. The
// ownership counts in each row are scoped to opts.UserID only. Store
// failures are logged here with the query text truncated; the caller
// receives a wrapped error with no user data in it.
func (s *CardStore) Search(ctx context.Context, opts search.Options) ([]models.CardResult, error) {
	q := search.Compile(opts)

	rows, err := s.db.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		log.Errorf("card search failed: %v (query: %s)", err, truncate(q.SQL, 200))
		return nil, fmt.Errorf("card search query: %w", err)
	}
	defer rows.Close()

	results := []models.CardResult{}
	for rows.Next() {
		r, err := scanCardResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scan card result: %w", err)
		}
		results = append(results, *r)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("card search rows failed: %v (query: %s)", err, truncate(q.SQL, 200))
		return nil, fmt.Errorf("card search rows: %w", err)
	}

	return results, nil
}

// GetByID fetches a single card with the caller's counts and pack list.
// Returns nil without error when the card does not exist.
func (s *CardStore) GetByID(ctx context.Context, userID int64, cardID string) (*models.CardResult, error) {
	query := `
		SELECT c.id, c.card_code, c.name, c.rarity, c.category, c.color,
		       c.cost, c.power, c.counter, c.effect, c.trigger_effect, c.img_url,
		       c.attributes, c.types, c.block,
		       COALESCE(oc.owned_count, 0) AS owned_count,
		       COALESCE(oc.proxy_count, 0) AS proxy_count,
		       COALESCE(string_agg(DISTINCT cp.pack_code, ', '), '') AS packs
		FROM cards c
		LEFT JOIN card_packs cp ON cp.card_id = c.id
		LEFT JOIN (
		    SELECT card_id,
		           COUNT(*) FILTER (WHERE NOT is_proxy) AS owned_count,
		           COUNT(*) FILTER (WHERE is_proxy)     AS proxy_count
		    FROM owned_cards
		    WHERE user_id = $1
		    GROUP BY card_id
		) oc ON oc.card_id = c.id
		WHERE c.id = $2
		GROUP BY c.id, oc.owned_count, oc.proxy_count
	`

	row := s.db.QueryRow(ctx, query, userID, cardID)
	r, err := scanCardResult(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get card %s: %w", cardID, err)
	}

	return r, nil
}

func scanCardResult(row pgx.Row) (*models.CardResult, error) {
	var r models.CardResult
	err := row.Scan(
		&r.ID,
		&r.CardCode,
		&r.Name,
		&r.Rarity,
		&r.Category,
		&r.Color,
		&r.Cost,
		&r.Power,
		&r.Counter,
		&r.Effect,
		&r.TriggerEffect,
		&r.ImgURL,
		&r.Attributes,
		&r.Types,
		&r.Block,
		&r.OwnedCount,
		&r.ProxyCount,
		&r.Packs,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
