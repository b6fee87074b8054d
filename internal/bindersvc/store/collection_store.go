package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/harukin/binder-services/internal/bindersvc/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MaxCopies bounds how many instances of a card a user may hold per
// (user, card, is_proxy) tuple.
const MaxCopies = 99

var (
	ErrCopyLimit   = errors.New("copy limit reached for this card")
	ErrUnknownCard = errors.New("card does not exist")
	ErrNoInstance  = errors.New("no instance to remove")
)

type CollectionStore struct {
	db *pgxpool.Pool
}

func NewCollectionStore(db *pgxpool.Pool) *CollectionStore {
	return &CollectionStore{db: db}
}

// AddInstance inserts one owned/proxy copy. The tuple is serialized
// with a transaction-scoped advisory lock so concurrent adds cannot
// both pass the count check and push a (user, card, is_proxy) tuple
// past MaxCopies under READ COMMITTED.
func (s *CollectionStore) AddInstance(ctx context.Context, oc models.OwnedCard) (*models.OwnedCard, error) {
	const query = `
INSERT INTO owned_cards (instance_id, card_id, user_id, location, is_proxy)
SELECT $1, $2, $3, $4, $5
WHERE (
  SELECT COUNT(*) FROM owned_cards
  WHERE user_id = $3 AND card_id = $2 AND is_proxy = $5
) < $6
RETURNING instance_id, card_id, user_id, location, is_proxy, created_at;
`
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin add instance: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		"SELECT pg_advisory_xact_lock(hashtextextended($1, 0))",
		instanceLockKey(oc.UserID, oc.CardID, oc.IsProxy),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to lock instance tuple: %w", err)
	}

	out := &models.OwnedCard{}
	err = tx.QueryRow(ctx, query,
		oc.InstanceID, oc.CardID, oc.UserID, oc.Location, oc.IsProxy, MaxCopies,
	).Scan(
		&out.InstanceID,
		&out.CardID,
		&out.UserID,
		&out.Location,
		&out.IsProxy,
		&out.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// zero rows means the count check failed
			return nil, ErrCopyLimit
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, ErrUnknownCard
		}
		return nil, fmt.Errorf("failed to add instance: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit add instance: %w", err)
	}

	return out, nil
}

// instanceLockKey names the advisory lock for one (user, card, proxy)
// tuple. Identical tuples must map to identical keys.
func instanceLockKey(userID int64, cardID string, isProxy bool) string {
	return fmt.Sprintf("owned_cards:%d:%s:%t", userID, cardID, isProxy)
}

// RemoveInstance deletes one arbitrary instance of the tuple. Instances
// are fungible, so which row goes is not specified.
func (s *CollectionStore) RemoveInstance(ctx context.Context, userID int64, cardID string, isProxy bool) error {
	const query = `
DELETE FROM owned_cards
WHERE instance_id IN (
  SELECT instance_id FROM owned_cards
  WHERE user_id = $1 AND card_id = $2 AND is_proxy = $3
  LIMIT 1
);
`
	tag, err := s.db.Exec(ctx, query, userID, cardID, isProxy)
	if err != nil {
		return fmt.Errorf("failed to remove instance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNoInstance
	}

	return nil
}

// ListByUser returns the caller's binder, one row per distinct card
// with owned and proxy counts.
func (s *CollectionStore) ListByUser(ctx context.Context, userID int64) ([]models.CollectionItem, error) {
	query := `
		SELECT c.id, c.card_code, c.name, c.color, c.rarity, c.img_url,
		       COUNT(*) FILTER (WHERE NOT o.is_proxy) AS owned_count,
		       COUNT(*) FILTER (WHERE o.is_proxy)     AS proxy_count
		FROM owned_cards o
		JOIN cards c ON c.id = o.card_id
		WHERE o.user_id = $1
		GROUP BY c.id
		ORDER BY c.name ASC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collection: %w", err)
	}
	defer rows.Close()

	items := []models.CollectionItem{}
	for rows.Next() {
		var it models.CollectionItem
		err := rows.Scan(
			&it.CardID,
			&it.CardCode,
			&it.Name,
			&it.Color,
			&it.Rarity,
			&it.ImgURL,
			&it.OwnedCount,
			&it.ProxyCount,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, rows.Err()
}
