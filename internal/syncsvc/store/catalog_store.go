package store

import (
	"context"
	"fmt"

	"github.com/harukin/binder-services/internal/syncsvc/scraper"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogStore writes scraped card/pack records into Postgres. It is
// the only writer of the catalog tables; the API services read them.
type CatalogStore struct {
	db *pgxpool.Pool
}

func NewCatalogStore(db *pgxpool.Pool) *CatalogStore {
	return &CatalogStore{db: db}
}

func (s *CatalogStore) UpsertPack(ctx context.Context, code, seriesID, name string) error {
	query := `
		INSERT INTO packs (code, series_id, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE
		SET series_id = EXCLUDED.series_id,
		    name      = EXCLUDED.name
	`

	if _, err := s.db.Exec(ctx, query, code, seriesID, name); err != nil {
		return fmt.Errorf("failed to upsert pack %s: %w", code, err)
	}
	return nil
}

// UpsertCard writes one card and its pack appearances. The card row is
// replaced wholesale on conflict; appearances are additive (packs are
// never detached here, a card keeps every pack it was ever seen in).
func (s *CatalogStore) UpsertCard(ctx context.Context, c scraper.CardRecord) error {
	query := `
		INSERT INTO cards (id, card_code, name, rarity, category, color,
		                   cost, power, counter, effect, trigger_effect,
		                   img_url, attributes, types, block)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE
		SET card_code      = EXCLUDED.card_code,
		    name           = EXCLUDED.name,
		    rarity         = EXCLUDED.rarity,
		    category       = EXCLUDED.category,
		    color          = EXCLUDED.color,
		    cost           = EXCLUDED.cost,
		    power          = EXCLUDED.power,
		    counter        = EXCLUDED.counter,
		    effect         = EXCLUDED.effect,
		    trigger_effect = EXCLUDED.trigger_effect,
		    img_url        = EXCLUDED.img_url,
		    attributes     = EXCLUDED.attributes,
		    types          = EXCLUDED.types,
		    block          = EXCLUDED.block
	`

	_, err := s.db.Exec(ctx, query,
		c.ID, c.CardCode, c.Name, c.Rarity, c.Category, c.Color,
		c.Cost, c.Power, c.Counter, c.Effect, c.TriggerEffect,
		c.ImgURL, c.Attributes, c.Types, c.Block,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert card %s: %w", c.ID, err)
	}

	for _, pack := range c.PackCodes {
		if err := s.linkCardPack(ctx, c.ID, pack); err != nil {
			return err
		}
	}

	return nil
}

func (s *CatalogStore) linkCardPack(ctx context.Context, cardID, packCode string) error {
	query := `
		INSERT INTO card_packs (card_id, pack_code)
		VALUES ($1, $2)
		ON CONFLICT (card_id, pack_code) DO NOTHING
	`

	if _, err := s.db.Exec(ctx, query, cardID, packCode); err != nil {
		return fmt.Errorf("failed to link card %s to pack %s: %w", cardID, packCode, err)
	}
	return nil
}
