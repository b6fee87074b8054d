package models

import (
	"time"
)

// OwnedCard is one countable copy of a card held by a user. Instances
// are fungible: removal deletes an arbitrary one.
type OwnedCard struct {
	InstanceID string    `json:"instance_id"`
	CardID     string    `json:"card_id"`
	UserID     int64     `json:"user_id"`
	Location   string    `json:"location"`
	IsProxy    bool      `json:"is_proxy"`
	CreatedAt  time.Time `json:"created_at"`
}

// CollectionItem is the per-card aggregate a user sees when listing
// their binder.
type CollectionItem struct {
	CardID     string `json:"card_id"`
	CardCode   string `json:"card_code"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	Rarity     string `json:"rarity"`
	ImgURL     string `json:"img_url"`
	OwnedCount int    `json:"owned_count"`
	ProxyCount int    `json:"proxy_count"`
}
