package models

// Card is one catalog entry. The id is globally unique and may carry a
// variant suffix: _r<N> marks a reprint of the base card, _p<N> an
// alternate-art parallel. Both are cosmetic identity markers, not
// separate cards.
type Card struct {
	ID            string   `json:"id"`
	CardCode      string   `json:"card_code"`
	Name          string   `json:"name"`
	Rarity        string   `json:"rarity"`
	Category      string   `json:"category"`
	Color         string   `json:"color"` // single value or '/'-delimited multi-color
	Cost          *int     `json:"cost"`
	Power         *int     `json:"power"`
	Counter       *int     `json:"counter"`
	Effect        string   `json:"effect"`
	TriggerEffect string   `json:"trigger_effect"`
	ImgURL        string   `json:"img_url"`
	Attributes    []string `json:"attributes"`
	Types         []string `json:"types"`
	Block         *int     `json:"block"`
}

// CardResult is a card enriched with the requesting user's ownership
// counts and the packs it appears in. Counts are zero for cards the
// user holds no copies of, never null.
type CardResult struct {
	Card
	OwnedCount int    `json:"owned_count"`
	ProxyCount int    `json:"proxy_count"`
	Packs      string `json:"packs"` // deduplicated pack codes, comma-space joined
}
