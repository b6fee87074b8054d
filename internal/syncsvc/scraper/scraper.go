package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Series is one release set as the scraper reports it.
type Series struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// CardRecord is one card row from the scraper, already structured.
// PackCodes lists every pack the card appears in (reprints, promos).
type CardRecord struct {
	ID            string   `json:"id"`
	CardCode      string   `json:"card_code"`
	Name          string   `json:"name"`
	Rarity        string   `json:"rarity"`
	Category      string   `json:"category"`
	Color         string   `json:"color"`
	Cost          *int     `json:"cost"`
	Power         *int     `json:"power"`
	Counter       *int     `json:"counter"`
	Effect        string   `json:"effect"`
	TriggerEffect string   `json:"trigger_effect"`
	ImgURL        string   `json:"img_url"`
	Attributes    []string `json:"attributes"`
	Types         []string `json:"types"`
	Block         *int     `json:"block"`
	PackCodes     []string `json:"pack_codes"`
}

// Client talks to the external scraper service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 120 * time.Second},
	}
}

// ListSeries fetches the catalog series index.
func (c *Client) ListSeries(ctx context.Context) ([]Series, error) {
	var series []Series
	if err := c.getJSON(ctx, c.baseURL+"/series", &series); err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}
	return series, nil
}

// FetchSeriesCards fetches every card of one series.
func (c *Client) FetchSeriesCards(ctx context.Context, seriesID string) ([]CardRecord, error) {
	var cards []CardRecord
	if err := c.getJSON(ctx, c.baseURL+"/series/"+seriesID+"/cards", &cards); err != nil {
		return nil, fmt.Errorf("failed to fetch cards for series %s: %w", seriesID, err)
	}
	return cards, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("scraper returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
