package models

// Pack represents one release set. SeriesID identifies the series in
// the external scraper catalog.
type Pack struct {
	Code     string `json:"code"`
	SeriesID string `json:"series_id"`
	Name     string `json:"name"`
}
