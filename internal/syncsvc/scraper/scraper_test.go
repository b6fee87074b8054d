package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/series", r.URL.Path)
		w.Write([]byte(`[{"id":"569201","code":"OP01","name":"Romance Dawn"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	series, err := c.ListSeries(context.Background())
	require.NoError(t, err)

	require.Len(t, series, 1)
	assert.Equal(t, "OP01", series[0].Code)
	assert.Equal(t, "Romance Dawn", series[0].Name)
}

func TestFetchSeriesCards(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/series/569201/cards", r.URL.Path)
		w.Write([]byte(`[
			{"id":"OP01-001","card_code":"OP01-001","name":"Roronoa Zoro","color":"Red",
			 "cost":null,"power":5000,"attributes":["Slash"],"types":["Supernovas","Straw Hat Crew"],
			 "pack_codes":["OP01"]}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	cards, err := c.FetchSeriesCards(context.Background(), "569201")
	require.NoError(t, err)

	require.Len(t, cards, 1)
	assert.Equal(t, "Roronoa Zoro", cards[0].Name)
	assert.Nil(t, cards[0].Cost)
	require.NotNil(t, cards[0].Power)
	assert.Equal(t, 5000, *cards[0].Power)
	assert.Equal(t, []string{"OP01"}, cards[0].PackCodes)
}

func TestScraperErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.ListSeries(context.Background())
	assert.Error(t, err)
}
