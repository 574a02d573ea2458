package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midwife-middleware/showbook/catalog"
)

var netflix = catalog.Provider{ID: 8, Name: "Netflix"}

func discoverPayload(page, totalPages int, names ...string) DiscoverResponse {
	entries := make([]Entry, 0, len(names))
	for _, n := range names {
		entries = append(entries, Entry{Title: n, ReleaseDate: "1999-03-31"})
	}
	return DiscoverResponse{
		Page:         page,
		Results:      entries,
		TotalPages:   totalPages,
		TotalResults: totalPages * len(names),
	}
}

func newTestClient(t *testing.T, serverURL string, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithBaseURL(serverURL), WithRequestDelay(0), WithRetryBackoff(0)}, opts...)
	client, err := NewClient("test-key", zerolog.Nop(), opts...)
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		apiKey  string
		wantErr bool
	}{
		{name: "valid config", apiKey: "test-key", wantErr: false},
		{name: "missing API key", apiKey: "", wantErr: true},
		{name: "blank API key", apiKey: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.apiKey, zerolog.Nop())
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestDiscoverPaginatesUntilExhausted(t *testing.T) {
	pages := map[int]DiscoverResponse{
		1: discoverPayload(1, 3, "Heat", "Ran"),
		2: discoverPayload(2, 3, "Alien", "Dune"),
		3: discoverPayload(3, 3, "Tampopo"),
	}

	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/discover/movie", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("api_key"))
		assert.Equal(t, "8", q.Get("with_watch_providers"))
		assert.Equal(t, "US", q.Get("watch_region"))
		assert.Equal(t, "flatrate", q.Get("with_watch_monetization_types"))

		page, _ := strconv.Atoi(q.Get("page"))
		json.NewEncoder(w).Encode(pages[page])
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	titles, err := client.Discover(context.Background(), netflix, catalog.KindMovie, "US", 500)
	require.NoError(t, err)

	assert.Equal(t, 3, requests)
	require.Len(t, titles, 5)
	assert.Equal(t, "Heat", titles[0].Name)
	assert.Equal(t, "1999", titles[0].Year)
	assert.Equal(t, catalog.KindMovie, titles[0].Kind)
	assert.Equal(t, 8, titles[0].ProviderID)
	assert.Equal(t, "Tampopo", titles[4].Name)
}

func TestDiscoverRespectsMaxPages(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		json.NewEncoder(w).Encode(discoverPayload(page, 500, fmt.Sprintf("Title %d", page)))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	titles, err := client.Discover(context.Background(), netflix, catalog.KindMovie, "US", 2)
	require.NoError(t, err)

	assert.Equal(t, 2, requests)
	assert.Len(t, titles, 2)
}

func TestDiscoverNormalizesTVEntries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/discover/tv", r.URL.Path)
		json.NewEncoder(w).Encode(DiscoverResponse{
			Page:       1,
			TotalPages: 1,
			Results: []Entry{
				{Name: "Severance", FirstAirDate: "2022-02-18"},
				{}, // neither title nor name
			},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	titles, err := client.Discover(context.Background(), netflix, catalog.KindShow, "US", 1)
	require.NoError(t, err)

	require.Len(t, titles, 2)
	assert.Equal(t, "Severance", titles[0].Name)
	assert.Equal(t, "2022", titles[0].Year)
	assert.Equal(t, catalog.KindShow, titles[0].Kind)
	assert.Equal(t, "Unknown", titles[1].Name)
	assert.Empty(t, titles[1].Year)
}

func TestDiscoverUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"status_message":"Invalid API key"}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Discover(context.Background(), netflix, catalog.KindMovie, "US", 1)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestDiscoverRetriesThrottledRequests(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests <= 2 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(discoverPayload(1, 1, "Heat"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, WithMaxRetries(3))
	titles, err := client.Discover(context.Background(), netflix, catalog.KindMovie, "US", 1)
	require.NoError(t, err)

	assert.Equal(t, 3, requests)
	assert.Len(t, titles, 1)
}

func TestDiscoverRateLimitExhaustsRetries(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, WithMaxRetries(2))
	_, err := client.Discover(context.Background(), netflix, catalog.KindMovie, "US", 1)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 3, requests) // initial attempt + 2 retries
}

func TestDiscoverServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "upstream exploded")
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, WithMaxRetries(0))
	_, err := client.Discover(context.Background(), netflix, catalog.KindMovie, "US", 1)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "upstream exploded")
}

func TestDiscoverReportsProgress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		json.NewEncoder(w).Encode(discoverPayload(page, 2, "A", "B"))
	}))
	defer server.Close()

	type tick struct{ page, total, titles int }
	var ticks []tick
	client := newTestClient(t, server.URL, WithProgress(func(page, totalPages, titles int) {
		ticks = append(ticks, tick{page, totalPages, titles})
	}))

	_, err := client.Discover(context.Background(), netflix, catalog.KindMovie, "US", 500)
	require.NoError(t, err)
	assert.Equal(t, []tick{{1, 2, 2}, {2, 2, 4}}, ticks)
}

func TestEntryYear(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  string
	}{
		{name: "movie release date", entry: Entry{ReleaseDate: "1982-06-25"}, want: "1982"},
		{name: "tv first air date", entry: Entry{FirstAirDate: "2008-01-20"}, want: "2008"},
		{name: "movie date wins over tv date", entry: Entry{ReleaseDate: "1982-06-25", FirstAirDate: "2008-01-20"}, want: "1982"},
		{name: "missing dates", entry: Entry{}, want: ""},
		{name: "truncated date", entry: Entry{ReleaseDate: "19"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.Year())
		})
	}
}
