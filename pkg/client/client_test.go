package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	c := New(url, "test-token")
	c.RetryDelay = time.Millisecond
	return c
}

func TestListArtisans_SendsFiltersAndFiltersLocally(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/artisans", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "ATLAS", q.Get("search"))
		assert.Equal(t, "city-casablanca", q.Get("city_id"))
		assert.Equal(t, "true", q.Get("verified"))
		assert.Equal(t, "4.5", q.Get("min_rating"))
		assert.Empty(t, q.Get("page"))

		json.NewEncoder(w).Encode(ArtisanPage{ //nolint:errcheck
			Items: []Artisan{
				{ID: "a1", BusinessName: "Plomberie Atlas"},
				{ID: "a2", BusinessName: "Autre", OwnerName: "Karim"},
			},
			Total: 2, Page: 1, Limit: 20, TotalPages: 1,
		})
	}))
	defer srv.Close()

	verified := true
	page, err := newTestClient(srv.URL).ListArtisans(context.Background(), ArtisanFilter{
		Search:    "ATLAS",
		CityID:    "city-casablanca",
		MinRating: 4.5,
		Verified:  &verified,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "a1", page.Items[0].ID)
}

func TestGet_RetriesGatewayErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode([]Category{{ID: "cat-plumbing", Slug: "plomberie"}}) //nolint:errcheck
	}))
	defer srv.Close()

	cats, err := newTestClient(srv.URL).Categories(context.Background())
	require.NoError(t, err)
	assert.Len(t, cats, 1)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGet_RetriesAreBounded(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Cities(context.Background())
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "Cities", fe.Op)
	assert.Equal(t, KindConnectivity, fe.Kind)
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls), "one request plus three retries")
}

func TestGet_DoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "access forbidden"}) //nolint:errcheck
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Categories(context.Background())
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusForbidden))
	assert.Equal(t, KindAuthorization, Classify(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestTopArtisans_Fallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusGatewayTimeout)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	items, err := c.TopArtisans(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, PlaceholderArtisans(3), items)

	c.DevMode = true
	_, err = c.TopArtisans(context.Background(), 3)
	require.Error(t, err)
}

func TestProcessApplication(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/functions/process-application", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "app-1", body["applicationId"])
		assert.Equal(t, "reject", body["action"])
		assert.Equal(t, "Incomplete documents", body["adminNotes"])

		json.NewEncoder(w).Encode(ProcessResponse{Success: true, Message: "Application rejected"}) //nolint:errcheck
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).ProcessApplication(context.Background(), ProcessRequest{
		ApplicationID: "app-1",
		Action:        "reject",
		AdminNotes:    "Incomplete documents",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestProcessApplication_InvalidAction(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid action"}) //nolint:errcheck
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ProcessApplication(context.Background(), ProcessRequest{ApplicationID: "app-1", Action: "approve"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid action")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, KindConfiguration, Classify(errors.New(`Get "localhost/v1": unsupported protocol scheme ""`)))
	assert.Equal(t, KindConnectivity, Classify(errors.New("dial tcp: connection refused")))
	assert.Equal(t, KindAuthorization, Classify(&HTTPError{StatusCode: 401}))
	assert.Equal(t, KindGeneric, Classify(&HTTPError{StatusCode: 500}))
	assert.NotEqual(t, UserMessage(KindConnectivity), UserMessage(KindGeneric))
}

func TestMatchesSearch(t *testing.T) {
	a := Artisan{BusinessName: "Atelier Amine", Description: "Plomberie générale", Address: "Maarif", OwnerName: "Amine Tazi"}

	assert.True(t, MatchesSearch(a, "PLOMB"))
	assert.True(t, MatchesSearch(a, "tazi"))
	assert.True(t, MatchesSearch(a, "  "))
	assert.True(t, MatchesSearch(a, "amine plomberie"), "match spans joined fields")
	assert.False(t, MatchesSearch(a, "électricité"))
}

func TestPlaceholderArtisans_Deterministic(t *testing.T) {
	assert.Equal(t, PlaceholderArtisans(8), PlaceholderArtisans(8))
	assert.Len(t, PlaceholderArtisans(0), DefaultTopLimit)
	for _, a := range PlaceholderArtisans(8) {
		assert.True(t, a.IsVerified)
		assert.NotEmpty(t, a.ID)
	}
}

func TestPlaceholderArtisans_ClampsLimit(t *testing.T) {
	seeded := map[string]bool{
		"cat-plumbing": true, "cat-electricity": true, "cat-carpentry": true,
		"cat-painting": true, "cat-masonry": true, "cat-zellige": true,
	}

	items := PlaceholderArtisans(500)
	require.Len(t, items, MaxTopLimit)
	for _, a := range items {
		assert.Positive(t, a.RatingCount, a.ID)
		assert.True(t, seeded[a.CategoryID], "unknown category %s", a.CategoryID)
	}
}

func TestTopArtisans_ClampsRequestedLimit(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.URL.Query().Get("limit"))
		w.Write([]byte("[]")) //nolint:errcheck
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	for _, limit := range []int{0, 5, 100} {
		_, err := c.TopArtisans(context.Background(), limit)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"6", "5", "24"}, got)
}
