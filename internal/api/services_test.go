package api

import (
	"context"
	"encoding/json"
	"net/http"
	"scout-client/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPlayersParams_OmitsZeroValues(t *testing.T) {
	v := ListPlayersParams{Page: 2, Limit: 20, Position: "Winger"}.Values()
	assert.Equal(t, "limit=20&page=2&position=Winger", v.Encode())

	v = ListPlayersParams{Query: "ade", AgeMin: 15, AgeMax: 18, VerifiedOnly: true, TournamentID: "t1"}.Values()
	assert.Equal(t, "15", v.Get("age_min"))
	assert.Equal(t, "18", v.Get("age_max"))
	assert.Equal(t, "true", v.Get("verified"))
	assert.Equal(t, "t1", v.Get("tournament_id"))
	assert.Equal(t, "ade", v.Get("q"))
	assert.False(t, v.Has("page"))
}

func TestPlayersService_List(t *testing.T) {
	gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/players", r.URL.Path)
		assert.Equal(t, "Nigeria", r.URL.Query().Get("country"))
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{
				"players":    []map[string]any{{"id": "p1", "first_name": "Ade"}},
				"pagination": map[string]int{"page": 1, "limit": 20, "total": 1, "total_pages": 1},
			},
		})
	}, &fakeCreds{})

	page, err := NewPlayersService(gw).List(context.Background(), ListPlayersParams{Country: "Nigeria"})
	require.NoError(t, err)
	require.Len(t, page.Results(), 1)
	assert.Equal(t, "p1", page.Results()[0].ID)
	assert.Equal(t, 1, page.Pagination.TotalPages)
}

func TestPlayerPage_ItemsFallback(t *testing.T) {
	var page PlayerPage
	require.NoError(t, json.Unmarshal([]byte(`{"items":[{"id":"a"},{"id":"b"}],"pagination":{"page":1}}`), &page))
	assert.Len(t, page.Results(), 2)
}

func TestSubscriptionService_Checkout(t *testing.T) {
	gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "pro", body["tier"])
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]string{"url": "https://pay.example/s/1"}})
	}, &fakeCreds{token: "t"})

	url, err := NewSubscriptionService(gw).Checkout(context.Background(), domain.TierPro)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/s/1", url)
}

func TestUnwrap_UnsuccessfulEnvelope(t *testing.T) {
	gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "plan unavailable"})
	}, &fakeCreds{})

	_, err := NewSubscriptionService(gw).Plans(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsuccessful)
	assert.Contains(t, err.Error(), "plan unavailable")
}

func TestAccountService_RequestContact(t *testing.T) {
	gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "/contacts", r.URL.Path)
		assert.Equal(t, "p9", body["player_id"])
		assert.Equal(t, "hello", body["message"])
		writeJSON(w, http.StatusCreated, map[string]any{"success": true})
	}, &fakeCreds{token: "t"})

	require.NoError(t, NewAccountService(gw).RequestContact(context.Background(), "p9", "hello"))
}

func TestAuthService_LoginFailureDoesNotRefresh(t *testing.T) {
	creds := &fakeCreds{}
	gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": map[string]string{"code": "INVALID_CREDENTIALS", "message": "Invalid email or password"}})
	}, creds)

	_, err := NewAuthService(gw.transport).Login(context.Background(), "a@b.c", "bad")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, int32(0), creds.refreshes.Load())
}
