// handlers/routes_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"guild-economy-system/services"
	"guild-economy-system/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	repo := store.New(store.NewFileBackend(filepath.Join(t.TempDir(), "state.json")))
	require.NoError(t, repo.Load(context.Background()))
	cfg := services.DefaultConfig()

	leveling := services.NewLevelingService(repo, cfg)
	economy := services.NewEconomyService(repo, cfg)
	leaderboard := services.NewLeaderboardService(repo, cfg, nil)
	moderation := services.NewModerationService(repo)
	shop := services.NewShopService(repo, nil)
	reactions := services.NewReactionRoleService(repo, nil)
	links := services.NewShortLinkService(repo)

	app := fiber.New()
	SetupEventRoutes(app, leveling, reactions)
	SetupLevelingRoutes(app, leaderboard)
	SetupEconomyRoutes(app, economy)
	SetupModerationRoutes(app, moderation)
	SetupShopRoutes(app, shop)
	SetupReactionRoleRoutes(app, reactions)
	SetupLinkRoutes(app, links)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, memberID string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("X-Community-ID", "c1")
	if memberID != "" {
		req.Header.Set("X-Member-ID", memberID)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

// TestMessageEventFlow covers the gain and the cooldown denial over HTTP.
func TestMessageEventFlow(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/events/message", "", fiber.Map{"member_id": "m1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["allowed"])
	assert.GreaterOrEqual(t, body["xp_gained"], float64(15))

	resp, body = doJSON(t, app, "POST", "/events/message", "", fiber.Map{"member_id": "m1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["allowed"], "a message inside the window is a denial, not an error")

	resp, _ = doJSON(t, app, "POST", "/events/message", "", fiber.Map{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// TestMissingCommunityHeader checks the context middleware rejection.
func TestMissingCommunityHeader(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("GET", "/balance", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// TestDailyCooldownStatus checks the 429 mapping with a retry hint.
func TestDailyCooldownStatus(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/daily", "m1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(100), body["earned"])

	resp, body = doJSON(t, app, "POST", "/daily", "m1", nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, body["retry_in"])
}

// TestShopFlow covers item creation, purchase, conflict and inventory over
// HTTP.
func TestShopFlow(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/shop/items", "", fiber.Map{
		"name":     "Gold Badge",
		"price":    50,
		"category": "badge",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "gold-badge", body["id"])

	// No funds yet.
	resp, _ = doJSON(t, app, "POST", "/shop/buy", "m1", fiber.Map{"item_id": "gold-badge"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Earn, then buy.
	resp, _ = doJSON(t, app, "POST", "/daily", "m1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, body = doJSON(t, app, "POST", "/shop/buy", "m1", fiber.Map{"item_id": "gold-badge"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(50), body["coins"])

	resp, _ = doJSON(t, app, "POST", "/shop/buy", "m1", fiber.Map{"item_id": "gold-badge"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "second copy of a badge is denied")

	resp, body = doJSON(t, app, "GET", "/shop/inventory", "m1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := body["items"].([]any)
	require.Len(t, items, 1)
}

// TestReactionRolesOverHTTP covers bind, duplicate conflict, event resolve
// and unbind.
func TestReactionRolesOverHTTP(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, "POST", "/reaction-roles", "", fiber.Map{
		"message_id": "msg1",
		"emoji":      "🎮",
		"role_id":    "r1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/reaction-roles", "", fiber.Map{
		"message_id": "msg1",
		"emoji":      "🎮",
		"role_id":    "r2",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body := doJSON(t, app, "POST", "/events/reaction", "", fiber.Map{
		"member_id":  "m1",
		"message_id": "msg1",
		"emoji":      "🎮",
		"added":      true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["matched"])
	assert.Equal(t, "r1", body["role_id"])

	req := httptest.NewRequest("DELETE", "/reaction-roles/?message_id=msg1", nil)
	req.Header.Set("X-Community-ID", "c1")
	resp2, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}

// TestLinksOverHTTP covers shorten, expand and the not-found mapping.
func TestLinksOverHTTP(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/links", "", fiber.Map{
		"url":  "https://example.com/docs",
		"code": "docs",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "docs", body["code"])

	resp, body = doJSON(t, app, "GET", "/links/docs", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://example.com/docs", body["url"])

	resp, _ = doJSON(t, app, "GET", "/links/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// TestLeaderboardOverHTTP checks the ranked view after some activity.
func TestLeaderboardOverHTTP(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, "POST", "/events/message", "", fiber.Map{"member_id": "m1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, "GET", "/leaderboard", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	entries := body["entries"].([]any)
	require.Len(t, entries, 1)
	row := entries[0].(map[string]any)
	assert.Equal(t, "m1", row["member_id"])
	assert.Equal(t, float64(1), row["rank"])
}

// TestWarningsOverHTTP covers issue, list and clear.
func TestWarningsOverHTTP(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/warnings", "mod1", fiber.Map{
		"member_id": "m1",
		"reason":    "spam",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(1), body["total"])

	resp, body = doJSON(t, app, "GET", "/warnings/?member_id=m1", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["count"])

	resp, body = doJSON(t, app, "DELETE", "/warnings/?member_id=m1", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["cleared"])
}
