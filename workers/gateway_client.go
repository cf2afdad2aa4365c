// workers/gateway_client.go
package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"guild-economy-system/services"
)

// GatewayClient delivers outbound intents (role mutations, feed
// announcements, leaderboard posts) to the chat gateway over HTTP. It
// implements services.RoleGranter and services.Notifier.
type GatewayClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewGatewayClient(baseURL, token string) *GatewayClient {
	return &GatewayClient{
		BaseURL: baseURL,
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (g *GatewayClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode gateway request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create gateway request: %w", err)
	}
	req.Header.Set("X-Service-Token", g.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(msg))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode gateway response: %w", err)
		}
	}
	return nil
}

func rolePath(communityID, memberID, roleID string) string {
	return fmt.Sprintf("/api/v1/communities/%s/members/%s/roles/%s",
		url.PathEscape(communityID), url.PathEscape(memberID), url.PathEscape(roleID))
}

func (g *GatewayClient) GrantRole(ctx context.Context, communityID, memberID, roleID string) error {
	return g.do(ctx, http.MethodPut, rolePath(communityID, memberID, roleID), nil, nil)
}

func (g *GatewayClient) RevokeRole(ctx context.Context, communityID, memberID, roleID string) error {
	return g.do(ctx, http.MethodDelete, rolePath(communityID, memberID, roleID), nil, nil)
}

func (g *GatewayClient) AnnounceVideo(ctx context.Context, communityID, channelID string, video services.VideoAnnouncement) error {
	path := fmt.Sprintf("/api/v1/communities/%s/channels/%s/announcements",
		url.PathEscape(communityID), url.PathEscape(channelID))
	return g.do(ctx, http.MethodPost, path, video, nil)
}

func (g *GatewayClient) UpsertLeaderboardPost(ctx context.Context, communityID, channelID, lastMessageID string, entries []services.RankEntry) (string, error) {
	path := fmt.Sprintf("/api/v1/communities/%s/channels/%s/leaderboard",
		url.PathEscape(communityID), url.PathEscape(channelID))

	body := struct {
		MessageID string               `json:"message_id,omitempty"`
		Entries   []services.RankEntry `json:"entries"`
	}{MessageID: lastMessageID, Entries: entries}

	var resp struct {
		MessageID string `json:"message_id"`
	}
	if err := g.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return "", err
	}
	return resp.MessageID, nil
}
