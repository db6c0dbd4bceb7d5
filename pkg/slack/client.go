package slack

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultAPIURL is the Slack Web API base.
const DefaultAPIURL = "https://slack.com/api/"

// APIError is returned when the Web API responds with a non-200 status
// or ok=false. It carries the service's own error string when present.
type APIError struct {
	Method string // API method, e.g. "channels.history"
	Status int    // HTTP status code, 0 if the request never completed
	Reason string // error field from the response body, if any
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("slack %s: %s", e.Method, e.Reason)
	}
	return fmt.Sprintf("slack %s: status %d", e.Method, e.Status)
}

// Client is a Slack Web API client. All methods are single-shot
// request/response calls; retry policy is left to the caller.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a Web API client authenticated with token.
func NewClient(token string) *Client {
	return &Client{
		baseURL:    DefaultAPIURL,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetBaseURL overrides the API base URL (used in tests).
func (c *Client) SetBaseURL(base string) {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	c.baseURL = base
}

// call performs a GET against an API method and decodes the response
// into out. out must contain an Ok/Error pair matching the envelope.
func (c *Client) call(method string, params url.Values, out interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("token", c.token)

	resp, err := c.httpClient.Get(c.baseURL + method + "?" + params.Encode())
	if err != nil {
		return fmt.Errorf("slack %s: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("slack %s: reading response: %w", method, err)
	}

	if resp.StatusCode != http.StatusOK {
		return &APIError{Method: method, Status: resp.StatusCode}
	}

	// Every Web API response carries the ok/error envelope alongside the
	// method-specific payload, so decode the envelope first.
	var envelope struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("slack %s: decoding response: %w", method, err)
	}
	if !envelope.OK {
		return &APIError{Method: method, Status: resp.StatusCode, Reason: envelope.Error}
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("slack %s: decoding response: %w", method, err)
		}
	}
	return nil
}

// RTMStart requests a realtime session: our identity plus the websocket
// URL to connect to.
func (c *Client) RTMStart() (*RTMStartResponse, error) {
	var resp RTMStartResponse
	if err := c.call("rtm.start", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetUsers returns the workspace roster, with deleted accounts
// filtered out.
func (c *Client) GetUsers() ([]User, error) {
	var resp struct {
		Members []User `json:"members"`
	}
	if err := c.call("users.list", nil, &resp); err != nil {
		return nil, err
	}
	users := make([]User, 0, len(resp.Members))
	for _, u := range resp.Members {
		if !u.Deleted {
			users = append(users, u)
		}
	}
	return users, nil
}

// GetChannels returns the public channel list, with archived channels
// filtered out.
func (c *Client) GetChannels() ([]Channel, error) {
	var resp struct {
		Channels []Channel `json:"channels"`
	}
	if err := c.call("channels.list", nil, &resp); err != nil {
		return nil, err
	}
	channels := make([]Channel, 0, len(resp.Channels))
	for _, ch := range resp.Channels {
		if !ch.IsArchived {
			channels = append(channels, ch)
		}
	}
	return channels, nil
}

// OpenIM opens (or returns) the direct-message conversation with the
// given user and returns its conversation id.
func (c *Client) OpenIM(userID string) (string, error) {
	var resp struct {
		Channel struct {
			ID string `json:"id"`
		} `json:"channel"`
	}
	params := url.Values{"user": {userID}}
	if err := c.call("im.open", params, &resp); err != nil {
		return "", err
	}
	return resp.Channel.ID, nil
}

// JoinChannel joins a channel by name and returns its conversation id.
func (c *Client) JoinChannel(name string) (string, error) {
	var resp struct {
		Channel struct {
			ID string `json:"id"`
		} `json:"channel"`
	}
	params := url.Values{"name": {name}}
	if err := c.call("channels.join", params, &resp); err != nil {
		return "", err
	}
	return resp.Channel.ID, nil
}

// ChannelHistory fetches the newest-first message page for a channel.
func (c *Client) ChannelHistory(channelID string) (*HistoryPage, error) {
	return c.history("channels.history", channelID)
}

// IMHistory fetches the newest-first message page for a direct-message
// conversation.
func (c *Client) IMHistory(channelID string) (*HistoryPage, error) {
	return c.history("im.history", channelID)
}

func (c *Client) history(method, channelID string) (*HistoryPage, error) {
	var page HistoryPage
	params := url.Values{"channel": {channelID}}
	if err := c.call(method, params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// MarkChannel moves the channel read marker to ts.
func (c *Client) MarkChannel(channelID, ts string) error {
	params := url.Values{"channel": {channelID}, "ts": {ts}}
	return c.call("channels.mark", params, nil)
}

// MarkIM moves the direct-message read marker to ts.
func (c *Client) MarkIM(channelID, ts string) error {
	params := url.Values{"channel": {channelID}, "ts": {ts}}
	return c.call("im.mark", params, nil)
}
