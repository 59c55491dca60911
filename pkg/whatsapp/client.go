// Package whatsapp sends text messages through a go-whatsapp-web-multidevice
// style REST gateway.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout = 30 * time.Second
	jidSuffix      = "@s.whatsapp.net"
	maxErrorBody   = 512
)

type Client struct {
	baseURL  string
	path     string
	username string
	password string
	http     *http.Client
}

type SendMessageRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type SendMessageResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Results struct {
		MessageID string `json:"message_id"`
		Status    string `json:"status"`
	} `json:"results"`
}

// NewClient builds a gateway client. path is an optional device prefix
// placed in front of /send/message.
func NewClient(baseURL, username, password, path string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		path:     strings.Trim(path, "/"),
		username: username,
		password: password,
		http:     &http.Client{Timeout: defaultTimeout},
	}
}

// ConvertPhoneNumber turns a local 10 digit number (optionally with a leading
// 0) into the 91xxxxxxxxxx form the gateway expects.
func ConvertPhoneNumber(phone string) string {
	d := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	switch {
	case len(d) == 11 && d[0] == '0':
		return "91" + d[1:]
	case len(d) == 10:
		return "91" + d
	default:
		return d
	}
}

func (c *Client) endpoint() string {
	if c.path == "" {
		return c.baseURL + "/send/message"
	}
	return c.baseURL + "/" + c.path + "/send/message"
}

func (c *Client) SendMessage(ctx context.Context, phone, message string) (*SendMessageResponse, error) {
	payload, err := json.Marshal(SendMessageRequest{
		Phone:   ConvertPhoneNumber(phone) + jidSuffix,
		Message: message,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("whatsapp gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("whatsapp gateway returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out SendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}
	return &out, nil
}

// SendTextMessage sends message and discards the gateway's receipt.
func (c *Client) SendTextMessage(ctx context.Context, phone, message string) error {
	_, err := c.SendMessage(ctx, phone, message)
	return err
}
