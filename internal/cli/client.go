package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// client is a thin JSON client over the faucet API. Responses are decoded
// into generic maps and re-rendered as YAML so the CLI stays agnostic to
// response shape changes.
type client struct {
	baseURL string
	account string
	http    *http.Client
}

func newClient() *client {
	base := strings.TrimSpace(viper.GetString("api_url"))
	if base == "" {
		base = "http://localhost:8080"
	}
	return &client{
		baseURL: strings.TrimRight(base, "/"),
		account: strings.TrimSpace(viper.GetString("account")),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *client) call(ctx context.Context, method, path string, body any) (map[string]any, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.account != "" {
		req.Header.Set("X-Account-Address", c.account)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode >= 400 {
		code, _ := decoded["code"].(string)
		message, _ := decoded["message"].(string)
		return nil, fmt.Errorf("%s %s: %d %s: %s", method, path, resp.StatusCode, code, message)
	}
	return decoded, nil
}

func renderYAML(payload map[string]any) (string, error) {
	out, err := yaml.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("render response: %w", err)
	}
	return string(out), nil
}
