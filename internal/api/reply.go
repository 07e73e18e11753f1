package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/rvrjc/collegechat/internal/errors"
	"github.com/rvrjc/collegechat/internal/models"
)

const (
	// maxReplyBytes bounds how much of a response body is read
	maxReplyBytes = 1 << 20
	// maxErrorBodyBytes bounds the body kept on an APIError
	maxErrorBodyBytes = 4096
)

// FetchReply posts message to the chat endpoint and returns the reply text.
// The text is returned exactly as received; callers sanitize before display.
func (c *ChatClient) FetchReply(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", apierrors.ErrEmptyMessage
	}

	if c.IsClosed() {
		return "", fmt.Errorf("client is closed")
	}

	payload, err := json.Marshal(models.ChatRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("failed to build payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", apierrors.NewNetworkError("fetch reply", c.endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return "", apierrors.NewNetworkError("read reply", c.endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if len(body) > maxErrorBodyBytes {
			body = body[:maxErrorBodyBytes]
		}
		return "", apierrors.NewAPIErrorWithBody(resp.StatusCode, c.endpoint, "unexpected status", string(body))
	}

	return ParseReply(body)
}

// ParseReply extracts the "reply" string from a response body.
func ParseReply(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", apierrors.NewParseError("response is not valid JSON", "")
	}

	reply := gjson.GetBytes(body, "reply")
	if !reply.Exists() {
		return "", apierrors.NewParseError("field missing", "reply")
	}
	if reply.Type != gjson.String {
		return "", apierrors.NewParseError(fmt.Sprintf("expected string, got %s", reply.Type), "reply")
	}

	return reply.String(), nil
}
