package api

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/rvrjc/collegechat/internal/errors"
	"github.com/rvrjc/collegechat/internal/models"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name         string
		opts         []ClientOption
		wantErr      bool
		wantEndpoint string
		wantTimeout  time.Duration
	}{
		{
			name:         "defaults",
			wantEndpoint: models.EndpointChat,
			wantTimeout:  DefaultTimeout,
		},
		{
			name:         "custom endpoint and timeout",
			opts:         []ClientOption{WithEndpoint("http://localhost:9000/chat"), WithTimeout(5 * time.Second)},
			wantEndpoint: "http://localhost:9000/chat",
			wantTimeout:  5 * time.Second,
		},
		{
			name:    "empty endpoint",
			opts:    []ClientOption{WithEndpoint("")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]ClientOption{WithHTTPClient(&MockHttpClient{})}, tt.opts...)
			client, err := NewClient(opts...)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantEndpoint, client.Endpoint())
			assert.Equal(t, tt.wantTimeout, client.timeout)
		})
	}
}

func TestNewClientBuildsTLSClient(t *testing.T) {
	client, err := NewClient()
	require.NoError(t, err)
	assert.NotNil(t, client.httpClient)
	client.Close()
}

func TestFetchReplySuccess(t *testing.T) {
	mock := &MockHttpClient{Body: `{"reply":"We offer <b>B.Tech</b> and M.Tech."}`}
	client, err := NewClient(WithHTTPClient(mock), WithEndpoint("https://bot.example/chat"))
	require.NoError(t, err)

	reply, err := client.FetchReply(context.Background(), "Courses Offered")
	require.NoError(t, err)
	assert.Equal(t, "We offer <b>B.Tech</b> and M.Tech.", reply)

	require.NotNil(t, mock.LastRequest)
	assert.Equal(t, "POST", mock.LastRequest.Method)
	assert.Equal(t, "https://bot.example/chat", mock.LastRequest.URL.String())
	assert.Equal(t, "application/json", mock.LastRequest.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"message":"Courses Offered"}`, string(mock.LastBody))
	assert.True(t, mock.body.closed, "response body should be closed")
}

func TestFetchReplyFailures(t *testing.T) {
	tests := []struct {
		name   string
		mock   *MockHttpClient
		check  func(error) bool
		status int
	}{
		{
			name:  "network error",
			mock:  &MockHttpClient{Err: errors.New("connection reset")},
			check: apierrors.IsNetworkError,
		},
		{
			name:   "server error",
			mock:   &MockHttpClient{StatusCode: 503, Body: "Service Unavailable"},
			check:  apierrors.IsAPIError,
			status: 503,
		},
		{
			name:  "not json",
			mock:  &MockHttpClient{Body: "<html>oops</html>"},
			check: apierrors.IsParseError,
		},
		{
			name:  "missing reply",
			mock:  &MockHttpClient{Body: `{"error":"bad"}`},
			check: apierrors.IsParseError,
		},
		{
			name:  "reply not a string",
			mock:  &MockHttpClient{Body: `{"reply":42}`},
			check: apierrors.IsParseError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(WithHTTPClient(tt.mock))
			require.NoError(t, err)

			_, err = client.FetchReply(context.Background(), "Results")
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error kind: %v", err)
			assert.Equal(t, tt.status, apierrors.GetHTTPStatus(err))
		})
	}
}

func TestFetchReplyTruncatesErrorBody(t *testing.T) {
	mock := &MockHttpClient{StatusCode: 500, Body: strings.Repeat("x", 10000)}
	client, err := NewClient(WithHTTPClient(mock))
	require.NoError(t, err)

	_, err = client.FetchReply(context.Background(), "hi")
	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Len(t, apiErr.Body, maxErrorBodyBytes)
}

func TestFetchReplyRejectsEmpty(t *testing.T) {
	mock := &MockHttpClient{Body: `{"reply":"x"}`}
	client, err := NewClient(WithHTTPClient(mock))
	require.NoError(t, err)

	_, err = client.FetchReply(context.Background(), "   ")
	assert.ErrorIs(t, err, apierrors.ErrEmptyMessage)
	assert.Zero(t, mock.Calls)
}

func TestFetchReplyCanceledContext(t *testing.T) {
	mock := &MockHttpClient{Err: errors.New("request canceled")}
	client, err := NewClient(WithHTTPClient(mock))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.FetchReply(ctx, "hi")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClose(t *testing.T) {
	mock := &MockHttpClient{Body: `{"reply":"x"}`}
	client, err := NewClient(WithHTTPClient(mock))
	require.NoError(t, err)

	client.Close()
	client.Close()
	assert.True(t, client.IsClosed())
	assert.True(t, mock.IdleClosed)

	_, err = client.FetchReply(context.Background(), "hi")
	assert.Error(t, err)
	assert.Zero(t, mock.Calls)
}

func TestParseReply(t *testing.T) {
	reply, err := ParseReply([]byte(`{"reply":"","extra":true}`))
	require.NoError(t, err)
	assert.Equal(t, "", reply)

	reply, err = ParseReply([]byte(`{"reply":"line1\nline2"}`))
	require.NoError(t, err)
	assert.Equal(t, "line1\nline2", reply)
}
