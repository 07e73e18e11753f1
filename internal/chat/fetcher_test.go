package chat

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/rvrjc/collegechat/internal/errors"
	"github.com/rvrjc/collegechat/internal/models"
)

type fakeClient struct {
	mu       sync.Mutex
	reply    string
	err      error
	block    bool
	messages []string
}

func (f *fakeClient) FetchReply(ctx context.Context, message string) (string, error) {
	f.mu.Lock()
	f.messages = append(f.messages, message)
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.reply, f.err
}

func TestFetchSuccessWaitsForDelay(t *testing.T) {
	client := &fakeClient{reply: "X"}
	f := NewFetcher(client, WithDelay(30*time.Millisecond))

	start := time.Now()
	reply := f.Fetch(context.Background(), Request{Seq: 3, Text: "Results"})

	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	assert.Equal(t, Reply{Seq: 3, Text: "X"}, reply)
	assert.Equal(t, []string{"Results"}, client.messages)
}

func TestFetchFailureUsesFallback(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	cause := apierrors.NewNetworkError("fetch reply", "https://bot.example/chat", errors.New("dial tcp: refused"))
	client := &fakeClient{err: cause}
	f := NewFetcher(client, WithDelay(time.Hour), WithLogger(logger))

	start := time.Now()
	reply := f.Fetch(context.Background(), Request{Seq: 1, Text: "hi"})

	assert.Less(t, time.Since(start), time.Second, "failures are not delayed")
	assert.Equal(t, uint64(1), reply.Seq)
	assert.Equal(t, models.FallbackReply, reply.Text)
	assert.ErrorIs(t, reply.Err, apierrors.ErrNetwork)
	assert.Contains(t, buf.String(), `"kind":"network"`)
}

func TestFetchCanceledDuringRequest(t *testing.T) {
	client := &fakeClient{block: true}
	f := NewFetcher(client, WithDelay(0))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan Reply, 1)
	go func() { done <- f.Fetch(ctx, Request{Seq: 1, Text: "hi"}) }()

	cancel()
	select {
	case reply := <-done:
		assert.ErrorIs(t, reply.Err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Fetch did not return after cancel")
	}
}

func TestFetchCanceledDuringDelay(t *testing.T) {
	client := &fakeClient{reply: "late"}
	f := NewFetcher(client, WithDelay(time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	reply := f.Fetch(ctx, Request{Seq: 1, Text: "hi"})
	assert.ErrorIs(t, reply.Err, context.DeadlineExceeded)
}

func TestFetcherDefaults(t *testing.T) {
	f := NewFetcher(&fakeClient{})
	assert.Equal(t, DefaultDelay, f.Delay())

	f = NewFetcher(&fakeClient{}, WithDelay(-time.Second))
	assert.Zero(t, f.Delay())
}

func TestFetchAndResolveEndToEnd(t *testing.T) {
	s := NewSession(morning(), models.DefaultTheme)
	f := NewFetcher(&fakeClient{reply: "B.Tech, M.Tech, MBA"}, WithDelay(0))

	req, ok := s.SelectSuggestion(0)
	require.True(t, ok)
	require.True(t, s.Typing())

	require.True(t, s.Resolve(f.Fetch(context.Background(), req)))
	assert.False(t, s.Typing())
	assert.Equal(t, models.Message{Sender: models.SenderBot, Text: "B.Tech, M.Tech, MBA"}, lastMessage(t, s))
}
