package chat

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	apierrors "github.com/rvrjc/collegechat/internal/errors"
	"github.com/rvrjc/collegechat/internal/models"
)

// ReplyClient fetches the raw reply for one user message.
type ReplyClient interface {
	FetchReply(ctx context.Context, message string) (string, error)
}

// Fetcher turns a Request into a Reply: it substitutes the fallback text on
// any failure and holds successful replies back for a minimum delay.
type Fetcher struct {
	client ReplyClient
	delay  time.Duration
	logger zerolog.Logger
}

// FetcherOption configures a Fetcher
type FetcherOption func(*Fetcher)

// WithDelay sets the pause applied after a successful reply
func WithDelay(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if d < 0 {
			d = 0
		}
		f.delay = d
	}
}

// WithLogger sets the logger used for failed fetches
func WithLogger(l zerolog.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.logger = l
	}
}

// DefaultDelay paces replies so the typing indicator is visible
const DefaultDelay = 1500 * time.Millisecond

// NewFetcher creates a Fetcher around client
func NewFetcher(client ReplyClient, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client: client,
		delay:  DefaultDelay,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Delay returns the configured post-reply delay
func (f *Fetcher) Delay() time.Duration {
	return f.delay
}

// Fetch runs req to completion. It never returns an empty-handed Reply:
// failures carry models.FallbackReply. Cancelling ctx aborts both the
// request and the delay.
func (f *Fetcher) Fetch(ctx context.Context, req Request) Reply {
	start := time.Now()

	text, err := f.client.FetchReply(ctx, req.Text)
	if err != nil {
		if ctx.Err() != nil {
			return Reply{Seq: req.Seq, Text: models.FallbackReply, Err: ctx.Err()}
		}
		f.logger.Warn().
			Err(err).
			Uint64("seq", req.Seq).
			Str("kind", apierrors.Kind(err)).
			Int("status", apierrors.GetHTTPStatus(err)).
			Dur("elapsed", time.Since(start)).
			Msg("reply fetch failed, using fallback")
		return Reply{Seq: req.Seq, Text: models.FallbackReply, Err: err}
	}

	if err := sleep(ctx, f.delay); err != nil {
		return Reply{Seq: req.Seq, Text: models.FallbackReply, Err: err}
	}

	f.logger.Debug().
		Uint64("seq", req.Seq).
		Int("reply_len", len(text)).
		Dur("elapsed", time.Since(start)).
		Msg("reply received")

	return Reply{Seq: req.Seq, Text: text}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
