package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/btced/btced/internal/store"
)

// LoggingProvider is a decorator that records every model request as an
// event.
type LoggingProvider struct {
	inner     Provider
	eventRepo store.EventRepo
}

// WithLogging wraps a Provider with event logging.
func WithLogging(p Provider, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, eventRepo: repo}
}

func (l *LoggingProvider) Complete(ctx context.Context, req Request) (*Reply, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	reply, err := l.inner.Complete(ctx, req)

	latencyMs := time.Since(start).Milliseconds()

	data := store.LLMRequestEventData{
		Provider:  l.inner.ModelID(),
		Model:     l.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: latencyMs,
		Success:   err == nil,
	}

	if reply != nil {
		data.InputTokens = reply.Usage.InputTokens
		data.OutputTokens = reply.Usage.OutputTokens
		data.Model = reply.Model
	}

	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// Log the event but don't fail the request if logging fails.
	if l.eventRepo != nil {
		if logErr := l.eventRepo.AppendLLMRequest(ctx, data); logErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to log model request event: %v\n", logErr)
		}
	}

	return reply, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
