package store

import (
	"context"
	"time"
)

// XPEventData captures one experience award.
type XPEventData struct {
	SessionID  string
	Amount     int
	Reason     string
	TotalAfter int
	LevelAfter int
}

// AchievementEventData captures one achievement unlock.
type AchievementEventData struct {
	SessionID string
	Key       string
	BonusXP   int
}

// Direction values recorded on transaction events. The wallet writes them
// and Aggregate matches on them, so they must stay in lockstep.
const (
	DirectionSent     = "sent"
	DirectionReceived = "received"
)

// TransactionEventData captures one simulated wallet transaction.
type TransactionEventData struct {
	SessionID    string
	Direction    string // DirectionSent or DirectionReceived
	AmountSats   int64
	FeeSats      int64
	Counterparty string
	TxID         string
	FiatUSD      float64
}

// ChatEventData captures one tutor exchange.
type ChatEventData struct {
	SessionID   string
	Persona     string
	TeachingHit bool
}

// LLMRequestEventData captures one upstream chat-completion call.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// TransactionRecord is a queried transaction event.
type TransactionRecord struct {
	Sequence     int64
	Timestamp    time.Time
	SessionID    string
	Direction    string
	AmountSats   int64
	FeeSats      int64
	Counterparty string
	TxID         string
	FiatUSD      float64
}

// UsageStats aggregates LLM usage for one purpose label.
type UsageStats struct {
	Purpose      string
	Requests     int
	InputTokens  int
	OutputTokens int
	Failures     int
}

// Totals aggregates the whole event log for the stats command.
type Totals struct {
	XP            int64
	XPEvents      int
	Achievements  map[string]int
	SentSats      int64
	ReceivedSats  int64
	Transactions  int
	ChatExchanges int
	TeachingHits  int
}

// EventRepo provides append and aggregate access to domain events.
type EventRepo interface {
	AppendXPEvent(ctx context.Context, data XPEventData) error
	AppendAchievementEvent(ctx context.Context, data AchievementEventData) error
	AppendTransactionEvent(ctx context.Context, data TransactionEventData) error
	AppendChatEvent(ctx context.Context, data ChatEventData) error
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentTransactions returns the most recent limit transactions,
	// newest first.
	RecentTransactions(ctx context.Context, limit int) ([]TransactionRecord, error)

	// LLMUsageByPurpose aggregates request counts and token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]UsageStats, error)

	// Aggregate sums the whole log.
	Aggregate(ctx context.Context) (*Totals, error)
}
