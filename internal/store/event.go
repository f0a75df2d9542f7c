package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// sequenceCounter manages the global monotonic sequence number shared across
// all event types. Each event type lives in its own table, so per-table
// auto-increment IDs can't establish cross-type ordering. This shared counter
// assigns a single increasing sequence to every event regardless of type:
// a transaction can be ordered against the XP award it triggered.
//
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo with raw SQL.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendXPEvent(ctx context.Context, data XPEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO xp_events (sequence, session_id, amount, reason, total_after, level_after)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		seqNum, data.SessionID, data.Amount, data.Reason, data.TotalAfter, data.LevelAfter,
	)
	if err != nil {
		return fmt.Errorf("save xp event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAchievementEvent(ctx context.Context, data AchievementEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO achievement_events (sequence, session_id, achievement_key, bonus_xp)
		 VALUES (?, ?, ?, ?)`,
		seqNum, data.SessionID, data.Key, data.BonusXP,
	)
	if err != nil {
		return fmt.Errorf("save achievement event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendTransactionEvent(ctx context.Context, data TransactionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO transaction_events
		 (sequence, session_id, direction, amount_sats, fee_sats, counterparty, tx_id, fiat_usd)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, data.SessionID, data.Direction, data.AmountSats, data.FeeSats,
		data.Counterparty, data.TxID, data.FiatUSD,
	)
	if err != nil {
		return fmt.Errorf("save transaction event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendChatEvent(ctx context.Context, data ChatEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO chat_events (sequence, session_id, persona, teaching_hit)
		 VALUES (?, ?, ?, ?)`,
		seqNum, data.SessionID, data.Persona, data.TeachingHit,
	)
	if err != nil {
		return fmt.Errorf("save chat event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO llm_request_events
		 (sequence, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, data.Provider, data.Model, data.Purpose, data.InputTokens,
		data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("save llm request event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentTransactions(ctx context.Context, limit int) ([]TransactionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT sequence, timestamp, session_id, direction, amount_sats, fee_sats, counterparty, tx_id, fiat_usd
		 FROM transaction_events ORDER BY sequence DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var records []TransactionRecord
	for rows.Next() {
		var rec TransactionRecord
		if err := rows.Scan(&rec.Sequence, &rec.Timestamp, &rec.SessionID, &rec.Direction,
			&rec.AmountSats, &rec.FeeSats, &rec.Counterparty, &rec.TxID, &rec.FiatUSD); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]UsageStats, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT purpose, COUNT(*), SUM(input_tokens), SUM(output_tokens),
		        SUM(CASE WHEN success THEN 0 ELSE 1 END)
		 FROM llm_request_events GROUP BY purpose ORDER BY purpose`)
	if err != nil {
		return nil, fmt.Errorf("query llm usage: %w", err)
	}
	defer rows.Close()

	var stats []UsageStats
	for rows.Next() {
		var u UsageStats
		if err := rows.Scan(&u.Purpose, &u.Requests, &u.InputTokens, &u.OutputTokens, &u.Failures); err != nil {
			return nil, fmt.Errorf("scan llm usage: %w", err)
		}
		stats = append(stats, u)
	}
	return stats, rows.Err()
}

func (r *eventRepo) Aggregate(ctx context.Context) (*Totals, error) {
	t := &Totals{Achievements: make(map[string]int)}

	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0), COUNT(*) FROM xp_events`,
	).Scan(&t.XP, &t.XPEvents)
	if err != nil {
		return nil, fmt.Errorf("aggregate xp: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT achievement_key, COUNT(*) FROM achievement_events GROUP BY achievement_key`)
	if err != nil {
		return nil, fmt.Errorf("aggregate achievements: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("scan achievement count: %w", err)
		}
		t.Achievements[key] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(CASE WHEN direction = ? THEN amount_sats ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN direction = ? THEN amount_sats ELSE 0 END), 0),
		        COUNT(*)
		 FROM transaction_events`,
		DirectionSent, DirectionReceived,
	).Scan(&t.SentSats, &t.ReceivedSats, &t.Transactions)
	if err != nil {
		return nil, fmt.Errorf("aggregate transactions: %w", err)
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(teaching_hit), 0) FROM chat_events`,
	).Scan(&t.ChatExchanges, &t.TeachingHits)
	if err != nil {
		return nil, fmt.Errorf("aggregate chats: %w", err)
	}

	return t, nil
}
