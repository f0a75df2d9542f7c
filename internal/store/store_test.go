package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestAppendAndAggregate(t *testing.T) {
	st := openTestStore(t)
	repo := st.EventRepo()
	ctx := context.Background()

	if err := repo.AppendXPEvent(ctx, XPEventData{
		SessionID: "s1", Amount: 10, Reason: "quiz_correct", TotalAfter: 10, LevelAfter: 1,
	}); err != nil {
		t.Fatalf("AppendXPEvent: %v", err)
	}
	if err := repo.AppendXPEvent(ctx, XPEventData{
		SessionID: "s1", Amount: 25, Reason: "achievement", TotalAfter: 35, LevelAfter: 1,
	}); err != nil {
		t.Fatalf("AppendXPEvent: %v", err)
	}
	if err := repo.AppendAchievementEvent(ctx, AchievementEventData{
		SessionID: "s1", Key: "ach_quiz_champion", BonusXP: 25,
	}); err != nil {
		t.Fatalf("AppendAchievementEvent: %v", err)
	}
	if err := repo.AppendTransactionEvent(ctx, TransactionEventData{
		SessionID: "s1", Direction: DirectionSent, AmountSats: 500_000, FeeSats: 1,
		Counterparty: "bc1qdemo", TxID: "abc", FiatUSD: 312.5,
	}); err != nil {
		t.Fatalf("AppendTransactionEvent: %v", err)
	}
	if err := repo.AppendTransactionEvent(ctx, TransactionEventData{
		SessionID: "s1", Direction: DirectionReceived, AmountSats: 200_000,
		Counterparty: "maria", TxID: "def", FiatUSD: 125.0,
	}); err != nil {
		t.Fatalf("AppendTransactionEvent: %v", err)
	}
	if err := repo.AppendChatEvent(ctx, ChatEventData{
		SessionID: "s1", Persona: "pal", TeachingHit: true,
	}); err != nil {
		t.Fatalf("AppendChatEvent: %v", err)
	}

	totals, err := repo.Aggregate(ctx)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if totals.XP != 35 {
		t.Errorf("XP = %d, want 35", totals.XP)
	}
	if totals.XPEvents != 2 {
		t.Errorf("XPEvents = %d, want 2", totals.XPEvents)
	}
	if totals.Achievements["ach_quiz_champion"] != 1 {
		t.Errorf("Achievements = %v, want ach_quiz_champion once", totals.Achievements)
	}
	if totals.SentSats != 500_000 {
		t.Errorf("SentSats = %d, want 500000", totals.SentSats)
	}
	if totals.ReceivedSats != 200_000 {
		t.Errorf("ReceivedSats = %d, want 200000", totals.ReceivedSats)
	}
	if totals.Transactions != 2 {
		t.Errorf("Transactions = %d, want 2", totals.Transactions)
	}
	if totals.ChatExchanges != 1 || totals.TeachingHits != 1 {
		t.Errorf("ChatExchanges = %d, TeachingHits = %d, want 1 and 1", totals.ChatExchanges, totals.TeachingHits)
	}
}

func TestRecentTransactionsNewestFirst(t *testing.T) {
	st := openTestStore(t)
	repo := st.EventRepo()
	ctx := context.Background()

	for i, amount := range []int64{100, 200, 300} {
		err := repo.AppendTransactionEvent(ctx, TransactionEventData{
			SessionID: "s1", Direction: DirectionReceived, AmountSats: amount,
			Counterparty: "ext", TxID: string(rune('a' + i)), FiatUSD: 0,
		})
		if err != nil {
			t.Fatalf("AppendTransactionEvent: %v", err)
		}
	}

	records, err := repo.RecentTransactions(ctx, 2)
	if err != nil {
		t.Fatalf("RecentTransactions: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].AmountSats != 300 || records[1].AmountSats != 200 {
		t.Errorf("amounts = %d, %d; want 300, 200", records[0].AmountSats, records[1].AmountSats)
	}
	if records[0].Sequence <= records[1].Sequence {
		t.Errorf("sequences not descending: %d, %d", records[0].Sequence, records[1].Sequence)
	}
}

func TestLLMUsageByPurpose(t *testing.T) {
	st := openTestStore(t)
	repo := st.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "openai", Model: "grok-beta", Purpose: "tutor-guide", InputTokens: 100, OutputTokens: 50, Success: true},
		{Provider: "openai", Model: "grok-beta", Purpose: "tutor-guide", InputTokens: 120, OutputTokens: 60, Success: false, ErrorMessage: "timeout"},
		{Provider: "openai", Model: "grok-beta", Purpose: "tutor-adventure", InputTokens: 80, OutputTokens: 200, Success: true},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("AppendLLMRequest: %v", err)
		}
	}

	stats, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("LLMUsageByPurpose: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("len(stats) = %d, want 2", len(stats))
	}
	// Ordered by purpose: tutor-adventure, tutor-guide.
	if stats[0].Purpose != "tutor-adventure" || stats[0].Requests != 1 {
		t.Errorf("stats[0] = %+v", stats[0])
	}
	if stats[1].Purpose != "tutor-guide" || stats[1].Requests != 2 || stats[1].Failures != 1 {
		t.Errorf("stats[1] = %+v", stats[1])
	}
	if stats[1].InputTokens != 220 {
		t.Errorf("guide input tokens = %d, want 220", stats[1].InputTokens)
	}
}
