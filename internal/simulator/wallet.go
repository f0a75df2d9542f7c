// Package simulator implements the practice wallet: play-money satoshis,
// fee tiers that mimic real spending choices, and a transaction log. Nothing
// here touches a real network.
package simulator

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/btced/btced/internal/progress"
	"github.com/btced/btced/internal/store"
)

// StartingBalance is the play-money balance every session begins with.
const StartingBalance int64 = 1_000_000

// XP awards for wallet actions.
const (
	SendXP    = 15
	ReceiveXP = 10
)

// FeeTier selects how a simulated send is settled.
type FeeTier string

const (
	// TierLightning settles over the simulated Lightning Network for a
	// flat one-satoshi fee.
	TierLightning FeeTier = "lightning"
	// TierPriority is a fast on-chain send at 0.1% of the amount.
	TierPriority FeeTier = "priority"
	// TierEconomy is a slow on-chain send at 0.05% of the amount.
	TierEconomy FeeTier = "economy"
)

var (
	// ErrInvalidAmount is returned for zero or negative amounts.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInsufficientBalance is returned when amount plus fee exceeds the
	// balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrUnknownTier is returned for an unrecognized fee tier.
	ErrUnknownTier = errors.New("unknown fee tier")
)

// Direction of a logged transaction, shared with the event store so its
// aggregates match what the wallet writes.
const (
	DirectionSent     = store.DirectionSent
	DirectionReceived = store.DirectionReceived
)

// Transaction is one entry in the wallet's in-memory history.
type Transaction struct {
	ID           string    `json:"id"`
	Direction    string    `json:"direction"`
	AmountSats   int64     `json:"amount_sats"`
	FeeSats      int64     `json:"fee_sats"`
	Counterparty string    `json:"counterparty"`
	FiatUSD      float64   `json:"fiat_usd"`
	Tier         FeeTier   `json:"tier,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// QuoteFunc returns the current USD price of one bitcoin; it is consulted to
// stamp each transaction with its fiat value at the time.
type QuoteFunc func(ctx context.Context) float64

// Wallet is a session's simulated balance. Not safe for concurrent use; the
// session layer serializes access.
type Wallet struct {
	sessionID string
	tracker   *progress.Tracker
	events    store.EventRepo
	quote     QuoteFunc

	balance int64
	history []Transaction
}

// NewWallet builds a wallet with the standard starting balance.
func NewWallet(sessionID string, tracker *progress.Tracker, events store.EventRepo, quote QuoteFunc) *Wallet {
	return &Wallet{
		sessionID: sessionID,
		tracker:   tracker,
		events:    events,
		quote:     quote,
		balance:   StartingBalance,
	}
}

// Balance returns the spendable satoshis.
func (w *Wallet) Balance() int64 { return w.balance }

// History returns the transaction log, oldest first.
func (w *Wallet) History() []Transaction { return w.history }

// Fee computes the tier's fee for the given amount. On-chain tiers charge at
// least one satoshi.
func Fee(amount int64, tier FeeTier) (int64, error) {
	switch tier {
	case TierLightning:
		return 1, nil
	case TierPriority:
		return max(amount/1000, 1), nil
	case TierEconomy:
		return max(amount/2000, 1), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
}

// Send debits amount plus the tier fee. An empty counterparty gets a
// generated address matching the tier.
func (w *Wallet) Send(ctx context.Context, counterparty string, amount int64, tier FeeTier) (Transaction, []progress.Effect, error) {
	if amount <= 0 {
		return Transaction{}, nil, ErrInvalidAmount
	}
	fee, err := Fee(amount, tier)
	if err != nil {
		return Transaction{}, nil, err
	}
	if amount+fee > w.balance {
		return Transaction{}, nil, ErrInsufficientBalance
	}
	if counterparty == "" {
		counterparty = fakeAddress(tier)
	}

	w.balance -= amount + fee
	tx := Transaction{
		ID:           fakeTxID(),
		Direction:    DirectionSent,
		AmountSats:   amount,
		FeeSats:      fee,
		Counterparty: counterparty,
		FiatUSD:      w.fiatValue(ctx, amount),
		Tier:         tier,
		Timestamp:    time.Now().UTC(),
	}
	w.history = append(w.history, tx)
	w.logTransaction(ctx, tx)

	effects := w.tracker.AwardXP(ctx, SendXP, "wallet_send")
	return tx, effects, nil
}

// Receive credits amount from a simulated sender. The first receive ever
// unlocks the holder achievement.
func (w *Wallet) Receive(ctx context.Context, from string, amount int64) (Transaction, []progress.Effect, error) {
	if amount <= 0 {
		return Transaction{}, nil, ErrInvalidAmount
	}
	if from == "" {
		from = fakeAddress(TierEconomy)
	}

	w.balance += amount
	tx := Transaction{
		ID:           fakeTxID(),
		Direction:    DirectionReceived,
		AmountSats:   amount,
		Counterparty: from,
		FiatUSD:      w.fiatValue(ctx, amount),
		Timestamp:    time.Now().UTC(),
	}
	w.history = append(w.history, tx)
	w.logTransaction(ctx, tx)

	effects := w.tracker.AwardXP(ctx, ReceiveXP, "wallet_receive")
	if fx, ok := w.tracker.Unlock(ctx, progress.AchHolder); ok {
		effects = append(effects, fx...)
	}
	return tx, effects, nil
}

// Reset restores the starting balance. The history stays; the point of the
// simulator is that mistakes are reviewable, not erased.
func (w *Wallet) Reset() {
	w.balance = StartingBalance
}

func (w *Wallet) fiatValue(ctx context.Context, amount int64) float64 {
	if w.quote == nil {
		return 0
	}
	price := w.quote(ctx)
	if price <= 0 {
		return 0
	}
	return float64(amount) / 1e8 * price
}

func (w *Wallet) logTransaction(ctx context.Context, tx Transaction) {
	if w.events == nil {
		return
	}
	err := w.events.AppendTransactionEvent(ctx, store.TransactionEventData{
		SessionID:    w.sessionID,
		Direction:    tx.Direction,
		AmountSats:   tx.AmountSats,
		FeeSats:      tx.FeeSats,
		Counterparty: tx.Counterparty,
		TxID:         tx.ID,
		FiatUSD:      tx.FiatUSD,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log transaction event: %v\n", err)
	}
}

// fakeTxID returns a random 64-hex-character identifier shaped like a real
// transaction hash.
func fakeTxID() string {
	var b [32]byte
	rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

// fakeAddress returns a plausible-looking address for the tier: a Lightning
// invoice prefix or a bech32-style on-chain address.
func fakeAddress(tier FeeTier) string {
	var b [10]byte
	rand.Read(b[:])
	if tier == TierLightning {
		return "lnbc1" + hex.EncodeToString(b[:])
	}
	return "bc1q" + hex.EncodeToString(b[:])
}
