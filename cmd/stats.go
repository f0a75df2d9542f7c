package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/btced/btced/internal/llm"
	"github.com/btced/btced/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning and model usage statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		totals, err := s.EventRepo().Aggregate(ctx)
		if err != nil {
			return fmt.Errorf("aggregate events: %w", err)
		}

		fmt.Println("Learning")
		fmt.Println(strings.Repeat("─", 40))
		fmt.Printf("  XP earned        %d (%d awards)\n", totals.XP, totals.XPEvents)
		fmt.Printf("  Transactions     %d (sent %d sats, received %d sats)\n",
			totals.Transactions, totals.SentSats, totals.ReceivedSats)
		fmt.Printf("  Chat exchanges   %d (%d teaching hits)\n",
			totals.ChatExchanges, totals.TeachingHits)

		if len(totals.Achievements) > 0 {
			keys := make([]string, 0, len(totals.Achievements))
			for k := range totals.Achievements {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Println("  Achievements")
			for _, k := range keys {
				fmt.Printf("    %-24s %d\n", k, totals.Achievements[k])
			}
		}

		usage, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("aggregate model usage: %w", err)
		}
		if len(usage) == 0 {
			return nil
		}

		fmt.Println()
		fmt.Println("Model usage")
		fmt.Println(strings.Repeat("─", 40))
		fmt.Printf("  %-20s %-9s %-10s %-10s %s\n", "Purpose", "Requests", "In", "Out", "Failures")
		for _, u := range usage {
			fmt.Printf("  %-20s %-9d %-10d %-10d %d\n",
				u.Purpose, u.Requests, u.InputTokens, u.OutputTokens, u.Failures)
		}

		model, _ := cmd.Flags().GetString("model")
		if cost := llm.LookupCost(model); cost != nil {
			var total float64
			for _, u := range usage {
				total += cost.Cost(u.InputTokens, u.OutputTokens)
			}
			fmt.Printf("\n  Estimated spend at %s rates: $%.4f\n", model, total)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().String("model", "grok-beta", "Model whose pricing estimates total spend")
}
