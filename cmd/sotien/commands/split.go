package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmynk/sotien/internal/calculator"
	"github.com/mmynk/sotien/internal/models"
	"github.com/mmynk/sotien/internal/money"
)

func splitCmd() *cobra.Command {
	var (
		equal   []string
		exact   []string
		percent []string
	)
	cmd := &cobra.Command{
		Use:   "split <total>",
		Short: "Preview how a total divides between members",
		Example: `  sotien split 300000 --equal an,binh,chi
  sotien split 300000 --exact an=100000,binh=200000
  sotien split 300000 --percent an=50,binh=30,chi=20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := money.Parse(args[0])
			if err != nil {
				return err
			}

			policy, err := splitPolicy(equal, exact, percent)
			if err != nil {
				return err
			}

			shares, err := calculator.Compute(total, policy)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, s := range shares {
				fmt.Fprintf(out, "%-16s %s\n", s.MemberID, s.Amount)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&equal, "equal", nil, "members sharing equally")
	cmd.Flags().StringSliceVar(&exact, "exact", nil, "member=amount pairs")
	cmd.Flags().StringSliceVar(&percent, "percent", nil, "member=percent pairs")
	cmd.MarkFlagsMutuallyExclusive("equal", "exact", "percent")
	cmd.MarkFlagsOneRequired("equal", "exact", "percent")
	return cmd
}

func splitPolicy(equal, exact, percent []string) (models.SplitPolicy, error) {
	switch {
	case len(equal) > 0:
		return models.SplitPolicy{Kind: models.PolicyEqual, ParticipantIDs: equal}, nil

	case len(exact) > 0:
		policy := models.SplitPolicy{Kind: models.PolicyExact}
		for _, pair := range exact {
			id, value, err := splitPair(pair)
			if err != nil {
				return policy, err
			}
			amt, err := money.Parse(value)
			if err != nil {
				return policy, fmt.Errorf("%s: %w", id, err)
			}
			policy.Exact = append(policy.Exact, models.ExactEntry{MemberID: id, Amount: amt})
		}
		return policy, nil

	default:
		policy := models.SplitPolicy{Kind: models.PolicyPercent}
		for _, pair := range percent {
			id, value, err := splitPair(pair)
			if err != nil {
				return policy, err
			}
			pct, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return policy, fmt.Errorf("%s: invalid percent %q", id, value)
			}
			policy.Percent = append(policy.Percent, models.PercentEntry{MemberID: id, Percent: pct})
		}
		return policy, nil
	}
}

func splitPair(pair string) (string, string, error) {
	id, value, ok := strings.Cut(pair, "=")
	id, value = strings.TrimSpace(id), strings.TrimSpace(value)
	if !ok || id == "" || value == "" {
		return "", "", fmt.Errorf("expected member=value, got %q", pair)
	}
	return id, value, nil
}
