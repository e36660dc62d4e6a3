package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmynk/sotien/internal/amount"
	"github.com/mmynk/sotien/internal/category"
	"github.com/mmynk/sotien/internal/money"
	"github.com/mmynk/sotien/internal/segment"
)

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <text>",
		Short: "Extract the amount from a transaction note",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := amount.NewExtractor().Extract(strings.Join(args, " "))
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Amount: %s\n", res.Amount)
			fmt.Fprintf(out, "Method: %s\n", res.Method)
			fmt.Fprintf(out, "Confidence: %.2f\n", res.Confidence)
			if res.MatchedText != "" {
				fmt.Fprintf(out, "Matched: %q\n", res.MatchedText)
			}
			return nil
		},
	}
}

func classifyCmd() *cobra.Command {
	var (
		amountStr string
		remoteURL string
	)
	cmd := &cobra.Command{
		Use:   "classify <note>",
		Short: "Predict the spending category of a note",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var amt money.Cents
			if amountStr != "" {
				parsed, err := money.Parse(amountStr)
				if err != nil {
					return err
				}
				amt = parsed
			}

			pred := newPredictor(remoteURL).Predict(cmd.Context(), strings.Join(args, " "), amt)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Category: %s (%.4f, %s)\n", pred.Category, pred.Confidence, pred.Model)
			for _, s := range pred.Suggestions {
				fmt.Fprintf(out, "  %-16s %.4f\n", s.Category, s.Confidence)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&amountStr, "amount", "", "transaction amount, used as a category hint")
	cmd.Flags().StringVar(&remoteURL, "remote", "", "ML prediction service base URL")
	return cmd
}

func segmentCmd() *cobra.Command {
	var remoteURL string
	cmd := &cobra.Command{
		Use:   "segment <text>",
		Short: "Split a message into transactions and analyze each one",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer := segment.NewAnalyzer(amount.NewExtractor(), newPredictor(remoteURL))
			candidates := analyzer.Analyze(cmd.Context(), strings.Join(args, " "))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Transactions: %d\n", len(candidates))
			for i, c := range candidates {
				fmt.Fprintf(out, "%d. %s\n", i+1, c.Sentence)
				fmt.Fprintf(out, "   amount=%s method=%s category=%s (%.4f)\n", c.Amount, c.Method, c.Category, c.CategoryConfidence)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&remoteURL, "remote", "", "ML prediction service base URL")
	return cmd
}

func newPredictor(remoteURL string) category.Predictor {
	classifier := category.NewClassifier()
	if remoteURL == "" {
		return category.NewKeywordPredictor(classifier)
	}
	return category.NewRemotePredictor(category.NewRemoteClient(remoteURL, httpClient()), classifier)
}
