package commands

import (
	"context"
	"fmt"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/sotien/pkg/api"
)

// bearer attaches --token to every outgoing call.
func bearer() connect.ClientOption {
	return connect.WithInterceptors(connect.UnaryInterceptorFunc(func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if token != "" {
				req.Header().Set("Authorization", "Bearer "+token)
			}
			return next(ctx, req)
		}
	}))
}

func balancesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balances <group-id>",
		Short: "Show net positions and suggested transfers for a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewGroupServiceClient(httpClient(), serverURL, bearer())
			resp, err := client.GetGroupBalances(cmd.Context(), connect.NewRequest(&api.GetGroupBalancesRequest{
				GroupID: args[0],
			}))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			outstanding := make(map[string]string, len(resp.Msg.Outstanding))
			for _, p := range resp.Msg.Outstanding {
				outstanding[p.MemberID] = p.Net
			}

			fmt.Fprintln(out, "Balances:")
			for _, p := range resp.Msg.NetList {
				fmt.Fprintf(out, "  %-20s %14s  outstanding %s\n", label(p.DisplayName, p.MemberID), p.Net, outstanding[p.MemberID])
			}
			if len(resp.Msg.Simplified) == 0 {
				fmt.Fprintln(out, "Nothing to settle.")
				return nil
			}
			fmt.Fprintln(out, "Transfers:")
			for _, t := range resp.Msg.Simplified {
				fmt.Fprintf(out, "  %s -> %s: %s\n", label(t.FromName, t.From), label(t.ToName, t.To), t.Amount)
			}
			return nil
		},
	}
}

func settleCmd() *cobra.Command {
	var memberID string
	cmd := &cobra.Command{
		Use:   "settle <share-id>",
		Short: "Confirm that a share has been paid back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewExpenseServiceClient(httpClient(), serverURL, bearer())
			resp, err := client.MarkSharePaid(cmd.Context(), connect.NewRequest(&api.MarkSharePaidRequest{
				ShareID:  args[0],
				MemberID: memberID,
			}))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Share %s paid (%s)\n", resp.Msg.Share.ID, resp.Msg.Share.Amount)
			for _, r := range resp.Msg.Records {
				fmt.Fprintf(out, "  %s %s %s with %s\n", r.MemberID, r.Direction, r.Amount, r.CounterpartyID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&memberID, "member", "", "payer member ID; defaults to the token's user")
	return cmd
}

func label(name, id string) string {
	if name != "" {
		return name
	}
	return id
}
