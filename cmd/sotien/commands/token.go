package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/sotien/internal/auth"
	"github.com/mmynk/sotien/internal/config"
)

func tokenCmd() *cobra.Command {
	var (
		userID string
		email  string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token signed with the server secret",
		Long: `Mint a bearer token for local testing. The signing secret and default
lifetime come from the server configuration (SOTIEN_CONFIG, JWT_SECRET).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Auth.JWTSecret == "" {
				return errors.New("no signing secret configured; set JWT_SECRET")
			}
			if ttl == 0 {
				ttl = cfg.Auth.TokenTTL
			}

			signed, err := auth.NewJWTManager(cfg.Auth.JWTSecret, ttl).Generate(userID, email)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user ID to embed in the token")
	cmd.Flags().StringVar(&email, "email", "", "optional email claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime; defaults to the configured token_ttl")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
