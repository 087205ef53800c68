package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spec-kit/staffing-service/internal/auth"
	"github.com/spec-kit/staffing-service/internal/domain"
)

type tokenOutput struct {
	Token     string      `json:"token"`
	Subject   string      `json:"subject"`
	Role      domain.Role `json:"role"`
	ExpiresAt time.Time   `json:"expires_at"`
}

func newTokenCmd() *cobra.Command {
	var (
		subject string
		role    string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			r := domain.Role(role)
			if !r.Valid() {
				return fmt.Errorf("invalid --role %q: want viewer, editor or admin", role)
			}
			if subject == "" {
				return fmt.Errorf("--subject is required")
			}

			tokens := auth.NewTokenManager(cfg.Auth)
			token, expiresAt, err := tokens.GenerateToken(subject, r)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(tokenOutput{Token: token, Subject: subject, Role: r, ExpiresAt: expiresAt})
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "token subject, usually an email")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleViewer), "viewer, editor or admin")
	return cmd
}
