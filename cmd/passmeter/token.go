package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/5w1tchy/password-meter/internal/config"
	jwtutil "github.com/5w1tchy/password-meter/internal/security/jwt"
	"github.com/5w1tchy/password-meter/internal/validate"
)

type configLoader func(envFiles ...string) (*config.Config, error)

func newTokenCmd(load configLoader) *cobra.Command {
	var (
		sub  string
		role string
		ttl  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the admin endpoints",
		Long:  "Mint an HS256 bearer token signed with PM_JWT_SECRET, for GET /v1/admin/stats.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if err := validate.Config(cfg); err != nil {
				return err
			}
			if !cmd.Flags().Changed("ttl") {
				ttl = cfg.TokenTTL
			}
			tok, _, err := jwtutil.NewConfig(cfg.JWTSecret, cfg.ClockSkew).SignAccess(sub, role, ttl)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&sub, "sub", "admin", "token subject")
	cmd.Flags().StringVar(&role, "role", jwtutil.RoleAdmin, "role claim")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime (defaults to PM_TOKEN_TTL)")
	return cmd
}
