package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/5w1tchy/password-meter/internal/report"
	"github.com/5w1tchy/password-meter/internal/security/password"
	"github.com/5w1tchy/password-meter/internal/validate"
)

func newGenerateCmd(load configLoader) *cobra.Command {
	var (
		withHash bool
		count    int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate random 12-character passwords",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be >= 1, got %d", count)
			}
			if withHash {
				// hash cost follows PM_ARGON2_* like the server
				cfg, err := load()
				if err != nil {
					return err
				}
				if err := validate.Config(cfg); err != nil {
					return err
				}
				password.SetParams(cfg.Argon2Params())
			}
			out := cmd.OutOrStdout()
			for range count {
				pwd := password.Generate()
				fmt.Fprintln(out, report.MsgGenerated, pwd)
				if !withHash {
					continue
				}
				phc, err := password.Hash(pwd)
				if err != nil {
					return fmt.Errorf("hash password: %w", err)
				}
				fmt.Fprintln(out, "argon2id:", phc)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withHash, "hash", false, "also print an argon2id hash of each password")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "how many passwords to generate")
	return cmd
}
