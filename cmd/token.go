package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/ufukozendev/noobgg-sub002/config"
	"github.com/ufukozendev/noobgg-sub002/internal/constants"
	"github.com/ufukozendev/noobgg-sub002/internal/service"
)

// tokenCmd mints a bearer token signed with AUTH_JWT_SECRET for local testing.
// Production tokens come from the identity provider.
func tokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a development bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if cfg.App.Environment == constants.EnvProduction {
				return errors.New("refusing to issue tokens in production")
			}
			if subject == "" {
				return errors.New("--subject is required")
			}

			token, err := service.NewTokenService(cfg.Auth).Issue(subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&subject, "subject", "s", "", "user key placed in the sub claim")
	fs.DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
