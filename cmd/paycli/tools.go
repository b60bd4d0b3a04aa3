package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"securepay/internal/engine/notifications"
	"securepay/internal/engine/signing"
	"securepay/internal/platform/auth"
)

var errMissingPaymentID = errors.New("payment id is required")

func (a *app) tokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token [file]",
		Short: "Compute the Token for a JSON request body",
		Long: `Compute the Token for a JSON object read from file or stdin.

Nested objects, arrays and booleans do not take part in the token, and an
existing Token field is ignored.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := a.password()
			if err != nil {
				return err
			}

			var path string
			if len(args) == 1 {
				path = args[0]
			}
			body, err := readInput(cmd, path)
			if err != nil {
				return err
			}

			fields, err := signing.FieldsFromJSON(body)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), signing.Token(fields.Without(signing.TokenField), password))
			return nil
		},
	}
}

func (a *app) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [file]",
		Short: "Check the terminal key and Token of a notification body",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			var path string
			if len(args) == 1 {
				path = args[0]
			}
			body, err := readInput(cmd, path)
			if err != nil {
				return err
			}

			verifier := notifications.NewVerifier(a.cfg.Terminal.Key, a.cfg.Terminal.Password, nil)
			n, err := verifier.Verify(body)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "valid: order %s payment %s status %s amount %d\n",
				n.OrderID, n.PaymentID, n.Status, n.Amount)
			return nil
		},
	}
}

func (a *app) apiTokenCmd() *cobra.Command {
	var (
		subject string
		scopes  []string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "api-token",
		Short: "Issue a bearer token for the notification read API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jwtCfg := a.cfg.JWT
			if cmd.Flags().Changed("ttl") {
				jwtCfg.AccessTokenTTL = ttl
			}

			token, err := auth.NewTokenService(jwtCfg).GenerateAccessToken(subject, scopes...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "operator", "Token subject")
	cmd.Flags().StringSliceVar(&scopes, "scope", []string{auth.ScopeNotificationsRead}, "Granted scopes")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (config jwt.access_token_ttl when unset)")

	return cmd
}
