package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vadimtrunov/tmdbapi/internal/metadata/tmdb"
)

// newAuthCmd returns the "auth" command group for TMDb sessions.
func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Obtain TMDb request tokens and sessions",
		Long: "Obtain a user session in two steps: \"auth token\" prints a request token and\n" +
			"the page where you approve it, \"auth session <token>\" exchanges the approved\n" +
			"token for a session id. \"auth guest\" opens a guest session.",
	}
	cmd.AddCommand(newAuthTokenCmd(), newAuthSessionCmd(), newAuthGuestCmd())
	return cmd
}

func newAuthTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Request a new request token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, client, _, err := setup(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			token, err := client.GetAuthorisationToken(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styleSuccess.Render("✓ Request token: ")+token.RequestToken)
			fmt.Fprintln(out, styleDim.Render("Expires: "+token.ExpiresAt))
			fmt.Fprintln(out, "Approve it at "+styleInfo.Render(token.AuthenticationURL()))
			return nil
		},
	}
}

func newAuthSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session <request-token>",
		Short: "Exchange an approved request token for a session id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, _, err := setup(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			session, err := client.GetSessionToken(ctx, &tmdb.TokenAuthorisation{
				Success:      true,
				RequestToken: args[0],
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), styleSuccess.Render("✓ Session id: ")+session.SessionID)
			return nil
		},
	}
}

func newAuthGuestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guest",
		Short: "Open a guest session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, client, _, err := setup(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			session, err := client.GetGuestSessionToken(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styleSuccess.Render("✓ Guest session id: ")+session.GuestSessionID)
			fmt.Fprintln(out, styleDim.Render("Expires: "+session.ExpiresAt))
			return nil
		},
	}
}
