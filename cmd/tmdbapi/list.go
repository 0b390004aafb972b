package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const sessionEnv = "TMDBAPI_SESSION_ID"

var errNoSession = errors.New("a session id is required: pass --session or set " + sessionEnv)

// newListCmd returns the "list" command group for TMDb user lists.
func newListCmd() *cobra.Command {
	var session string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Manage TMDb movie lists",
	}
	cmd.PersistentFlags().StringVar(&session, "session", os.Getenv(sessionEnv), "session id from \"auth session\"")

	requireSession := func() (string, error) {
		if session == "" {
			return "", errNoSession
		}
		return session, nil
	}

	cmd.AddCommand(
		newListGetCmd(),
		newListCreateCmd(requireSession),
		newListItemCmd("add", "Add a movie to a list", requireSession),
		newListItemCmd("remove", "Remove a movie from a list", requireSession),
		newListDeleteCmd(requireSession),
	)
	return cmd
}

func newListGetCmd() *cobra.Command {
	var (
		asJSON  bool
		movieID string
	)
	cmd := &cobra.Command{
		Use:   "get <list-id>",
		Short: "Show a list and its movies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, _, err := setup(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			out := cmd.OutOrStdout()
			if movieID != "" {
				id, err := parseID("movie", movieID)
				if err != nil {
					return err
				}
				present, err := client.ListContainsMovie(ctx, args[0], id)
				if err != nil {
					return err
				}
				if present {
					fmt.Fprintln(out, styleSuccess.Render(fmt.Sprintf("✓ Movie %d is on list %s", id, args[0])))
				} else {
					fmt.Fprintln(out, styleDim.Render(fmt.Sprintf("Movie %d is not on list %s", id, args[0])))
				}
				return nil
			}

			list, err := client.GetList(ctx, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(out, list)
			}
			fmt.Fprint(out, renderList(list))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	cmd.Flags().StringVar(&movieID, "contains", "", "only check whether this movie id is on the list")
	return cmd
}

func newListCreateCmd(requireSession func() (string, error)) *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := requireSession()
			if err != nil {
				return err
			}
			_, client, _, err := setup(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			id, err := client.CreateList(ctx, session, args[0], description)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), styleSuccess.Render("✓ Created list "+id))
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "list description")
	return cmd
}

// newListItemCmd builds "list add" and "list remove".
func newListItemCmd(use, short string, requireSession func() (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <list-id> <movie-id>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			movieID, err := parseID("movie", args[1])
			if err != nil {
				return err
			}
			session, err := requireSession()
			if err != nil {
				return err
			}
			_, client, _, err := setup(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			modify := client.AddMovieToList
			verb := "Added"
			if use == "remove" {
				modify = client.RemoveMovieFromList
				verb = "Removed"
			}
			status, err := modify(ctx, session, args[0], movieID)
			if err != nil {
				return err
			}
			msg := fmt.Sprintf("✓ %s movie %d", verb, movieID)
			if status.StatusMessage != "" {
				msg += " (" + status.StatusMessage + ")"
			}
			fmt.Fprintln(cmd.OutOrStdout(), styleSuccess.Render(msg))
			return nil
		},
	}
}

func newListDeleteCmd(requireSession func() (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <list-id>",
		Short: "Delete a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := requireSession()
			if err != nil {
				return err
			}
			_, client, _, err := setup(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			if _, err := client.DeleteList(ctx, session, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), styleSuccess.Render("✓ Deleted list "+args[0]))
			return nil
		},
	}
}
