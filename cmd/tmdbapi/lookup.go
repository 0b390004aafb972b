package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMovieCmd() *cobra.Command {
	var (
		asJSON   bool
		language string
		similar  bool
	)
	cmd := &cobra.Command{
		Use:     "movie <id>",
		Short:   "Show movie details",
		Example: "  tmdbapi movie 27205\n  tmdbapi movie 27205 --similar",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("movie", args[0])
			if err != nil {
				return err
			}
			_, client, _, err := setup(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			movie, err := client.GetMovie(ctx, id, language, "credits")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, movie)
			}
			fmt.Fprint(out, renderMovie(movie))

			if similar {
				recs, err := client.GetRecommendations(ctx, id, language, 1)
				if err != nil {
					return err
				}
				fmt.Fprintln(out)
				fmt.Fprint(out, renderRows("Recommendations", movieRows(recs.Results), recs.TotalResults))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	cmd.Flags().StringVarP(&language, "language", "l", "", "response language, e.g. de-DE")
	cmd.Flags().BoolVar(&similar, "similar", false, "also list recommended movies")
	return cmd
}

func newPersonCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "person <id>",
		Short: "Show a person and their movie credits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("person", args[0])
			if err != nil {
				return err
			}
			_, client, _, err := setup(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			person, err := client.GetPerson(ctx, id)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), person)
			}
			credits, err := client.GetPersonCredits(ctx, id, "")
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderPerson(person, credits))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

func newTVCmd() *cobra.Command {
	var (
		asJSON   bool
		language string
		season   int
	)
	cmd := &cobra.Command{
		Use:     "tv <id>",
		Short:   "Show TV series details",
		Example: "  tmdbapi tv 1396\n  tmdbapi tv 1396 --season 2",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("tv", args[0])
			if err != nil {
				return err
			}
			_, client, _, err := setup(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			out := cmd.OutOrStdout()
			if cmd.Flags().Changed("season") {
				s, err := client.GetTVSeason(ctx, id, season, language)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(out, s)
				}
				fmt.Fprint(out, renderSeason(s))
				return nil
			}

			series, err := client.GetTV(ctx, id, language)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(out, series)
			}
			fmt.Fprint(out, renderTV(series))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	cmd.Flags().StringVarP(&language, "language", "l", "", "response language, e.g. de-DE")
	cmd.Flags().IntVar(&season, "season", 0, "show one season with its episodes")
	return cmd
}
