package main

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vadimtrunov/tmdbapi/internal/metadata/tmdb"
)

// searchKinds lists the accepted first arguments of "search".
var searchKinds = []string{"movie", "person", "tv", "company", "collection", "keyword", "list"}

// searchResult is what one search kind produces for printing.
type searchResult struct {
	heading string
	rows    []row
	total   int
	raw     any
}

func newSearchCmd() *cobra.Command {
	var (
		opts   tmdb.SearchOptions
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "search <kind> <query>",
		Short: "Search TMDb",
		Long:  "Search TMDb. kind is one of: " + strings.Join(searchKinds, ", ") + ".",
		Example: `  tmdbapi search movie "the matrix" --year 1999
  tmdbapi search person nolan`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := strings.ToLower(args[0])
			if !slices.Contains(searchKinds, kind) {
				return fmt.Errorf("unknown search kind %q: expected one of %s", args[0], strings.Join(searchKinds, ", "))
			}
			query := strings.Join(args[1:], " ")

			_, client, _, err := setup(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			res, err := runSearch(ctx, client, kind, query, opts)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res.raw)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderRows(res.heading, res.rows, res.total))
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.Year, "year", 0, "filter by release year (movie, tv)")
	cmd.Flags().IntVar(&opts.Page, "page", 0, "result page")
	cmd.Flags().StringVarP(&opts.Language, "language", "l", "", "response language, e.g. de-DE")
	cmd.Flags().BoolVar(&opts.IncludeAdult, "adult", false, "include adult titles")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

// runSearch dispatches a search of the given kind.
func runSearch(ctx context.Context, c *tmdb.Client, kind, query string, opts tmdb.SearchOptions) (*searchResult, error) {
	heading := fmt.Sprintf("%s results for %q", strings.ToUpper(kind[:1])+kind[1:], query)

	switch kind {
	case "movie":
		res, err := c.SearchMovies(ctx, query, opts)
		if err != nil {
			return nil, err
		}
		return &searchResult{heading, movieRows(res.Results), res.TotalResults, res}, nil
	case "person":
		res, err := c.SearchPeople(ctx, query, opts)
		if err != nil {
			return nil, err
		}
		return &searchResult{heading, personRows(res.Results), res.TotalResults, res}, nil
	case "tv":
		res, err := c.SearchTV(ctx, query, opts)
		if err != nil {
			return nil, err
		}
		return &searchResult{heading, tvRows(res.Results), res.TotalResults, res}, nil
	case "company":
		res, err := c.SearchCompanies(ctx, query, opts)
		if err != nil {
			return nil, err
		}
		rows := make([]row, 0, len(res.Results))
		for _, co := range res.Results {
			rows = append(rows, row{id: strconv.Itoa(co.ID), title: co.Name, detail: co.OriginCountry})
		}
		return &searchResult{heading, rows, res.TotalResults, res}, nil
	case "collection":
		res, err := c.SearchCollections(ctx, query, opts)
		if err != nil {
			return nil, err
		}
		rows := make([]row, 0, len(res.Results))
		for _, col := range res.Results {
			rows = append(rows, row{id: strconv.Itoa(col.ID), title: col.Name})
		}
		return &searchResult{heading, rows, res.TotalResults, res}, nil
	case "keyword":
		res, err := c.SearchKeywords(ctx, query, opts)
		if err != nil {
			return nil, err
		}
		rows := make([]row, 0, len(res.Results))
		for _, k := range res.Results {
			rows = append(rows, row{id: strconv.Itoa(k.ID), title: k.Name})
		}
		return &searchResult{heading, rows, res.TotalResults, res}, nil
	case "list":
		res, err := c.SearchLists(ctx, query, opts)
		if err != nil {
			return nil, err
		}
		rows := make([]row, 0, len(res.Results))
		for _, l := range res.Results {
			rows = append(rows, row{id: l.ID, title: l.Name, detail: fmt.Sprintf("%d items", l.ItemCount)})
		}
		return &searchResult{heading, rows, res.TotalResults, res}, nil
	}
	return nil, fmt.Errorf("unknown search kind %q", kind)
}
