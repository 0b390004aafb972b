package core

import (
	"context"

	"github.com/vadimtrunov/tmdbapi/internal/metadata/tmdb"
)

// MetadataProvider defines the lookups frontends need from a metadata source.
// *tmdb.Client implements it.
type MetadataProvider interface {
	// SearchMovies searches for movies by title
	SearchMovies(ctx context.Context, query string, opts tmdb.SearchOptions) (*tmdb.ResultList[tmdb.Movie], error)

	// GetMovie gets full movie details, optionally with appended sub-resources
	GetMovie(ctx context.Context, id int, language string, appendToResponse ...string) (*tmdb.MovieDetails, error)

	// GetRecommendations gets movies recommended for a movie
	GetRecommendations(ctx context.Context, movieID int, language string, page int) (*tmdb.ResultList[tmdb.Movie], error)

	// SearchPeople searches for people by name
	SearchPeople(ctx context.Context, query string, opts tmdb.SearchOptions) (*tmdb.ResultList[tmdb.Person], error)

	// GetPerson gets a person by ID
	GetPerson(ctx context.Context, id int) (*tmdb.Person, error)

	// SearchTV searches for series by name
	SearchTV(ctx context.Context, query string, opts tmdb.SearchOptions) (*tmdb.ResultList[tmdb.TVSeries], error)

	// GetTV gets full series details
	GetTV(ctx context.Context, id int, language string) (*tmdb.TVDetails, error)
}

// Frontend defines the interface for user-facing frontends (CLI, Telegram)
type Frontend interface {
	// Start starts the frontend
	Start(ctx context.Context) error

	// Stop stops the frontend
	Stop(ctx context.Context) error

	// SendMessage sends a message to the user
	SendMessage(ctx context.Context, userID string, message string) error

	// Name returns the frontend name (e.g., "cli", "telegram")
	Name() string
}

var _ MetadataProvider = (*tmdb.Client)(nil)
