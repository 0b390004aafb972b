package tmdb

import (
	"context"
	"fmt"
)

// TVSeries represents a series from TMDb search results.
type TVSeries struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	OriginalName     string   `json:"original_name"`
	OriginalLanguage string   `json:"original_language"`
	Overview         string   `json:"overview"`
	FirstAirDate     string   `json:"first_air_date"`
	PosterPath       string   `json:"poster_path"`
	BackdropPath     string   `json:"backdrop_path"`
	OriginCountry    []string `json:"origin_country"`
	GenreIDs         []int    `json:"genre_ids"`
	Popularity       float64  `json:"popularity"`
	VoteAverage      float64  `json:"vote_average"`
	VoteCount        int      `json:"vote_count"`
}

// Year returns the first-air year, or "" when unknown.
func (s TVSeries) Year() string {
	return yearOf(s.FirstAirDate)
}

// Creator is a series creator.
type Creator struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	CreditID    string `json:"credit_id"`
	ProfilePath string `json:"profile_path"`
}

// TVDetails represents detailed series information.
type TVDetails struct {
	TVSeries
	CreatedBy        []Creator `json:"created_by"`
	EpisodeRunTime   []int     `json:"episode_run_time"`
	Genres           []Genre   `json:"genres"`
	Homepage         string    `json:"homepage"`
	InProduction     bool      `json:"in_production"`
	Languages        []string  `json:"languages"`
	LastAirDate      string    `json:"last_air_date"`
	Networks         []Company `json:"networks"`
	NumberOfEpisodes int       `json:"number_of_episodes"`
	NumberOfSeasons  int       `json:"number_of_seasons"`
	Seasons          []Season  `json:"seasons"`
	Status           string    `json:"status"`
	Tagline          string    `json:"tagline"`
	Type             string    `json:"type"`
}

// Season is one season of a series. Episodes are present only when the
// season is fetched on its own.
type Season struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Overview     string    `json:"overview"`
	AirDate      string    `json:"air_date"`
	EpisodeCount int       `json:"episode_count"`
	PosterPath   string    `json:"poster_path"`
	SeasonNumber int       `json:"season_number"`
	Episodes     []Episode `json:"episodes,omitempty"`
}

// Episode is one episode of a series.
type Episode struct {
	ID            int          `json:"id"`
	Name          string       `json:"name"`
	Overview      string       `json:"overview"`
	AirDate       string       `json:"air_date"`
	EpisodeNumber int          `json:"episode_number"`
	SeasonNumber  int          `json:"season_number"`
	Runtime       int          `json:"runtime"`
	StillPath     string       `json:"still_path"`
	VoteAverage   float64      `json:"vote_average"`
	VoteCount     int          `json:"vote_count"`
	Crew          []CrewMember `json:"crew"`
	GuestStars    []CastMember `json:"guest_stars"`
}

// ExternalIDs are the identifiers of a series in other databases.
type ExternalIDs struct {
	ID          int    `json:"id"`
	IMDbID      string `json:"imdb_id"`
	FreebaseID  string `json:"freebase_id"`
	FreebaseMID string `json:"freebase_mid"`
	TVDBID      int    `json:"tvdb_id"`
	TVRageID    int    `json:"tvrage_id"`
	WikidataID  string `json:"wikidata_id"`
}

// GetTV retrieves full details for a series by TMDb ID.
func (c *Client) GetTV(ctx context.Context, id int, language string) (*TVDetails, error) {
	if err := requireID("tv", id); err != nil {
		return nil, err
	}

	var details TVDetails
	path := fmt.Sprintf("/tv/%d", id)
	if err := c.get(ctx, path, c.languageParams(language), &details); err != nil {
		return nil, fmt.Errorf("get tv %d: %w", id, err)
	}
	return &details, nil
}

// GetTVCredits returns the cast and crew of a series.
func (c *Client) GetTVCredits(ctx context.Context, id int, language string) (*Credits, error) {
	if err := requireID("tv", id); err != nil {
		return nil, err
	}

	var credits Credits
	path := fmt.Sprintf("/tv/%d/credits", id)
	if err := c.get(ctx, path, c.languageParams(language), &credits); err != nil {
		return nil, fmt.Errorf("get credits for tv %d: %w", id, err)
	}
	return &credits, nil
}

// GetTVExternalIDs returns the external identifiers of a series.
func (c *Client) GetTVExternalIDs(ctx context.Context, id int, language string) (*ExternalIDs, error) {
	if err := requireID("tv", id); err != nil {
		return nil, err
	}

	var ids ExternalIDs
	path := fmt.Sprintf("/tv/%d/external_ids", id)
	if err := c.get(ctx, path, c.languageParams(language), &ids); err != nil {
		return nil, fmt.Errorf("get external ids for tv %d: %w", id, err)
	}
	return &ids, nil
}

// GetTVImages returns posters and backdrops of a series.
func (c *Client) GetTVImages(ctx context.Context, id int, language string) (*Images, error) {
	if err := requireID("tv", id); err != nil {
		return nil, err
	}

	var images Images
	path := fmt.Sprintf("/tv/%d/images", id)
	if err := c.get(ctx, path, c.languageParams(language), &images); err != nil {
		return nil, fmt.Errorf("get images for tv %d: %w", id, err)
	}
	return &images, nil
}

// GetTVSeason returns a season with its episodes.
func (c *Client) GetTVSeason(ctx context.Context, id, season int, language string) (*Season, error) {
	if err := requireID("tv", id); err != nil {
		return nil, err
	}
	if season < 0 {
		return nil, invalidArgument("season number must not be negative, got %d", season)
	}

	var s Season
	path := fmt.Sprintf("/tv/%d/season/%d", id, season)
	if err := c.get(ctx, path, c.languageParams(language), &s); err != nil {
		return nil, fmt.Errorf("get season %d of tv %d: %w", season, id, err)
	}
	return &s, nil
}

// GetTVEpisode returns a single episode.
func (c *Client) GetTVEpisode(ctx context.Context, id, season, episode int, language string) (*Episode, error) {
	if err := requireID("tv", id); err != nil {
		return nil, err
	}
	if season < 0 || episode <= 0 {
		return nil, invalidArgument("invalid episode S%dE%d", season, episode)
	}

	var e Episode
	path := fmt.Sprintf("/tv/%d/season/%d/episode/%d", id, season, episode)
	if err := c.get(ctx, path, c.languageParams(language), &e); err != nil {
		return nil, fmt.Errorf("get episode S%dE%d of tv %d: %w", season, episode, id, err)
	}
	return &e, nil
}
