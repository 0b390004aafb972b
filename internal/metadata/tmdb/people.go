package tmdb

import (
	"context"
	"fmt"
)

// Person is a cast or crew member.
type Person struct {
	ID                 int        `json:"id"`
	Name               string     `json:"name"`
	Biography          string     `json:"biography"`
	Birthday           string     `json:"birthday"`
	Deathday           string     `json:"deathday"`
	PlaceOfBirth       string     `json:"place_of_birth"`
	ProfilePath        string     `json:"profile_path"`
	Homepage           string     `json:"homepage"`
	IMDbID             string     `json:"imdb_id"`
	KnownForDepartment string     `json:"known_for_department"`
	AlsoKnownAs        []string   `json:"also_known_as"`
	Gender             int        `json:"gender"`
	Adult              bool       `json:"adult"`
	Popularity         float64    `json:"popularity"`
	KnownFor           []KnownFor `json:"known_for,omitempty"`
}

// KnownFor is a movie or series a person is known for. Movies carry a
// title, series a name.
type KnownFor struct {
	ID        int    `json:"id"`
	MediaType string `json:"media_type"`
	Title     string `json:"title"`
	Name      string `json:"name"`
}

// DisplayTitle returns the title or, for series, the name.
func (k KnownFor) DisplayTitle() string {
	if k.Title != "" {
		return k.Title
	}
	return k.Name
}

// PersonCredit is a movie a person worked on.
type PersonCredit struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	OriginalTitle string `json:"original_title"`
	Character     string `json:"character"`
	Department    string `json:"department"`
	Job           string `json:"job"`
	CreditID      string `json:"credit_id"`
	ReleaseDate   string `json:"release_date"`
	PosterPath    string `json:"poster_path"`
	Adult         bool   `json:"adult"`
}

// PersonCredits holds the acting and crew credits of a person.
type PersonCredits struct {
	ID   int            `json:"id"`
	Cast []PersonCredit `json:"cast"`
	Crew []PersonCredit `json:"crew"`
}

// GetPerson retrieves a person by TMDb ID.
func (c *Client) GetPerson(ctx context.Context, id int) (*Person, error) {
	if err := requireID("person", id); err != nil {
		return nil, err
	}

	var person Person
	path := fmt.Sprintf("/person/%d", id)
	if err := c.get(ctx, path, nil, &person); err != nil {
		return nil, fmt.Errorf("get person %d: %w", id, err)
	}
	return &person, nil
}

// GetPersonCredits returns the movie credits of a person.
func (c *Client) GetPersonCredits(ctx context.Context, id int, language string) (*PersonCredits, error) {
	if err := requireID("person", id); err != nil {
		return nil, err
	}

	var credits PersonCredits
	path := fmt.Sprintf("/person/%d/movie_credits", id)
	if err := c.get(ctx, path, c.languageParams(language), &credits); err != nil {
		return nil, fmt.Errorf("get credits for person %d: %w", id, err)
	}
	return &credits, nil
}

// GetPersonImages returns the profile images of a person.
func (c *Client) GetPersonImages(ctx context.Context, id int) ([]Artwork, error) {
	if err := requireID("person", id); err != nil {
		return nil, err
	}

	var images Images
	path := fmt.Sprintf("/person/%d/images", id)
	if err := c.get(ctx, path, nil, &images); err != nil {
		return nil, fmt.Errorf("get images for person %d: %w", id, err)
	}
	return images.Profiles, nil
}

// GetLatestPerson returns the most recently added person.
func (c *Client) GetLatestPerson(ctx context.Context) (*Person, error) {
	var person Person
	if err := c.get(ctx, "/person/latest", nil, &person); err != nil {
		return nil, fmt.Errorf("get latest person: %w", err)
	}
	return &person, nil
}

// GetPopularPeople returns the popular people.
func (c *Client) GetPopularPeople(ctx context.Context, page int) (*ResultList[Person], error) {
	var resp ResultList[Person]
	if err := c.get(ctx, "/person/popular", c.pageParams("", page), &resp); err != nil {
		return nil, fmt.Errorf("get popular people: %w", err)
	}
	return &resp, nil
}
