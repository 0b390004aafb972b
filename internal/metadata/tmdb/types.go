package tmdb

import "encoding/json"

// ResultList is the TMDb paginated response.
type ResultList[T any] struct {
	Page         int `json:"page"`
	Results      []T `json:"results"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

// Status is the TMDb status object returned by write operations.
type Status struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

// Movie represents a movie from TMDb search results.
type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	OriginalLanguage string  `json:"original_language"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	Adult            bool    `json:"adult"`
	Video            bool    `json:"video"`
	Popularity       float64 `json:"popularity"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	GenreIDs         []int   `json:"genre_ids"`
	Rating           float64 `json:"rating,omitempty"`
}

// MovieDetails represents detailed movie information. The pointer fields
// are filled only when requested through append_to_response.
type MovieDetails struct {
	ID                  int                 `json:"id"`
	Title               string              `json:"title"`
	OriginalTitle       string              `json:"original_title"`
	OriginalLanguage    string              `json:"original_language"`
	Overview            string              `json:"overview"`
	ReleaseDate         string              `json:"release_date"`
	PosterPath          string              `json:"poster_path"`
	BackdropPath        string              `json:"backdrop_path"`
	Adult               bool                `json:"adult"`
	Video               bool                `json:"video"`
	Popularity          float64             `json:"popularity"`
	VoteAverage         float64             `json:"vote_average"`
	VoteCount           int                 `json:"vote_count"`
	Runtime             int                 `json:"runtime"`
	Budget              int64               `json:"budget"`
	Revenue             int64               `json:"revenue"`
	Status              string              `json:"status"`
	Tagline             string              `json:"tagline"`
	Homepage            string              `json:"homepage"`
	IMDbID              string              `json:"imdb_id"`
	Genres              []Genre             `json:"genres"`
	BelongsToCollection *Collection         `json:"belongs_to_collection"`
	ProductionCompanies []Company           `json:"production_companies"`
	ProductionCountries []ProductionCountry `json:"production_countries"`
	SpokenLanguages     []SpokenLanguage    `json:"spoken_languages"`

	AlternativeTitles *AlternativeTitles     `json:"alternative_titles,omitempty"`
	Credits           *Credits               `json:"credits,omitempty"`
	Images            *Images                `json:"images,omitempty"`
	Keywords          *Keywords              `json:"keywords,omitempty"`
	Releases          *Releases              `json:"releases,omitempty"`
	Videos            *Videos                `json:"videos,omitempty"`
	Translations      *Translations          `json:"translations,omitempty"`
	Similar           *ResultList[Movie]     `json:"similar,omitempty"`
	Recommendations   *ResultList[Movie]     `json:"recommendations,omitempty"`
	Reviews           *ResultList[Review]    `json:"reviews,omitempty"`
	Lists             *ResultList[MovieList] `json:"lists,omitempty"`
}

// Year returns the release year, or "" when the release date is unknown.
func (m *MovieDetails) Year() string {
	return yearOf(m.ReleaseDate)
}

// Year returns the release year, or "" when the release date is unknown.
func (m Movie) Year() string {
	return yearOf(m.ReleaseDate)
}

func yearOf(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

// Genre represents a movie genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProductionCountry is a country a movie was produced in.
type ProductionCountry struct {
	ISOCode string `json:"iso_3166_1"`
	Name    string `json:"name"`
}

// SpokenLanguage is a language spoken in a movie.
type SpokenLanguage struct {
	ISOCode     string `json:"iso_639_1"`
	Name        string `json:"name"`
	EnglishName string `json:"english_name"`
}

// AlternativeTitle is a title used in one country.
type AlternativeTitle struct {
	Country string `json:"iso_3166_1"`
	Title   string `json:"title"`
	Type    string `json:"type"`
}

// AlternativeTitles wraps the alternative titles of a movie.
type AlternativeTitles struct {
	ID     int                `json:"id"`
	Titles []AlternativeTitle `json:"titles"`
}

// CastMember is an acting credit.
type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	CreditID    string `json:"credit_id"`
	Order       int    `json:"order"`
	ProfilePath string `json:"profile_path"`
}

// CrewMember is a crew credit.
type CrewMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Department  string `json:"department"`
	Job         string `json:"job"`
	CreditID    string `json:"credit_id"`
	ProfilePath string `json:"profile_path"`
}

// Credits holds the cast and crew of a movie or series.
type Credits struct {
	ID   int          `json:"id"`
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Artwork is a single image.
type Artwork struct {
	FilePath    string  `json:"file_path"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	AspectRatio float64 `json:"aspect_ratio"`
	Language    string  `json:"iso_639_1"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
}

// Images groups artwork by kind.
type Images struct {
	ID        int       `json:"id"`
	Backdrops []Artwork `json:"backdrops"`
	Posters   []Artwork `json:"posters"`
	Logos     []Artwork `json:"logos"`
	Profiles  []Artwork `json:"profiles"`
	Stills    []Artwork `json:"stills"`
}

// Keyword is a TMDb keyword.
type Keyword struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Keywords wraps the keywords of a movie.
type Keywords struct {
	ID       int       `json:"id"`
	Keywords []Keyword `json:"keywords"`
}

// ReleaseInfo is a release in one country.
type ReleaseInfo struct {
	Country       string `json:"iso_3166_1"`
	Certification string `json:"certification"`
	ReleaseDate   string `json:"release_date"`
	Primary       bool   `json:"primary"`
}

// Releases wraps the releases of a movie.
type Releases struct {
	ID        int           `json:"id"`
	Countries []ReleaseInfo `json:"countries"`
}

// Video is a trailer, teaser or clip.
type Video struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Size     int    `json:"size"`
	Type     string `json:"type"`
	Language string `json:"iso_639_1"`
	Official bool   `json:"official"`
}

// Videos wraps the videos of a movie.
type Videos struct {
	ID      int     `json:"id"`
	Results []Video `json:"results"`
}

// Translation is a language a movie is translated into.
type Translation struct {
	Language    string `json:"iso_639_1"`
	Country     string `json:"iso_3166_1"`
	Name        string `json:"name"`
	EnglishName string `json:"english_name"`
}

// Translations wraps the translations of a movie.
type Translations struct {
	ID           int           `json:"id"`
	Translations []Translation `json:"translations"`
}

// Review is a user review.
type Review struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// MovieList is a user-created list as it appears in search results.
type MovieList struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	FavoriteCount int    `json:"favorite_count"`
	ItemCount     int    `json:"item_count"`
	Language      string `json:"iso_639_1"`
	ListType      string `json:"list_type"`
	PosterPath    string `json:"poster_path"`
}

// ChangeItem is one recorded edit.
type ChangeItem struct {
	ID       string          `json:"id"`
	Action   string          `json:"action"`
	Time     string          `json:"time"`
	Language string          `json:"iso_639_1"`
	Value    json.RawMessage `json:"value"`
	Original json.RawMessage `json:"original_value"`
}

// Change groups the edits of one field.
type Change struct {
	Key   string       `json:"key"`
	Items []ChangeItem `json:"items"`
}

type changesResponse struct {
	Changes []Change `json:"changes"`
}

// Company is a production company.
type Company struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Headquarters  string   `json:"headquarters"`
	Homepage      string   `json:"homepage"`
	LogoPath      string   `json:"logo_path"`
	OriginCountry string   `json:"origin_country"`
	ParentCompany *Company `json:"parent_company"`
}

// Collection is a movie collection as it appears in search results.
type Collection struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	PosterPath   string `json:"poster_path"`
	BackdropPath string `json:"backdrop_path"`
}

// CollectionDetails is a collection with its parts.
type CollectionDetails struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	Parts        []Movie `json:"parts"`
}

// JobDepartment lists the jobs of one department.
type JobDepartment struct {
	Department string   `json:"department"`
	Jobs       []string `json:"jobs"`
}
