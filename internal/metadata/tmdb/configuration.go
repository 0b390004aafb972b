package tmdb

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// ImageConfiguration describes where images are served and in which sizes.
type ImageConfiguration struct {
	BaseURL       string   `json:"base_url"`
	SecureBaseURL string   `json:"secure_base_url"`
	BackdropSizes []string `json:"backdrop_sizes"`
	LogoSizes     []string `json:"logo_sizes"`
	PosterSizes   []string `json:"poster_sizes"`
	ProfileSizes  []string `json:"profile_sizes"`
	StillSizes    []string `json:"still_sizes"`
}

// Configuration is the TMDb system configuration.
type Configuration struct {
	Images     ImageConfiguration `json:"images"`
	ChangeKeys []string           `json:"change_keys"`
}

// GetConfiguration retrieves the image configuration.
func (c *Client) GetConfiguration(ctx context.Context) (*Configuration, error) {
	var cfg Configuration
	if err := c.get(ctx, "/configuration", nil, &cfg); err != nil {
		return nil, fmt.Errorf("get configuration: %w", err)
	}
	return &cfg, nil
}

// IsValidSize reports whether size is one of the advertised image sizes.
// "original" is always valid.
func (cfg *Configuration) IsValidSize(size string) bool {
	if size == "original" {
		return true
	}
	img := cfg.Images
	for _, sizes := range [][]string{img.BackdropSizes, img.LogoSizes, img.PosterSizes, img.ProfileSizes, img.StillSizes} {
		if slices.Contains(sizes, size) {
			return true
		}
	}
	return false
}

// CreateImageURL builds the full URL of an image path in the given size.
func (cfg *Configuration) CreateImageURL(path, size string) (string, error) {
	if err := requireText("image path", path); err != nil {
		return "", err
	}
	if !cfg.IsValidSize(size) {
		return "", invalidArgument("unknown image size %q", size)
	}
	base := cfg.Images.SecureBaseURL
	if base == "" {
		base = cfg.Images.BaseURL
	}
	if base == "" {
		base = imageBaseURL
	}
	return strings.TrimSuffix(base, "/") + "/" + size + "/" + strings.TrimPrefix(path, "/"), nil
}

// PosterURL returns the full URL for a poster path.
func PosterURL(posterPath, size string) string {
	if posterPath == "" {
		return ""
	}
	return imageBaseURL + size + posterPath
}
