package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vadimtrunov/tmdbapi/internal/core"
	"github.com/vadimtrunov/tmdbapi/internal/metadata/tmdb"
)

// Version is reported to MCP clients during initialization.
const Version = "0.3.0"

// Deps holds the dependencies for MCP tool handlers.
type Deps struct {
	Metadata core.MetadataProvider
	Language string
}

// Server wraps an MCP SDK server with TMDb tool handlers.
type Server struct {
	server *mcpsdk.Server
	deps   Deps
	logger *slog.Logger
}

// NewServer creates an MCP server with all TMDb tools registered.
func NewServer(deps Deps, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "tmdbapi",
			Version: Version,
		},
		&mcpsdk.ServerOptions{Logger: logger},
	)

	srv := &Server{server: s, deps: deps, logger: logger}
	srv.registerTools()
	return srv
}

// ServeStdio runs the MCP server over stdin/stdout.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.server.Run(ctx, &mcpsdk.StdioTransport{})
}

// MCPServer returns the underlying MCP SDK server (for testing).
func (s *Server) MCPServer() *mcpsdk.Server {
	return s.server
}

func (s *Server) registerTools() {
	s.server.AddTool(searchMovieTool(), s.handleSearchMovie)
	s.server.AddTool(getMovieDetailsTool(), s.handleGetMovieDetails)
	s.server.AddTool(recommendSimilarTool(), s.handleRecommendSimilar)
	s.server.AddTool(searchPersonTool(), s.handleSearchPerson)
	s.server.AddTool(getPersonTool(), s.handleGetPerson)
	s.server.AddTool(searchTVTool(), s.handleSearchTV)
	s.server.AddTool(getTVTool(), s.handleGetTV)
}

func searchMovieTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "search_movie",
		Description: "Search for a movie by title. Returns matching movies with their TMDb IDs, titles, release dates and ratings.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The movie title to search for",
				},
				"year": map[string]any{
					"type":        "integer",
					"description": "Optional release year to filter results",
				},
				"page": map[string]any{
					"type":        "integer",
					"description": "Optional result page, starting at 1",
				},
			},
			"required": []any{"query"},
		},
	}
}

func getMovieDetailsTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "get_movie_details",
		Description: "Get detailed information about a movie by its TMDb ID, including credits and videos.",
		InputSchema: tmdbIDSchema("The TMDb ID of the movie"),
	}
}

func recommendSimilarTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "recommend_similar",
		Description: "Get movie recommendations for a given movie from TMDb.",
		InputSchema: tmdbIDSchema("The TMDb ID of the movie to get recommendations for"),
	}
}

func searchPersonTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "search_person",
		Description: "Search for actors, directors and other people by name.",
		InputSchema: querySchema("The person's name"),
	}
}

func getPersonTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "get_person",
		Description: "Get a person's biography and details by TMDb ID.",
		InputSchema: tmdbIDSchema("The TMDb ID of the person"),
	}
}

func searchTVTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "search_tv",
		Description: "Search for TV series by name.",
		InputSchema: querySchema("The series name"),
	}
}

func getTVTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "get_tv",
		Description: "Get details of a TV series by TMDb ID, including its seasons.",
		InputSchema: tmdbIDSchema("The TMDb ID of the series"),
	}
}

func tmdbIDSchema(desc string) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tmdb_id": map[string]any{
				"type":        "integer",
				"description": desc,
			},
		},
		"required": []any{"tmdb_id"},
	}
}

func querySchema(desc string) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": desc,
			},
		},
		"required": []any{"query"},
	}
}

// Tool handlers parse arguments, call the provider and return JSON text content.

func (s *Server) handleSearchMovie(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	if s.deps.Metadata == nil {
		return toolError("metadata provider not configured"), nil
	}

	var args struct {
		Query string `json:"query"`
		Year  int    `json:"year"`
		Page  int    `json:"page"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.Query == "" {
		return toolError("search_movie requires a 'query' string argument"), nil
	}

	movies, err := s.deps.Metadata.SearchMovies(ctx, args.Query, tmdb.SearchOptions{
		Year:     args.Year,
		Page:     args.Page,
		Language: s.deps.Language,
	})
	if err != nil {
		return s.failure("search_movie", err), nil
	}
	return toolJSON(movies)
}

func (s *Server) handleGetMovieDetails(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	if s.deps.Metadata == nil {
		return toolError("metadata provider not configured"), nil
	}

	tmdbID, err := extractIntFromArgs(req.Params.Arguments, "tmdb_id")
	if err != nil {
		return toolError(err.Error()), nil
	}

	details, err := s.deps.Metadata.GetMovie(ctx, tmdbID, s.deps.Language, "credits", "videos")
	if err != nil {
		return s.failure("get_movie_details", err), nil
	}
	return toolJSON(details)
}

func (s *Server) handleRecommendSimilar(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	if s.deps.Metadata == nil {
		return toolError("metadata provider not configured"), nil
	}

	tmdbID, err := extractIntFromArgs(req.Params.Arguments, "tmdb_id")
	if err != nil {
		return toolError(err.Error()), nil
	}

	movies, err := s.deps.Metadata.GetRecommendations(ctx, tmdbID, s.deps.Language, 1)
	if err != nil {
		return s.failure("recommend_similar", err), nil
	}
	return toolJSON(movies)
}

func (s *Server) handleSearchPerson(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	if s.deps.Metadata == nil {
		return toolError("metadata provider not configured"), nil
	}

	query, err := extractStringFromArgs(req.Params.Arguments, "query")
	if err != nil {
		return toolError(err.Error()), nil
	}

	people, err := s.deps.Metadata.SearchPeople(ctx, query, tmdb.SearchOptions{Language: s.deps.Language})
	if err != nil {
		return s.failure("search_person", err), nil
	}
	return toolJSON(people)
}

func (s *Server) handleGetPerson(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	if s.deps.Metadata == nil {
		return toolError("metadata provider not configured"), nil
	}

	tmdbID, err := extractIntFromArgs(req.Params.Arguments, "tmdb_id")
	if err != nil {
		return toolError(err.Error()), nil
	}

	person, err := s.deps.Metadata.GetPerson(ctx, tmdbID)
	if err != nil {
		return s.failure("get_person", err), nil
	}
	return toolJSON(person)
}

func (s *Server) handleSearchTV(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	if s.deps.Metadata == nil {
		return toolError("metadata provider not configured"), nil
	}

	query, err := extractStringFromArgs(req.Params.Arguments, "query")
	if err != nil {
		return toolError(err.Error()), nil
	}

	series, err := s.deps.Metadata.SearchTV(ctx, query, tmdb.SearchOptions{Language: s.deps.Language})
	if err != nil {
		return s.failure("search_tv", err), nil
	}
	return toolJSON(series)
}

func (s *Server) handleGetTV(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	if s.deps.Metadata == nil {
		return toolError("metadata provider not configured"), nil
	}

	tmdbID, err := extractIntFromArgs(req.Params.Arguments, "tmdb_id")
	if err != nil {
		return toolError(err.Error()), nil
	}

	details, err := s.deps.Metadata.GetTV(ctx, tmdbID, s.deps.Language)
	if err != nil {
		return s.failure("get_tv", err), nil
	}
	return toolJSON(details)
}

// failure logs a provider error and converts it into a tool error result.
func (s *Server) failure(tool string, err error) *mcpsdk.CallToolResult {
	s.logger.Warn("tool call failed", slog.String("tool", tool), slog.String("error", err.Error()))
	return toolError(fmt.Sprintf("%s failed: %v", tool, err))
}

// toolJSON marshals v to JSON and returns it as text content.
func toolJSON(v any) (*mcpsdk.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return toolError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(data)}},
	}, nil
}

// toolError returns a tool result indicating an error.
func toolError(msg string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: msg}},
		IsError: true,
	}
}

// extractIntFromArgs extracts a positive integer argument from raw JSON arguments.
func extractIntFromArgs(raw json.RawMessage, key string) (int, error) {
	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return 0, fmt.Errorf("invalid arguments: %w", err)
	}

	val, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}

	var n int
	switch v := val.(type) {
	case float64:
		n = int(v)
	case string:
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("%s must be a number: %w", key, err)
		}
		n = parsed
	default:
		return 0, fmt.Errorf("%s must be a number, got %T", key, val)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return n, nil
}

// extractStringFromArgs extracts a non-empty string argument from raw JSON arguments.
func extractStringFromArgs(raw json.RawMessage, key string) (string, error) {
	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	val, ok := args[key]
	if !ok {
		return "", fmt.Errorf("%s is required", key)
	}

	s, ok := val.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("%s must be a non-empty string", key)
	}
	return s, nil
}
