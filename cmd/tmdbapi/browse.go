package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vadimtrunov/tmdbapi/internal/core"
	"github.com/vadimtrunov/tmdbapi/internal/metadata/tmdb"
)

const browseHelp = "Type a title to search movies. Enter a result number for details, " +
	"/similar for recommendations, /person or /tv <query> to search people or series, /quit to exit."

// newBrowseCmd returns the "browse" subcommand for interactive lookups.
func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse TMDb interactively",
		Long:  "Start an interactive session for searching movies and following recommendations.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, client, _, err := setup(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			p := tea.NewProgram(newBrowseModel(ctx, client, cfg.TMDb.Language), tea.WithAltScreen())

			// Bridge OS signal cancellation into the Bubble Tea event loop.
			go func() {
				<-ctx.Done()
				p.Send(tea.Quit())
			}()

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run browser: %w", err)
			}
			return nil
		},
	}
}

// browseResultMsg carries a lookup result back to the TUI.
type browseResultMsg struct {
	content string
	movies  []tmdb.Movie // selectable results, nil when the reply is not a movie list
	movieID int          // movie shown in detail, 0 otherwise
	err     error
}

// Entry kinds in the browse log.
const (
	entryInput  = "input"
	entryResult = "result"
	entrySystem = "system"
)

type browseEntry struct {
	kind    string
	content string
}

// browseModel is the Bubble Tea model for interactive browsing.
type browseModel struct {
	ctx       context.Context
	meta      core.MetadataProvider
	language  string
	viewport  viewport.Model
	textinput textinput.Model
	spinner   spinner.Model
	entries   []browseEntry
	results   []tmdb.Movie // last movie list, addressed by number
	current   int          // movie currently shown in detail
	history   []string
	histIdx   int // current position in input history (-1 = not browsing)
	waiting   bool
	width     int
	height    int
	ready     bool
}

func newBrowseModel(ctx context.Context, meta core.MetadataProvider, language string) browseModel {
	ti := textinput.New()
	ti.Placeholder = "Search movies..."
	ti.Focus()
	ti.CharLimit = 200

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styleInfo

	return browseModel{
		ctx:       ctx,
		meta:      meta,
		language:  language,
		textinput: ti,
		spinner:   s,
		entries:   []browseEntry{{kind: entrySystem, content: browseHelp}},
		histIdx:   -1,
	}
}

// Init starts the text input blink cursor.
func (m browseModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and user input.
func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg)

	case tea.KeyMsg:
		model, cmd, handled := m.handleKey(msg)
		if handled {
			return model, cmd
		}

	case browseResultMsg:
		m.handleResult(msg)
		return m, nil

	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.waiting {
		var tiCmd tea.Cmd
		m.textinput, tiCmd = m.textinput.Update(msg)
		cmds = append(cmds, tiCmd)
	}

	if m.ready {
		var vpCmd tea.Cmd
		m.viewport, vpCmd = m.viewport.Update(msg)
		cmds = append(cmds, vpCmd)
	}

	return m, tea.Batch(cmds...)
}

// handleResize adjusts viewport and text input dimensions on terminal resize.
func (m *browseModel) handleResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	headerHeight := 1
	inputHeight := 3
	vpHeight := max(m.height-headerHeight-inputHeight, 1)
	if !m.ready {
		m.viewport = viewport.New(m.width, vpHeight)
		m.viewport.SetContent(m.renderEntries())
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = vpHeight
	}
	m.textinput.Width = m.width - 4
}

// handleKey dispatches key events to the appropriate handler.
func (m *browseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return *m, tea.Quit, true
	case "up":
		return m.handleHistoryUp()
	case "down":
		return m.handleHistoryDown()
	case "enter":
		return m.handleEnter()
	}
	return *m, nil, false
}

func (m *browseModel) handleHistoryUp() (tea.Model, tea.Cmd, bool) {
	if m.waiting || len(m.history) == 0 {
		return *m, nil, false
	}
	if m.histIdx == -1 {
		m.histIdx = len(m.history) - 1
	} else if m.histIdx > 0 {
		m.histIdx--
	}
	m.textinput.SetValue(m.history[m.histIdx])
	m.textinput.CursorEnd()
	return *m, nil, true
}

func (m *browseModel) handleHistoryDown() (tea.Model, tea.Cmd, bool) {
	if m.waiting || m.histIdx < 0 {
		return *m, nil, false
	}
	if m.histIdx < len(m.history)-1 {
		m.histIdx++
		m.textinput.SetValue(m.history[m.histIdx])
	} else {
		m.histIdx = -1
		m.textinput.SetValue("")
	}
	m.textinput.CursorEnd()
	return *m, nil, true
}

// handleEnter runs the current input as a command, a result selection or a
// movie search.
func (m *browseModel) handleEnter() (tea.Model, tea.Cmd, bool) {
	if m.waiting {
		return *m, nil, true
	}
	input := strings.TrimSpace(m.textinput.Value())
	if input == "" {
		return *m, nil, true
	}
	m.textinput.SetValue("")
	m.histIdx = -1

	switch input {
	case "/quit", "/exit":
		return *m, tea.Quit, true
	case "/clear":
		m.entries = []browseEntry{{kind: entrySystem, content: browseHelp}}
		m.results = nil
		m.current = 0
		m.refresh()
		return *m, nil, true
	}

	lookup, errMsg := m.lookupFor(input)
	m.history = append(m.history, input)
	m.entries = append(m.entries, browseEntry{kind: entryInput, content: input})
	if lookup == nil {
		m.entries = append(m.entries, browseEntry{kind: entrySystem, content: errMsg})
		m.refresh()
		return *m, nil, true
	}

	m.waiting = true
	m.refresh()
	return *m, tea.Batch(lookup, m.spinner.Tick), true
}

// lookupFor maps input to an asynchronous lookup. It returns a message for
// the user instead when the input cannot be served.
func (m *browseModel) lookupFor(input string) (tea.Cmd, string) {
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(m.results) {
			return nil, fmt.Sprintf("No result #%d. Search first, then pick a number from the list.", n)
		}
		return m.movieDetails(m.results[n-1].ID), ""
	}

	cmd, args, _ := strings.Cut(input, " ")
	args = strings.TrimSpace(args)
	switch cmd {
	case "/similar":
		id := m.current
		if args != "" {
			n, err := strconv.Atoi(args)
			if err != nil || n < 1 || n > len(m.results) {
				return nil, "Usage: /similar [result number]"
			}
			id = m.results[n-1].ID
		}
		if id == 0 {
			return nil, "Open a movie first, then ask for /similar."
		}
		return m.recommendations(id), ""
	case "/person":
		if args == "" {
			return nil, "Usage: /person <name>"
		}
		return m.searchPeople(args), ""
	case "/tv":
		if args == "" {
			return nil, "Usage: /tv <name>"
		}
		return m.searchTV(args), ""
	}
	if strings.HasPrefix(input, "/") {
		return nil, "Unknown command. " + browseHelp
	}
	return m.searchMovies(input), ""
}

// handleResult appends a lookup result or error to the log.
func (m *browseModel) handleResult(msg browseResultMsg) {
	m.waiting = false
	if msg.err != nil {
		m.entries = append(m.entries, browseEntry{kind: entrySystem, content: "Error: " + msg.err.Error()})
		m.refresh()
		return
	}
	if msg.movies != nil {
		m.results = msg.movies
	}
	if msg.movieID != 0 {
		m.current = msg.movieID
	}
	m.entries = append(m.entries, browseEntry{kind: entryResult, content: msg.content})
	m.refresh()
}

func (m *browseModel) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderEntries())
	m.viewport.GotoBottom()
}

// View renders the log, spinner, and input field.
func (m browseModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("5")).
		Render("TMDb Browser")

	var spinnerLine string
	if m.waiting {
		spinnerLine = "\n" + m.spinner.View() + styleDim.Render(" Looking up...")
	}

	inputBorder := lipgloss.NewStyle().
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("8")).
		PaddingTop(0)

	return title + "\n" +
		m.viewport.View() +
		spinnerLine + "\n" +
		inputBorder.Render(m.textinput.View())
}

// renderEntries formats the log into a styled string for the viewport.
func (m browseModel) renderEntries() string {
	var sb strings.Builder
	for _, e := range m.entries {
		switch e.kind {
		case entryInput:
			sb.WriteString(styleUser.Render("> "))
			sb.WriteString(e.content)
		case entryResult:
			sb.WriteString(strings.TrimRight(e.content, "\n"))
		case entrySystem:
			sb.WriteString(styleDim.Render(e.content))
		}
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func (m browseModel) searchMovies(query string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.meta.SearchMovies(m.ctx, query, tmdb.SearchOptions{Language: m.language})
		if err != nil {
			return browseResultMsg{err: err}
		}
		movies := res.Results
		if movies == nil {
			movies = []tmdb.Movie{}
		}
		return browseResultMsg{
			content: renderRows(fmt.Sprintf("Movies matching %q", query), movieRows(movies), res.TotalResults),
			movies:  movies,
		}
	}
}

func (m browseModel) movieDetails(id int) tea.Cmd {
	return func() tea.Msg {
		movie, err := m.meta.GetMovie(m.ctx, id, m.language, "credits")
		if err != nil {
			return browseResultMsg{err: err}
		}
		return browseResultMsg{content: renderMovie(movie), movieID: movie.ID}
	}
}

func (m browseModel) recommendations(id int) tea.Cmd {
	return func() tea.Msg {
		res, err := m.meta.GetRecommendations(m.ctx, id, m.language, 1)
		if err != nil {
			return browseResultMsg{err: err}
		}
		movies := res.Results
		if movies == nil {
			movies = []tmdb.Movie{}
		}
		return browseResultMsg{
			content: renderRows("Recommendations", movieRows(movies), res.TotalResults),
			movies:  movies,
		}
	}
}

func (m browseModel) searchPeople(query string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.meta.SearchPeople(m.ctx, query, tmdb.SearchOptions{Language: m.language})
		if err != nil {
			return browseResultMsg{err: err}
		}
		return browseResultMsg{content: renderRows(fmt.Sprintf("People matching %q", query), personRows(res.Results), res.TotalResults)}
	}
}

func (m browseModel) searchTV(query string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.meta.SearchTV(m.ctx, query, tmdb.SearchOptions{Language: m.language})
		if err != nil {
			return browseResultMsg{err: err}
		}
		return browseResultMsg{content: renderRows(fmt.Sprintf("Series matching %q", query), tvRows(res.Results), res.TotalResults)}
	}
}
