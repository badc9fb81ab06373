package tui

import (
	"context"
	"fmt"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/daybook/internal/model"
)

// WeekSource is the slice of the tracker the viewer reads from.
type WeekSource interface {
	GetWeek(ctx context.Context, start string) (map[string]*model.DayBucket, error)
	GetWeekStats(ctx context.Context, start string) (*model.Stats, error)
	GetAllColors(ctx context.Context) (model.ColorSet, error)
}

// tickMsg is sent when the timer ticks.
type tickMsg time.Time

// weekLoadedMsg carries a freshly loaded week.
type weekLoadedMsg struct {
	start  string
	days   []*model.DayBucket
	stats  *model.Stats
	colors model.ColorSet
}

// errMsg is sent when an error occurs.
type errMsg struct {
	err error
}

// WeekModel is the bubbletea model for the week viewer.
type WeekModel struct {
	// Data
	start    string
	days     []*model.DayBucket
	stats    *model.Stats
	colors   model.ColorSet
	selected int

	source WeekSource
	ctx    context.Context
	loc    *time.Location
	now    func() time.Time

	// UI state
	width      int
	height     int
	loading    bool
	err        error
	message    string
	messageExp time.Time

	// Configuration
	refreshInterval time.Duration
	maxProjects     int
}

// WeekConfig holds configuration for the week viewer.
type WeekConfig struct {
	Source   WeekSource
	Context  context.Context
	Location *time.Location
	// Start is any day of the week to open on. Empty means this week.
	Start           string
	Now             func() time.Time
	RefreshInterval time.Duration
	MaxProjects     int
}

// NewWeekModel creates a new week viewer model.
func NewWeekModel(config WeekConfig) *WeekModel {
	if config.Context == nil {
		config.Context = context.Background()
	}
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.RefreshInterval == 0 {
		config.RefreshInterval = 30 * time.Second
	}
	if config.MaxProjects == 0 {
		config.MaxProjects = 8
	}

	m := &WeekModel{
		source:          config.Source,
		ctx:             config.Context,
		loc:             config.Location,
		now:             config.Now,
		refreshInterval: config.RefreshInterval,
		maxProjects:     config.MaxProjects,
	}

	today := m.today()
	m.start = model.WeekStart(m.now(), m.loc)
	m.selected = m.indexOf(today)
	if config.Start != "" {
		if t, err := model.ParseDate(config.Start); err == nil {
			m.start = model.WeekStart(t, time.UTC)
			m.selected = m.indexOf(config.Start)
		}
	}
	return m
}

// Start returns the Monday of the week being shown.
func (m *WeekModel) Start() string {
	return m.start
}

// Selected returns the date of the selected day.
func (m *WeekModel) Selected() string {
	date, _ := model.AddDays(m.start, m.selected)
	return date
}

// Init initializes the model.
func (m *WeekModel) Init() tea.Cmd {
	m.loading = true
	return tea.Batch(
		m.tickCmd(),
		m.loadCmd(m.start),
	)
}

// Update handles messages and updates the model.
func (m *WeekModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if !m.messageExp.IsZero() && m.now().After(m.messageExp) {
			m.message = ""
			m.messageExp = time.Time{}
		}
		return m, tea.Batch(m.tickCmd(), m.loadCmd(m.start))

	case weekLoadedMsg:
		// Drop results for a week we already navigated away from.
		if msg.start != m.start {
			return m, nil
		}
		m.days = msg.days
		m.stats = msg.stats
		m.colors = msg.colors
		m.loading = false
		m.err = nil
		return m, nil

	case errMsg:
		m.err = msg.err
		m.loading = false
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *WeekModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "left", "h":
		if m.selected > 0 {
			m.selected--
			return m, nil
		}
		m.selected = 6
		return m, m.shiftWeek(-1)

	case "right", "l":
		if m.selected < 6 {
			m.selected++
			return m, nil
		}
		m.selected = 0
		return m, m.shiftWeek(1)

	case "[", "p":
		return m, m.shiftWeek(-1)

	case "]", "n":
		return m, m.shiftWeek(1)

	case "t":
		m.start = model.WeekStart(m.now(), m.loc)
		m.selected = m.indexOf(m.today())
		m.loading = true
		return m, m.loadCmd(m.start)

	case "r":
		m.setMessage("Refreshed", time.Second)
		return m, m.loadCmd(m.start)
	}

	return m, nil
}

func (m *WeekModel) shiftWeek(weeks int) tea.Cmd {
	start, err := model.AddDays(m.start, 7*weeks)
	if err != nil {
		m.err = err
		return nil
	}
	m.start = start
	m.days = nil
	m.stats = nil
	m.loading = true
	return m.loadCmd(start)
}

// View renders the week viewer.
func (m *WeekModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())

	if m.err != nil {
		sections = append(sections, StyleError.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	if m.message != "" {
		sections = append(sections, StyleWarning.Render(m.message))
	}

	if m.loading && m.days == nil {
		sections = append(sections, StyleMuted.Render("Loading week..."))
	} else {
		sections = append(sections, NewDayStripComponent(m.days, m.selected, m.today(), m.width).View())
		sections = append(sections, NewEntriesComponent(m.selectedDay(), m.colors, m.loc, m.width).View())
		sections = append(sections, NewBreakdownComponent(m.stats, m.colors, m.width, m.maxProjects).View())
	}

	sections = append(sections, HelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the viewer header.
func (m *WeekModel) renderHeader() string {
	title := StyleTitle.Render("Daybook · week of " + m.start)
	now := m.now().In(m.loc).Format("Mon Jan 2, 15:04")
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", StyleSubtitle.Render(now)) + "\n"
}

func (m *WeekModel) selectedDay() *model.DayBucket {
	if m.selected < 0 || m.selected >= len(m.days) {
		return nil
	}
	return m.days[m.selected]
}

func (m *WeekModel) today() string {
	return model.FormatDate(m.now(), m.loc)
}

// indexOf returns the position of date within the current week, or 0.
func (m *WeekModel) indexOf(date string) int {
	n, err := model.DaysBetween(m.start, date)
	if err != nil || n < 1 || n > 7 {
		return 0
	}
	return n - 1
}

// setMessage sets a temporary message.
func (m *WeekModel) setMessage(msg string, duration time.Duration) {
	m.message = msg
	m.messageExp = m.now().Add(duration)
}

// loadCmd fetches the week, its stats and the colour registries.
func (m *WeekModel) loadCmd(start string) tea.Cmd {
	source, ctx := m.source, m.ctx
	return func() tea.Msg {
		week, err := source.GetWeek(ctx, start)
		if err != nil {
			return errMsg{err: err}
		}
		stats, err := source.GetWeekStats(ctx, start)
		if err != nil {
			return errMsg{err: err}
		}
		colors, err := source.GetAllColors(ctx)
		if err != nil {
			return errMsg{err: err}
		}
		return weekLoadedMsg{start: start, days: orderedDays(week), stats: stats, colors: colors}
	}
}

// tickCmd returns a command that sends a tick message.
func (m *WeekModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func orderedDays(week map[string]*model.DayBucket) []*model.DayBucket {
	dates := make([]string, 0, len(week))
	for date := range week {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	days := make([]*model.DayBucket, 0, len(dates))
	for _, date := range dates {
		days = append(days, week[date])
	}
	return days
}

// Run starts the week viewer.
func Run(config WeekConfig) error {
	m := NewWeekModel(config)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
