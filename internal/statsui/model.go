// Package statsui provides the Bubble Tea dashboard interface.
package statsui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/cubelog/internal/dashboard"
	"github.com/verte-zerg/cubelog/internal/filter"
	"github.com/verte-zerg/cubelog/internal/model"
	"github.com/verte-zerg/cubelog/internal/stats"
)

const (
	tabOverview = iota
	tabSessions
	tabDistribution
	tabInsights
)

const (
	defaultPlotHeight = 10
)

const (
	fieldStart = iota
	fieldEnd
	fieldCube
	fieldSession
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	viewLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
)

// Config holds the initial dashboard settings.
type Config struct {
	Filter     model.Filter
	Window     int
	PlotHeight int
}

// Model implements the Bubble Tea dashboard UI.
type Model struct {
	dash       *dashboard.Dashboard
	filter     model.Filter
	view       dashboard.View
	window     int
	plotHeight int

	tabs          []string
	activeTab     int
	viewports     []viewport.Model
	sessionTable  table.Model
	sessionLayout tableLayout

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

type tableLayout struct {
	width    int
	height   int
	rowCount int
	colCount int
}

// NewModel constructs a dashboard UI model.
func NewModel(d *dashboard.Dashboard, cfg Config) *Model {
	m := &Model{
		dash:       d,
		filter:     cfg.Filter,
		window:     cfg.Window,
		plotHeight: cfg.PlotHeight,
		tabs:       []string{"Overview", "Sessions", "Distribution", "Insights"},
	}
	if m.window <= 0 {
		m.window = stats.DefaultWindow
	}
	if m.plotHeight <= 0 {
		m.plotHeight = defaultPlotHeight
	}
	m.initInputs()
	m.sessionTable = buildSessionTable(nil, 0, 1)
	m.initViewports()
	m.refreshView()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		if m.activeTab == tabSessions {
			m.sessionTable.Focus()
		} else {
			m.sessionTable.Blur()
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			m.window = nextCurveWindow(m.window)
			m.renderTabContents()
			return m, nil
		case "-":
			m.window = prevCurveWindow(m.window)
			m.renderTabContents()
			return m, nil
		case "c":
			m.filter.CubeType = cycleChoice(m.filter.CubeType, m.dash.Choices().CubeTypes)
			m.refreshView()
			return m, nil
		case "s":
			m.filter.SessionID = cycleChoice(m.filter.SessionID, m.dash.Choices().SessionIDs)
			m.refreshView()
			return m, nil
		case "r":
			m.filter = filter.All()
			m.refreshView()
			return m, nil
		case "/":
			return m.startFilter()
		case "g", "home":
			if m.activeTab == tabSessions {
				m.sessionTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabSessions {
				m.sessionTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabSessions {
				var cmd tea.Cmd
				m.sessionTable, cmd = m.sessionTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Start date: "),
		newFilterInput("End date: "),
		newFilterInput("Cube type: "),
		newFilterInput("Session: "),
	}
	if start, end, ok := m.dash.DateRange(); ok {
		m.filterInputs[fieldStart].Placeholder = start
		m.filterInputs[fieldEnd].Placeholder = end
	}
	m.filterInputs[fieldCube].Placeholder = model.FilterAll
	m.filterInputs[fieldSession].Placeholder = model.FilterAll
	m.setInputsFromFilter()
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromFilter() {
	if len(m.filterInputs) == 0 {
		return
	}
	m.filterInputs[fieldStart].SetValue(strings.TrimSpace(m.filter.StartDate))
	m.filterInputs[fieldEnd].SetValue(strings.TrimSpace(m.filter.EndDate))
	m.filterInputs[fieldCube].SetValue(inputChoice(m.filter.CubeType))
	m.filterInputs[fieldSession].SetValue(inputChoice(m.filter.SessionID))
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.setSessionTableSize(m.width, vpHeight)
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabSessions {
		m.sessionTable.Focus()
	} else {
		m.sessionTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	filters := padLines(m.renderFilterSummary(), m.width)
	return tabs + "\n" + filters
}

func (m *Model) renderFilterSummary() string {
	summary := fmt.Sprintf("cube=%s  session=%s  from=%s  to=%s  window=%d  solves=%d",
		choiceValue(m.filter.CubeType),
		choiceValue(m.filter.SessionID),
		displayDate(m.filter.StartDate),
		displayDate(m.filter.EndDate),
		m.window,
		len(m.view.Solves),
	)
	label := m.view.Label()
	summary = truncateLine(summary, m.width-len(label)-2)
	return viewLabelStyle.Render(label) + "  " + headerStyle.Render(summary)
}

func (m *Model) renderHelp() string {
	help := "Nav: left/right  Scroll: up/down/pgup/pgdn  Cube: c  Session: s  Reset: r  Window: -/=  Filter: /  Quit: q"
	return headerStyle.Render(truncateLine(help, m.width))
}

func (m *Model) renderFilterHelp() string {
	return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel  quit: ctrl+c")
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return m.renderFilterHelp()
	}
	return m.renderHelp()
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Filter (enter to apply, esc to cancel; empty means all)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	choices := m.dash.Choices()
	lines = append(lines,
		"",
		headerStyle.Render(truncateLine("Cube types: "+strings.Join(choices.CubeTypes, ", "), m.width)),
		headerStyle.Render(truncateLine("Sessions: "+strings.Join(choices.SessionIDs, ", "), m.width)),
	)
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return fitLines(m.renderFilterForm(), m.width, height)
	}
	if m.activeTab == tabSessions {
		if len(m.view.Sessions) == 0 {
			return fitLines("No sessions found.", m.width, height)
		}
		view := tableMutedStyle.Render(m.sessionTable.View())
		return fitLines(view, m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) refreshView() {
	m.view = m.dash.Apply(m.filter)
	width := m.width
	if width <= 0 {
		width = 80
	}
	_, bodyHeight, _ := m.layoutHeights()
	applySessionTable(m, m.view.Sessions, width, bodyHeight, true)
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.view, m.window, width, m.plotHeight))
	m.viewports[tabDistribution].SetContent(renderDistribution(m.view))
	m.viewports[tabInsights].SetContent(renderInsights(m.view.Insights, width))
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromFilter()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.filterError = ""
		m.refreshView()
		m.updateLayout()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	if count == 0 {
		return nil
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.filterIndex = idx
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applyFilter() error {
	start := strings.TrimSpace(m.filterInputs[fieldStart].Value())
	end := strings.TrimSpace(m.filterInputs[fieldEnd].Value())
	startDay, hasStart := filter.ParseDate(start)
	if start != "" && !hasStart {
		return fmt.Errorf("invalid start date (expected YYYY-MM-DD)")
	}
	endDay, hasEnd := filter.ParseDate(end)
	if end != "" && !hasEnd {
		return fmt.Errorf("invalid end date (expected YYYY-MM-DD)")
	}
	if hasStart && hasEnd && startDay.After(endDay) {
		return fmt.Errorf("start date is after end date")
	}

	choices := m.dash.Choices()
	cube := choiceValue(m.filterInputs[fieldCube].Value())
	if cube != model.FilterAll && !containsString(choices.CubeTypes, cube) {
		return fmt.Errorf("unknown cube type %q", cube)
	}
	session := choiceValue(m.filterInputs[fieldSession].Value())
	if session != model.FilterAll && !containsString(choices.SessionIDs, session) {
		return fmt.Errorf("unknown session %q", session)
	}

	m.filter = model.Filter{
		StartDate: start,
		EndDate:   end,
		CubeType:  cube,
		SessionID: session,
	}
	log.Debug().Str("cube", cube).Str("session", session).Str("from", start).Str("to", end).Msg("filter form applied")
	return nil
}

func buildSessionTable(groups []model.SessionGroup, width, height int) table.Model {
	cols, rows := buildSessionTableData(groups)
	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(sessionTableStyles())
	return t
}

func buildSessionTableData(groups []model.SessionGroup) ([]table.Column, []table.Row) {
	headers, cells := stats.SessionTableRows(groups)
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range cells {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = maxInt(widths[i], lipgloss.Width(cell))
			}
		}
	}
	cols := make([]table.Column, len(headers))
	for i, h := range headers {
		cols[i] = table.Column{Title: h, Width: widths[i] + 1}
	}
	rows := make([]table.Row, 0, len(cells))
	for _, row := range cells {
		rows = append(rows, table.Row(row))
	}
	return cols, rows
}

func applySessionTable(m *Model, groups []model.SessionGroup, width, height int, force bool) {
	cols, rows := buildSessionTableData(groups)
	viewportHeight := maxInt(1, height-1)
	if !force &&
		m.sessionLayout.width == width &&
		m.sessionLayout.height == viewportHeight &&
		m.sessionLayout.rowCount == len(rows) &&
		m.sessionLayout.colCount == len(cols) {
		return
	}
	m.sessionTable.SetColumns(cols)
	m.sessionTable.SetRows(rows)
	m.sessionTable.SetCursor(0)
	m.sessionLayout.rowCount = len(rows)
	m.sessionLayout.colCount = len(cols)
	m.setSessionTableSize(width, height)
}

func (m *Model) setSessionTableSize(width, height int) {
	viewportHeight := maxInt(1, height-1)
	if m.sessionLayout.width == width && m.sessionLayout.height == viewportHeight {
		return
	}
	m.sessionLayout.width = width
	m.sessionLayout.height = viewportHeight
	m.sessionTable.SetWidth(width)
	m.sessionTable.SetHeight(viewportHeight)
	viewportHeight = m.adjustSessionTableHeight(height)
	if m.sessionLayout.height != viewportHeight {
		m.sessionLayout.height = viewportHeight
		m.sessionTable.SetHeight(viewportHeight)
	}
}

func sessionTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) adjustSessionTableHeight(bodyHeight int) int {
	target := maxInt(1, bodyHeight)
	height := m.sessionTable.Height()
	viewHeight := lipgloss.Height(m.sessionTable.View())
	if viewHeight == target {
		return height
	}
	height += target - viewHeight
	if height < 1 {
		height = 1
	}
	m.sessionTable.SetHeight(height)
	viewHeight = lipgloss.Height(m.sessionTable.View())
	if viewHeight == target {
		return height
	}
	height += target - viewHeight
	if height < 1 {
		height = 1
	}
	return height
}

// cycleChoice steps through "all" followed by choices, wrapping around.
func cycleChoice(current string, choices []string) string {
	options := append([]string{model.FilterAll}, choices...)
	idx := 0
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}
	return options[(idx+1)%len(options)]
}

func choiceValue(input string) string {
	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, model.FilterAll) {
		return model.FilterAll
	}
	return input
}

func inputChoice(v string) string {
	if choiceValue(v) == model.FilterAll {
		return ""
	}
	return strings.TrimSpace(v)
}

func displayDate(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "any"
	}
	return v
}

func containsString(values []string, v string) bool {
	for _, item := range values {
		if item == v {
			return true
		}
	}
	return false
}

func nextCurveWindow(n int) int {
	if n < 5 {
		return 5
	}
	if n%5 == 0 {
		return n + 5
	}
	return ((n / 5) + 1) * 5
}

func prevCurveWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}
