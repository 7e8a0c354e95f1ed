package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/aggregate"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/carbon"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/cli/pagination"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/logging"
)

// Loader fetches the country rows shown by the dashboard.
type Loader func(ctx context.Context) ([]aggregate.MetaData, error)

// Options configures number formatting and the detail report.
type Options struct {
	Language   language.Tag
	CarbonUnit string
	Precision  int
}

// MetaDataLoadedMsg carries the result of the Loader.
type MetaDataLoadedMsg struct {
	Rows []aggregate.MetaData
	Err  error
}

// DashboardModel is the Bubble Tea model of the country dashboard.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type DashboardModel struct {
	state   ViewState
	ctx     context.Context
	load    Loader
	opts    Options
	format  *carbon.Formatter
	allRows []aggregate.MetaData // as loaded
	rows    []aggregate.MetaData // filtered and sorted

	table     table.Model
	textInput textinput.Model
	spinner   spinner.Model
	selected  int

	width      int
	height     int
	sortBy     SortField
	showFilter bool

	err error
}

// NewDashboardModel creates a dashboard that loads its rows with load
// once started.
func NewDashboardModel(ctx context.Context, load Loader, opts Options) DashboardModel {
	m := DashboardModel{
		state:     ViewStateLoading,
		ctx:       ctx,
		load:      load,
		opts:      opts,
		format:    carbon.NewFormatter(opts.Language),
		width:     defaultWidth,
		height:    defaultHeight,
		sortBy:    SortByUsers,
		textInput: newTextInput(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	m.table = m.buildTable()
	return m
}

func newTextInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "country name or id"
	ti.CharLimit = 64
	return ti
}

// Init starts the spinner and the loader (Bubble Tea interface).
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m DashboardModel) loadCmd() tea.Cmd {
	ctx, load := m.ctx, m.load
	return func() tea.Msg {
		rows, err := load(ctx)
		return MetaDataLoadedMsg{Rows: rows, Err: err}
	}
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rebuildTable()
		return m, nil
	case MetaDataLoadedMsg:
		return m.handleLoaded(msg)
	case spinner.TickMsg:
		if m.state != ViewStateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.showFilter {
		return m.handleFilterInput(msg)
	}

	switch m.state {
	case ViewStateList:
		return m.handleListUpdate(msg)
	case ViewStateDetail:
		return m.handleDetailUpdate(msg)
	case ViewStateLoading, ViewStateError:
		return m.handleQuitOnly(msg)
	case ViewStateQuitting:
		return m, nil
	default:
		return m, nil
	}
}

func (m DashboardModel) handleLoaded(msg MetaDataLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.state = ViewStateError
		m.err = msg.Err
		logging.FromContext(m.ctx).Error().Ctx(m.ctx).
			Str("component", "tui").
			Err(msg.Err).
			Msg("loading dashboard data failed")
		return m, nil
	}

	m.allRows = msg.Rows
	m.state = ViewStateList
	m.applyFilter(m.textInput.Value())
	logging.FromContext(m.ctx).Debug().Ctx(m.ctx).
		Str("component", "tui").
		Int("country_count", len(msg.Rows)).
		Msg("dashboard data loaded")
	return m, nil
}

func (m DashboardModel) handleQuitOnly(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m DashboardModel) handleFilterInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEnter, keyEsc:
			m.showFilter = false
			m.textInput.Blur()
			m.applyFilter(m.textInput.Value())
			return m, nil
		case keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m DashboardModel) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyEnter:
		m.selected = m.table.Cursor()
		if m.selected >= 0 && m.selected < len(m.rows) {
			m.state = ViewStateDetail
		}
		return m, nil
	case keySlash:
		m.showFilter = true
		m.textInput.Focus()
		return m, textinput.Blink
	case keyS:
		m.cycleSort()
		return m, nil
	case keyEsc:
		if m.textInput.Value() != "" {
			m.textInput.SetValue("")
			m.applyFilter("")
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(keyMsg)
		return m, cmd
	}
}

func (m DashboardModel) handleDetailUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		case keyEsc:
			m.state = ViewStateList
			m.table.Focus()
			return m, nil
		}
	}
	return m, nil
}

// cycleSort advances to the next sort field.
func (m *DashboardModel) cycleSort() {
	m.sortBy = (m.sortBy + 1) % numSortFields
	m.refreshTable()
}

// applyFilter keeps the rows whose name or id contains query, ignoring case.
func (m *DashboardModel) applyFilter(query string) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		m.rows = m.allRows
	} else {
		m.rows = make([]aggregate.MetaData, 0, len(m.allRows))
		for _, r := range m.allRows {
			if strings.Contains(strings.ToLower(r.Country), query) ||
				strings.Contains(strings.ToLower(r.CountryID), query) {
				m.rows = append(m.rows, r)
			}
		}
	}
	m.refreshTable()
}

// refreshTable re-sorts the rows and rebuilds the table.
func (m *DashboardModel) refreshTable() {
	field, order := m.sortBy.field()
	if sorted, err := pagination.SortMetaData(m.rows, field, order); err == nil {
		m.rows = sorted
	}
	m.rebuildTable()
}

func (s SortField) field() (string, string) {
	switch s {
	case SortByCarbon:
		return pagination.FieldCarbon, pagination.SortOrderDesc
	case SortByName:
		return pagination.FieldName, pagination.SortOrderAsc
	case SortByUsers, numSortFields:
		return pagination.FieldUsers, pagination.SortOrderDesc
	default:
		return pagination.FieldUsers, pagination.SortOrderDesc
	}
}

func (m *DashboardModel) rebuildTable() {
	m.table = m.buildTable()
}

func (m *DashboardModel) buildTable() table.Model {
	columns := []table.Column{
		{Title: "Country", Width: 24},                         //nolint:mnd // Column width.
		{Title: "Code", Width: 6},                             //nolint:mnd // Column width.
		{Title: "Users", Width: 8},                            //nolint:mnd // Column width.
		{Title: "Consumptions", Width: 13},                    //nolint:mnd // Column width.
		{Title: "Carbon (" + m.carbonUnit() + ")", Width: 14}, //nolint:mnd // Column width.
		{Title: "Energy (kWh)", Width: 14},                    //nolint:mnd // Column width.
	}

	rows := make([]table.Row, len(m.rows))
	for i, r := range m.rows {
		rows[i] = table.Row{
			r.Country,
			r.CountryCode,
			m.format.Number(int64(r.UserCount)),
			m.format.Number(int64(r.ConsumptionsCount)),
			m.format.Float(totalCarbon(r), m.opts.Precision),
			m.format.Float(totalEnergy(r), m.opts.Precision),
		}
	}

	availableHeight := m.height - summaryHeight - 1
	if availableHeight < minHeight {
		availableHeight = minHeight
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(availableHeight),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)

	return t
}

func (m DashboardModel) carbonUnit() string {
	if m.opts.CarbonUnit == "" {
		return "kg"
	}
	return m.opts.CarbonUnit
}

func totalCarbon(r aggregate.MetaData) float64 {
	c := r.Consumptions
	return c.Electricity.CarbonEmissions + c.Heating.CarbonEmissions + c.Transportation.CarbonEmissions
}

func totalEnergy(r aggregate.MetaData) float64 {
	c := r.Consumptions
	return c.Electricity.EnergyExpended + c.Heating.EnergyExpended + c.Transportation.EnergyExpended
}
