package tui

// ViewState is the screen the dashboard is showing.
type ViewState int

// View states.
const (
	ViewStateLoading ViewState = iota
	ViewStateList
	ViewStateDetail
	ViewStateQuitting
	ViewStateError
)

func (s ViewState) String() string {
	switch s {
	case ViewStateLoading:
		return "loading"
	case ViewStateList:
		return "list"
	case ViewStateDetail:
		return "detail"
	case ViewStateQuitting:
		return "quitting"
	case ViewStateError:
		return "error"
	default:
		return "unknown"
	}
}

// SortField is the column the country table is ordered by.
type SortField int

// Sort fields, in cycle order.
const (
	SortByUsers SortField = iota
	SortByCarbon
	SortByName
	numSortFields
)

// Key bindings.
const (
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
	keyEnter = "enter"
	keyEsc   = "esc"
	keySlash = "/"
	keyS     = "s"
)

// Layout defaults.
const (
	defaultWidth  = 100
	defaultHeight = 24
	minHeight     = 5
	summaryHeight = 4
	borderPadding = 2
)

const msgSelectedOutOfBounds = "No country selected"
