package models

type Window string

const (
	WindowMonth   Window = "month"
	WindowAllTime Window = "all"
)

type SortBy string

const (
	SortPerformance SortBy = "performance"
	SortCompletion  SortBy = "completion"
	SortName        SortBy = "name"
)

type ChartType string

const (
	ChartTop10   ChartType = "top10"
	ChartAll     ChartType = "all"
	ChartSummary ChartType = "summary"
)

var (
	Windows    = []Window{WindowMonth, WindowAllTime}
	SortOrders = []SortBy{SortPerformance, SortCompletion, SortName}
	ChartTypes = []ChartType{ChartTop10, ChartAll, ChartSummary}
)

type Config struct {
	ReviewWindow Window    `json:"review_window"` // window the review screen opens with
	SortBy       SortBy    `json:"sort_by"`
	ChartType    ChartType `json:"chart_type"`
}

func DefaultConfig() Config {
	return Config{
		ReviewWindow: WindowMonth,
		SortBy:       SortPerformance,
		ChartType:    ChartTop10,
	}
}

// Label returns the heading used for a window.
func (w Window) Label() string {
	if w == WindowAllTime {
		return "All Time"
	}
	return "This Month"
}

func (w Window) Valid() bool {
	return w == WindowMonth || w == WindowAllTime
}

func (s SortBy) Valid() bool {
	for _, v := range SortOrders {
		if v == s {
			return true
		}
	}
	return false
}

func (c ChartType) Valid() bool {
	for _, v := range ChartTypes {
		if v == c {
			return true
		}
	}
	return false
}

// Normalize replaces unknown values with defaults.
func (c Config) Normalize() Config {
	def := DefaultConfig()
	if !c.ReviewWindow.Valid() {
		c.ReviewWindow = def.ReviewWindow
	}
	if !c.SortBy.Valid() {
		c.SortBy = def.SortBy
	}
	if !c.ChartType.Valid() {
		c.ChartType = def.ChartType
	}
	return c
}

func (w Window) Next() Window {
	if w == WindowMonth {
		return WindowAllTime
	}
	return WindowMonth
}

func (s SortBy) Next() SortBy {
	return next(SortOrders, s)
}

func (s SortBy) Label() string {
	switch s {
	case SortCompletion:
		return "Completion"
	case SortName:
		return "Name"
	default:
		return "Performance"
	}
}

func (c ChartType) Next() ChartType {
	return next(ChartTypes, c)
}

func (c ChartType) Label() string {
	switch c {
	case ChartAll:
		return "All Habits"
	case ChartSummary:
		return "Summary"
	default:
		return "Top 10"
	}
}

// next returns the value after v in values, wrapping at the end. Unknown
// values restart at the first element.
func next[T comparable](values []T, v T) T {
	for i, candidate := range values {
		if candidate == v {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}
