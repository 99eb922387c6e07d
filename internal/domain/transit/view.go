package transit

// Table is the filtered routes under their display labels.
type Table struct {
	Columns []DisplayColumn `json:"columns"`
	Rows    []TransitRoute  `json:"rows"`
}

// DashboardView is everything the dashboard renders for one filter selection.
type DashboardView struct {
	Options     FilterOptions `json:"options"`
	Selection   FilterState   `json:"selection"`
	Table       Table         `json:"table"`
	SpeedByType []TypeAverage `json:"speed_by_type"`
	Map         *MapView      `json:"map,omitempty"`
	Warning     string        `json:"warning,omitempty"`
}

// BuildView computes the dashboard for routes under the given selection.
// It has no side effects and is re-run for every interaction.
func BuildView(routes []TransitRoute, state FilterState) DashboardView {
	opts := Options(routes)
	selection := state.Resolve(opts)
	filtered := Filter(routes, selection)

	view := DashboardView{
		Options:     opts,
		Selection:   selection,
		Table:       Table{Columns: DisplayColumns, Rows: filtered},
		SpeedByType: AverageSpeedByType(filtered),
		Map:         BuildMap(filtered),
	}
	if view.Map == nil {
		view.Warning = EmptySelectionWarn
	}
	return view
}
