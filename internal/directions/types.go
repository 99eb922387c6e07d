package directions

// Response is the subset of the Directions API JSON body the fetcher reads.
type Response struct {
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message,omitempty"`
	Routes       []Route `json:"routes"`
}

// Route is one alternative returned by the API.
type Route struct {
	Summary string `json:"summary"`
	Legs    []Leg  `json:"legs"`
}

// Leg is a route segment between origin and destination.
type Leg struct {
	StartAddress      string     `json:"start_address"`
	EndAddress        string     `json:"end_address"`
	Distance          TextValue  `json:"distance"`
	Duration          TextValue  `json:"duration"`
	DurationInTraffic *TextValue `json:"duration_in_traffic,omitempty"`
}

// TextValue is a measurement with its human-readable text. Value is in
// meters for distances and seconds for durations.
type TextValue struct {
	Text  string  `json:"text"`
	Value float64 `json:"value"`
}
