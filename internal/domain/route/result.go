package route

import "strconv"

// Spreadsheet column names for a RouteQueryResult, in output order.
const (
	ColumnRoute              = "ruta"
	ColumnOrigin             = "origen"
	ColumnDestination        = "destino"
	ColumnDistanceKm         = "distancia_km"
	ColumnDurationMin        = "duracion_min"
	ColumnTrafficDurationMin = "duracion_trafico_min"
	ColumnAverageSpeed       = "velocidad_promedio"
)

// Columns lists the output columns in the order they are written.
var Columns = []string{
	ColumnRoute,
	ColumnOrigin,
	ColumnDestination,
	ColumnDistanceKm,
	ColumnDurationMin,
	ColumnTrafficDurationMin,
	ColumnAverageSpeed,
}

// LegMetrics holds the raw values of the first leg of a directions response.
type LegMetrics struct {
	DistanceMeters  float64
	DurationSeconds float64
	// TrafficDurationSeconds is nil when the API did not return a traffic-aware estimate.
	TrafficDurationSeconds *float64
}

// RouteQueryResult is one fetched row of the output spreadsheet.
type RouteQueryResult struct {
	Route              string  `json:"ruta"`
	Origin             string  `json:"origen"`
	Destination        string  `json:"destino"`
	DistanceKm         float64 `json:"distancia_km"`
	DurationMin        float64 `json:"duracion_min"`
	TrafficDurationMin float64 `json:"duracion_trafico_min"`
	AverageSpeedKmh    float64 `json:"velocidad_promedio"`
}

// NewRouteQueryResult derives the output row for a pair from its leg metrics.
//
// Unit conversions are computed on the unrounded values and each field is
// rounded to one decimal afterwards. A zero traffic duration yields a zero
// average speed.
func NewRouteQueryResult(pair Pair, leg LegMetrics) *RouteQueryResult {
	distanceKm := leg.DistanceMeters / 1000
	durationMin := leg.DurationSeconds / 60

	trafficSeconds := leg.DurationSeconds
	if leg.TrafficDurationSeconds != nil {
		trafficSeconds = *leg.TrafficDurationSeconds
	}
	trafficMin := trafficSeconds / 60

	var speed float64
	if trafficMin > 0 {
		speed = distanceKm / (trafficMin / 60)
	}

	return &RouteQueryResult{
		Route:              pair.Label(),
		Origin:             pair.Origin,
		Destination:        pair.Destination,
		DistanceKm:         Round1(distanceKm),
		DurationMin:        Round1(durationMin),
		TrafficDurationMin: Round1(trafficMin),
		AverageSpeedKmh:    Round1(speed),
	}
}

// Round1 rounds the exact decimal value of v to one decimal place, ties to
// even. 0.15 is stored just below 0.15 and rounds to 0.1.
func Round1(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return r
}
