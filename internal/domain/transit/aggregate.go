package transit

import "sort"

// TypeAverage is one bar of the speed chart.
type TypeAverage struct {
	Type            string  `json:"tipo"`
	AverageSpeedKmh float64 `json:"velocidad_promedio"`
	Color           string  `json:"color"`
}

// AverageSpeedByType groups routes by transport type and averages their speed.
// Only types present in routes appear, sorted by type.
func AverageSpeedByType(routes []TransitRoute) []TypeAverage {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range routes {
		sums[r.Type] += r.AverageSpeedKmh
		counts[r.Type]++
	}

	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)

	averages := make([]TypeAverage, 0, len(types))
	for _, t := range types {
		averages = append(averages, TypeAverage{
			Type:            t,
			AverageSpeedKmh: sums[t] / float64(counts[t]),
			Color:           MarkerColor(t),
		})
	}
	return averages
}
