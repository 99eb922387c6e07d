package transit

// DefaultMarkerColor is used for transport types missing from MarkerColors.
const DefaultMarkerColor = "green"

// MarkerColors maps the known transport types to marker colors.
var MarkerColors = map[string]string{
	"Autobús": "blue",
	"Bus":     "blue",
	"Tren":    "red",
	"Taxi":    "orange",
}

// MarkerColor returns the marker color for a transport type.
func MarkerColor(transportType string) string {
	if color, ok := MarkerColors[transportType]; ok {
		return color
	}
	return DefaultMarkerColor
}
