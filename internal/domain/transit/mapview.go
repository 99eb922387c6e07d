package transit

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"
)

// Map rendering constants.
const (
	MapZoom            = 10
	MarkerRadius       = 6
	MarkerFillOpacity  = 0.8
	PopupMaxWidth      = 250
	EmptySelectionWarn = "No hay rutas que coincidan con los filtros seleccionados."
)

// Marker is a circle marker placed at a route's coordinates.
type Marker struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Color       string  `json:"color"`
	Radius      int     `json:"radius"`
	FillOpacity float64 `json:"fill_opacity"`
	// Popup and Tooltip are HTML fragments with escaped values.
	Popup         string `json:"popup"`
	PopupMaxWidth int    `json:"popup_max_width"`
	Tooltip       string `json:"tooltip"`
}

// MapView is the map centered on the filtered routes.
type MapView struct {
	CenterLat float64  `json:"center_lat"`
	CenterLon float64  `json:"center_lon"`
	Zoom      int      `json:"zoom"`
	Markers   []Marker `json:"markers"`
}

// BuildMap returns nil when routes is empty.
func BuildMap(routes []TransitRoute) *MapView {
	if len(routes) == 0 {
		return nil
	}

	var sumLat, sumLon float64
	markers := make([]Marker, 0, len(routes))
	for _, r := range routes {
		sumLat += r.Lat
		sumLon += r.Lon
		markers = append(markers, Marker{
			Lat:           r.Lat,
			Lon:           r.Lon,
			Color:         MarkerColor(r.Type),
			Radius:        MarkerRadius,
			FillOpacity:   MarkerFillOpacity,
			Popup:         popupHTML(r),
			PopupMaxWidth: PopupMaxWidth,
			Tooltip:       html.EscapeString(r.Route),
		})
	}

	n := float64(len(routes))
	return &MapView{
		CenterLat: sumLat / n,
		CenterLon: sumLon / n,
		Zoom:      MapZoom,
		Markers:   markers,
	}
}

func popupHTML(r TransitRoute) string {
	return fmt.Sprintf(
		"<b>Ruta:</b> %s<br><b>Tipo:</b> %s<br><b>Región:</b> %s<br><b>Velocidad:</b> %s km/h<br><b>Demora:</b> %s min",
		html.EscapeString(r.Route),
		html.EscapeString(r.Type),
		html.EscapeString(r.Region),
		formatSpeed(r.AverageSpeedKmh),
		formatNumber(r.DelayMinutes),
	)
}

// formatSpeed always shows a decimal part, so 30 reads "30.0".
func formatSpeed(v float64) string {
	s := formatNumber(v)
	if math.IsInf(v, 0) || math.IsNaN(v) || strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
