package transit

import (
	"context"
	"fmt"
	"strings"
)

// Source column names of the routes spreadsheet.
const (
	ColumnRoute        = "ruta"
	ColumnType         = "tipo"
	ColumnRegion       = "region"
	ColumnLat          = "lat"
	ColumnLon          = "lon"
	ColumnAverageSpeed = "velocidad_promedio"
	ColumnDelayMinutes = "demora_minutos"
)

// Columns lists the source columns the dashboard reads.
var Columns = []string{
	ColumnRoute,
	ColumnType,
	ColumnRegion,
	ColumnLat,
	ColumnLon,
	ColumnAverageSpeed,
	ColumnDelayMinutes,
}

// DisplayColumn pairs a source column with the label shown to users.
type DisplayColumn struct {
	Source string `json:"source"`
	Label  string `json:"label"`
}

// DisplayColumns is the relabeling applied for display. Values are not transformed.
var DisplayColumns = []DisplayColumn{
	{Source: ColumnRoute, Label: "Ruta"},
	{Source: ColumnType, Label: "Tipo de transporte"},
	{Source: ColumnRegion, Label: "Región"},
	{Source: ColumnLat, Label: "Latitud"},
	{Source: ColumnLon, Label: "Longitud"},
	{Source: ColumnAverageSpeed, Label: "Velocidad promedio (km/h)"},
	{Source: ColumnDelayMinutes, Label: "Demora (min)"},
}

// Label returns the display label of a source column, or the column itself if unknown.
func Label(source string) string {
	for _, c := range DisplayColumns {
		if c.Source == source {
			return c.Label
		}
	}
	return source
}

// TransitRoute is one record of the curated routes spreadsheet.
type TransitRoute struct {
	Route           string  `json:"ruta" csv:"ruta"`
	Type            string  `json:"tipo" csv:"tipo"`
	Region          string  `json:"region" csv:"region"`
	Lat             float64 `json:"lat" csv:"lat"`
	Lon             float64 `json:"lon" csv:"lon"`
	AverageSpeedKmh float64 `json:"velocidad_promedio" csv:"velocidad_promedio"`
	DelayMinutes    float64 `json:"demora_minutos" csv:"demora_minutos"`
}

// MissingColumnsError is returned when a routes file lacks required columns.
type MissingColumnsError struct {
	Path    string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: missing columns: %s", e.Path, strings.Join(e.Columns, ", "))
}

// RouteSource reads transit routes from a tabular file.
type RouteSource interface {
	Read(ctx context.Context, path string) ([]TransitRoute, error)
}
