package repository

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/transmovil-cr/service-routes/internal/domain/transit"
)

// SpreadsheetRouteReader reads transit routes from .xlsx or .csv files.
type SpreadsheetRouteReader struct {
	logger *zap.Logger
}

// NewSpreadsheetRouteReader creates a new SpreadsheetRouteReader.
func NewSpreadsheetRouteReader(logger *zap.Logger) *SpreadsheetRouteReader {
	return &SpreadsheetRouteReader{logger: logger}
}

// Read implements transit.RouteSource. Blank rows are skipped.
func (r *SpreadsheetRouteReader) Read(ctx context.Context, path string) ([]transit.TransitRoute, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	var routes []transit.TransitRoute
	switch format {
	case FormatCSV:
		routes, err = readRoutesCSV(path)
	default:
		routes, err = readRoutesXLSX(path)
	}
	if err != nil {
		return nil, err
	}

	r.logger.Info("transit routes loaded",
		zap.String("path", path),
		zap.Int("rows", len(routes)),
	)
	return routes, nil
}

func readRoutesXLSX(path string) ([]transit.TransitRoute, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, &transit.MissingColumnsError{Path: path, Columns: transit.Columns}
	}

	index, err := columnIndex(path, rows[0])
	if err != nil {
		return nil, err
	}

	routes := make([]transit.TransitRoute, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		rec, err := parseRouteRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		routes = append(routes, rec)
	}
	return routes, nil
}

func readRoutesCSV(path string) ([]transit.TransitRoute, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &transit.MissingColumnsError{Path: path, Columns: transit.Columns}
	}

	dec, err := csvutil.NewDecoder(csv.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder for %s: %w", path, err)
	}
	dec.DisallowMissingColumns = true

	var routes []transit.TransitRoute
	if err := dec.Decode(&routes); err != nil {
		var missing *csvutil.MissingColumnsError
		if errors.As(err, &missing) {
			return nil, &transit.MissingColumnsError{Path: path, Columns: missing.Columns}
		}
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return routes, nil
}

func columnIndex(path string, header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range transit.Columns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &transit.MissingColumnsError{Path: path, Columns: missing}
	}
	return index, nil
}

func parseRouteRow(row []string, index map[string]int) (transit.TransitRoute, error) {
	cell := func(col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var rec transit.TransitRoute
	rec.Route = cell(transit.ColumnRoute)
	rec.Type = cell(transit.ColumnType)
	rec.Region = cell(transit.ColumnRegion)

	floats := []struct {
		col string
		dst *float64
	}{
		{transit.ColumnLat, &rec.Lat},
		{transit.ColumnLon, &rec.Lon},
		{transit.ColumnAverageSpeed, &rec.AverageSpeedKmh},
		{transit.ColumnDelayMinutes, &rec.DelayMinutes},
	}
	for _, f := range floats {
		v, err := strconv.ParseFloat(cell(f.col), 64)
		if err != nil {
			return transit.TransitRoute{}, fmt.Errorf("column %s: %w", f.col, err)
		}
		*f.dst = v
	}
	return rec, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
