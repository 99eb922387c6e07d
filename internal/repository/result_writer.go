package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/jszwec/csvutil"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/transmovil-cr/service-routes/internal/domain/route"
)

// resultRecord is the tabular row of a RouteQueryResult. Nil fields are
// written as blank cells, which is how a failed query appears.
type resultRecord struct {
	Route              *string  `csv:"ruta"`
	Origin             *string  `csv:"origen"`
	Destination        *string  `csv:"destino"`
	DistanceKm         *float64 `csv:"distancia_km"`
	DurationMin        *float64 `csv:"duracion_min"`
	TrafficDurationMin *float64 `csv:"duracion_trafico_min"`
	AverageSpeedKmh    *float64 `csv:"velocidad_promedio"`
}

func toResultRecord(r *route.RouteQueryResult) resultRecord {
	if r == nil {
		return resultRecord{}
	}
	return resultRecord{
		Route:              &r.Route,
		Origin:             &r.Origin,
		Destination:        &r.Destination,
		DistanceKm:         &r.DistanceKm,
		DurationMin:        &r.DurationMin,
		TrafficDurationMin: &r.TrafficDurationMin,
		AverageSpeedKmh:    &r.AverageSpeedKmh,
	}
}

// cells returns the record in route.Columns order. Nil fields stay nil.
func (r resultRecord) cells() []interface{} {
	cells := make([]interface{}, 0, len(route.Columns))
	for _, s := range []*string{r.Route, r.Origin, r.Destination} {
		if s == nil {
			cells = append(cells, nil)
			continue
		}
		cells = append(cells, *s)
	}
	for _, f := range []*float64{r.DistanceKm, r.DurationMin, r.TrafficDurationMin, r.AverageSpeedKmh} {
		if f == nil {
			cells = append(cells, nil)
			continue
		}
		cells = append(cells, *f)
	}
	return cells
}

// placeholderRow keeps a failed pair's row in the sheet as empty strings.
func placeholderRow() []interface{} {
	row := make([]interface{}, len(route.Columns))
	for i := range row {
		row[i] = ""
	}
	return row
}

// SpreadsheetResultWriter writes fetch results as .xlsx or .csv.
type SpreadsheetResultWriter struct {
	logger *zap.Logger
}

// NewSpreadsheetResultWriter creates a new SpreadsheetResultWriter.
func NewSpreadsheetResultWriter(logger *zap.Logger) *SpreadsheetResultWriter {
	return &SpreadsheetResultWriter{logger: logger}
}

// Write implements route.ResultWriter.
func (w *SpreadsheetResultWriter) Write(ctx context.Context, path string, results []*route.RouteQueryResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	if err := ensureDir(path); err != nil {
		return err
	}

	switch format {
	case FormatCSV:
		err = writeResultsCSV(path, results)
	default:
		err = writeResultsXLSX(path, results)
	}
	if err != nil {
		return err
	}

	w.logger.Debug("results written",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("rows", len(results)),
	)
	return nil
}

func writeResultsXLSX(path string, results []*route.RouteQueryResult) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(route.Columns))
	for i, col := range route.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := placeholderRow()
		if r != nil {
			row = toResultRecord(r).cells()
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func writeResultsCSV(path string, results []*route.RouteQueryResult) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = out.Close() }()

	cw := csv.NewWriter(out)
	enc := csvutil.NewEncoder(cw)

	if len(results) == 0 {
		if err := enc.EncodeHeader(resultRecord{}); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	for i, r := range results {
		if err := enc.Encode(toResultRecord(r)); err != nil {
			return fmt.Errorf("failed to encode row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return out.Close()
}
