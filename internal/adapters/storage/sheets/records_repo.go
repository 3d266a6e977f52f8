package sheets

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"patilog/internal/domain/records"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Column order is fixed and the headers are part of the store contract:
// the sheet predates this program and other tooling reads it.
var headerRow = []any{"Pet İsmi", "Aşı Tipi", "Uygulama Tarihi", "Sonraki Tarih", "Kilo (kg)"}

const dataRange = "A:E"

// RecordsRepo stores rows in a Google Sheets document, first worksheet.
type RecordsRepo struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// New builds the repo from service-account key material (JSON bytes).
func New(ctx context.Context, credentialsJSON []byte, spreadsheetID string) (*RecordsRepo, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("sheets: spreadsheet id required")
	}

	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets: init client: %w", err)
	}

	return &RecordsRepo{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// LoadAll reads every data row. A missing sheet or an empty range is an empty
// record set, not an error.
func (r *RecordsRepo) LoadAll(ctx context.Context) ([]records.TreatmentRecord, error) {
	resp, err := r.svc.Spreadsheets.Values.Get(r.spreadsheetID, dataRange).Context(ctx).Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == 404 {
			return []records.TreatmentRecord{}, nil
		}
		return nil, fmt.Errorf("sheets: read: %w", err)
	}

	rows := resp.Values
	if len(rows) > 0 && isHeader(rows[0]) {
		rows = rows[1:]
	}

	out := make([]records.TreatmentRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, parseRow(row))
	}
	return out, nil
}

func (r *RecordsRepo) Append(ctx context.Context, rec records.TreatmentRecord) error {
	values := [][]any{toRow(rec)}

	// first write ever also lays down the header
	empty, err := r.isEmpty(ctx)
	if err != nil {
		return err
	}
	if empty {
		values = [][]any{headerRow, toRow(rec)}
	}

	_, err = r.svc.Spreadsheets.Values.Append(r.spreadsheetID, dataRange,
		&sheetsapi.ValueRange{Values: values}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: append: %w", err)
	}
	return nil
}

// ReplaceAll clears the range and rewrites header + rows. This is the only
// delete primitive the store offers us without per-row addressing.
func (r *RecordsRepo) ReplaceAll(ctx context.Context, recs []records.TreatmentRecord) error {
	_, err := r.svc.Spreadsheets.Values.Clear(r.spreadsheetID, dataRange,
		&sheetsapi.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: clear: %w", err)
	}

	values := make([][]any, 0, len(recs)+1)
	values = append(values, headerRow)
	for _, rec := range recs {
		values = append(values, toRow(rec))
	}

	_, err = r.svc.Spreadsheets.Values.Update(r.spreadsheetID, "A1",
		&sheetsapi.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: rewrite: %w", err)
	}
	return nil
}

func (r *RecordsRepo) isEmpty(ctx context.Context) (bool, error) {
	resp, err := r.svc.Spreadsheets.Values.Get(r.spreadsheetID, dataRange).Context(ctx).Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == 404 {
			return true, nil
		}
		return false, fmt.Errorf("sheets: read: %w", err)
	}
	return len(resp.Values) == 0, nil
}

func isHeader(row []any) bool {
	return len(row) > 0 && cellString(row[0]) == cellString(headerRow[0])
}

func toRow(rec records.TreatmentRecord) []any {
	return []any{rec.PetName, rec.Treatment, rec.Applied, rec.NextDue, rec.WeightKg}
}

func parseRow(row []any) records.TreatmentRecord {
	return records.TreatmentRecord{
		PetName:   cellString(cellAt(row, 0)),
		Treatment: cellString(cellAt(row, 1)),
		Applied:   cellString(cellAt(row, 2)),
		NextDue:   cellString(cellAt(row, 3)),
		WeightKg:  cellFloat(cellAt(row, 4)),
	}
}

func cellAt(row []any, i int) any {
	if i >= len(row) {
		return nil
	}
	return row[i]
}

func cellString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v))
}

func cellFloat(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return x
	case string:
		// hand-edited cells sometimes use a decimal comma
		f, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(x), ",", ".", 1), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
