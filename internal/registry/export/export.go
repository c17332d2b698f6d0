// Package export renders registry statistics and the voter roll as an XLSX
// workbook.
package export

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/xuri/excelize/v2"

	"voterroll/internal/platform/privacy"
	"voterroll/internal/registry/service"
	"voterroll/internal/voter/models"
)

const (
	SheetSummary = "Summary"
	SheetBooths  = "Booths"
	SheetVoters  = "Voters"
)

// Source is the registry surface the exporter reads.
type Source interface {
	AggregateStats(boothIDs ...string) service.Stats
	BoothWiseStats() map[string]service.BoothStats
	Snapshot() service.Snapshot
}

var (
	boothHeader = []string{"Booth", "Total", "Verified", "Unverified", "Male", "Female", "Other"}
	voterHeader = []string{
		"EPIC ID", "Booth", "Constituency", "Serial No", "Name", "Gender", "Age",
		"Mobile", "Area", "Caste", "Voting Preference", "Verification",
	}
	voterWidths = []float64{14, 10, 14, 10, 24, 8, 6, 14, 20, 12, 18, 14}
)

type options struct {
	maskContacts bool
}

type Option func(*options)

// WithMaskedContacts writes mobile numbers with all but the last four digits
// hidden.
func WithMaskedContacts() Option {
	return func(o *options) { o.maskContacts = true }
}

// Build assembles the workbook. The caller owns the returned file and must
// Close it.
func Build(src Source, opts ...Option) (*excelize.File, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	f := excelize.NewFile()
	if err := build(f, src, o); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

// Write streams the workbook to w.
func Write(w io.Writer, src Source, opts ...Option) error {
	f, err := Build(src, opts...)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteFile saves the workbook at path.
func WriteFile(path string, src Source, opts ...Option) error {
	f, err := Build(src, opts...)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func build(f *excelize.File, src Source, o options) error {
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("rename default sheet: %w", err)
	}
	for _, name := range []string{SheetBooths, SheetVoters} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := writeSummary(f, src.AggregateStats(), header); err != nil {
		return err
	}
	if err := writeBooths(f, src.BoothWiseStats(), header); err != nil {
		return err
	}
	return writeVoters(f, src.Snapshot().Records, header, o)
}

func writeSummary(f *excelize.File, stats service.Stats, header int) error {
	rows := [][]any{
		{"Metric", "Value"},
		{"Total", stats.Total},
		{"Verified", stats.Verified},
		{"Unverified", stats.Unverified},
		{"Male", stats.Male},
		{"Female", stats.Female},
		{"Other", stats.Other},
		{},
		{"Age Group", "Voters"},
	}
	for _, g := range models.AgeGroups {
		rows = append(rows, []any{string(g), stats.AgeGroups[g]})
	}
	rows = append(rows, []any{}, []any{"Caste", "Voters"})
	rows = append(rows, histogram(stats.Castes)...)
	rows = append(rows, []any{}, []any{"Voting Preference", "Voters"})
	rows = append(rows, histogram(stats.Parties)...)

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if err := setRow(f, SheetSummary, i+1, row); err != nil {
			return err
		}
		if _, isLabel := row[1].(string); isLabel {
			if err := styleRow(f, SheetSummary, i+1, len(row), header); err != nil {
				return err
			}
		}
	}
	return f.SetColWidth(SheetSummary, "A", "A", 20)
}

func writeBooths(f *excelize.File, booths map[string]service.BoothStats, header int) error {
	if err := writeHeader(f, SheetBooths, boothHeader, header); err != nil {
		return err
	}
	for i, id := range slices.Sorted(maps.Keys(booths)) {
		b := booths[id]
		row := []any{id, b.Total, b.Verified, b.Unverified, b.Male, b.Female, b.Other}
		if err := setRow(f, SheetBooths, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeVoters(f *excelize.File, records []*models.Voter, header int, o options) error {
	if err := writeHeader(f, SheetVoters, voterHeader, header); err != nil {
		return err
	}
	for i, w := range voterWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetVoters, col, col, w); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}
	for i, v := range records {
		var age any
		if v.Age != nil {
			age = *v.Age
		}
		mobile := v.Mobile
		if o.maskContacts {
			mobile = privacy.MaskMobile(mobile)
		}
		row := []any{
			v.EpicID, v.BoothID, v.ConstituencyID, v.SerialNumber, v.DisplayName(),
			string(v.Gender), age, mobile, v.Area, v.Caste, v.VotingPreference,
			string(v.VerificationStatus),
		}
		if err := setRow(f, SheetVoters, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// histogram returns label/count rows sorted by descending count, then label.
func histogram(h map[string]int) [][]any {
	keys := slices.Sorted(maps.Keys(h))
	slices.SortStableFunc(keys, func(a, b string) int { return h[b] - h[a] })
	rows := make([][]any, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []any{k, h[k]})
	}
	return rows
}

func writeHeader(f *excelize.File, sheet string, cols []string, style int) error {
	row := make([]any, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	if err := setRow(f, sheet, 1, row); err != nil {
		return err
	}
	return styleRow(f, sheet, 1, len(cols), style)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func styleRow(f *excelize.File, sheet string, row, width, style int) error {
	from, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(width, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, from, to, style)
}
