// Package excel implements the workbook bridge: row-aware appends into a
// shared xlsx tagging sheet. The format has no concurrent-writer support, so
// one mutex serializes every load-mutate-save sequence.
package excel

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/xuri/excelize/v2"
)

// ErrNoRoom is returned when no empty row exists within the scan bound.
var ErrNoRoom = errors.New("no empty row within scan range")

// scanWindow bounds the empty-row scan past the current sheet size and past
// the requested target row.
const scanWindow = 200

// Service appends and inspects rows of one sheet in one workbook file.
type Service struct {
	mu    sync.Mutex
	path  string
	sheet string
}

// NewService creates a workbook service for the given file and sheet.
func NewService(path, sheet string) *Service {
	return &Service{path: path, sheet: sheet}
}

// Path returns the workbook file path.
func (s *Service) Path() string {
	return s.path
}

// Sheet returns the sheet name.
func (s *Service) Sheet() string {
	return s.sheet
}

// Append writes the field map into the sheet. Every key gets a column; new
// headers are appended to the right of the existing ones. With overwrite the
// row is exactly max(2, targetRow); otherwise the first fully-empty row at or
// after the target is used, bounded by the scan window. Returns the row
// written.
func (s *Service) Append(fields map[string]any, targetRow int, overwrite bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wb, err := s.ensureWorkbook()
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = wb.Close()
	}()

	rows, err := wb.GetRows(s.sheet)
	if err != nil {
		return 0, fmt.Errorf("failed to read sheet: %w", err)
	}

	headers, err := s.ensureHeaders(wb, rows, fields)
	if err != nil {
		return 0, err
	}

	row := targetRow
	if row < 2 {
		row = 2 // row 1 is reserved for headers
	}
	if !overwrite {
		limit := len(rows) + scanWindow
		if row+scanWindow > limit {
			limit = row + scanWindow
		}
		for row <= limit && !rowIsEmpty(rows, row) {
			row++
		}
		if row > limit {
			return 0, ErrNoRoom
		}
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return 0, err
		}
		value, ok := fields[header]
		if !ok {
			value = ""
		}
		if err := wb.SetCellValue(s.sheet, cell, value); err != nil {
			return 0, fmt.Errorf("failed to set cell %s: %w", cell, err)
		}
	}

	if row <= 200 {
		s.autosizeColumns(wb, rows, headers, fields)
	}

	if err := wb.SaveAs(s.path); err != nil {
		return 0, fmt.Errorf("failed to save workbook: %w", err)
	}

	return row, nil
}

// CheckRow reports whether the given row already has any non-empty cell.
func (s *Service) CheckRow(row int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wb, err := s.ensureWorkbook()
	if err != nil {
		return false, err
	}
	defer func() {
		_ = wb.Close()
	}()

	rows, err := wb.GetRows(s.sheet)
	if err != nil {
		return false, fmt.Errorf("failed to read sheet: %w", err)
	}

	return !rowIsEmpty(rows, row), nil
}

// Peek returns the last n data rows as header-keyed maps. Blank header cells
// get synthesized "col<N>" names.
func (s *Service) Peek(n int) ([]map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wb, err := s.ensureWorkbook()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = wb.Close()
	}()

	rows, err := wb.GetRows(s.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) == 0 || n <= 0 {
		return []map[string]any{}, nil
	}

	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		if header == "" {
			headers[i] = fmt.Sprintf("col%d", i+1)
		} else {
			headers[i] = header
		}
	}

	body := rows[1:]
	if n < len(body) {
		body = body[len(body)-n:]
	}

	out := make([]map[string]any, 0, len(body))
	for _, row := range body {
		entry := make(map[string]any, len(headers))
		for i, header := range headers {
			if i < len(row) {
				entry[header] = row[i]
			} else {
				entry[header] = ""
			}
		}
		out = append(out, entry)
	}

	return out, nil
}

// ensureWorkbook opens the workbook file, creating a fresh workbook and the
// target sheet when either is missing.
func (s *Service) ensureWorkbook() (*excelize.File, error) {
	var wb *excelize.File
	if _, err := os.Stat(s.path); err == nil {
		wb, err = excelize.OpenFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("failed to open workbook: %w", err)
		}
	} else {
		wb = excelize.NewFile()
	}

	index, err := wb.GetSheetIndex(s.sheet)
	if err != nil {
		_ = wb.Close()
		return nil, err
	}
	if index < 0 {
		if _, err := wb.NewSheet(s.sheet); err != nil {
			_ = wb.Close()
			return nil, fmt.Errorf("failed to create sheet: %w", err)
		}
	}

	return wb, nil
}

// ensureHeaders makes sure every field key has a header column, appending new
// keys to the right without disturbing the existing order. New keys are added
// in sorted order so header layout is deterministic.
func (s *Service) ensureHeaders(wb *excelize.File, rows [][]string, fields map[string]any) ([]string, error) {
	var headers []string
	if len(rows) > 0 {
		headers = append(headers, rows[0]...)
	}

	known := make(map[string]bool, len(headers))
	for _, header := range headers {
		known[header] = true
	}

	missing := make([]string, 0, len(fields))
	for key := range fields {
		if !known[key] {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)

	for _, key := range missing {
		col := len(headers) + 1
		cell, err := excelize.CoordinatesToCellName(col, 1)
		if err != nil {
			return nil, err
		}
		if err := wb.SetCellValue(s.sheet, cell, key); err != nil {
			return nil, fmt.Errorf("failed to write header %q: %w", key, err)
		}
		headers = append(headers, key)
	}

	return headers, nil
}

// autosizeColumns widens columns to fit their longest value. Best-effort;
// sizing failures never fail the append.
func (s *Service) autosizeColumns(wb *excelize.File, rows [][]string, headers []string, fields map[string]any) {
	for col, header := range headers {
		maxLen := len(header)
		for _, row := range rows {
			if col < len(row) && len(row[col]) > maxLen {
				maxLen = len(row[col])
			}
		}
		if value, ok := fields[header]; ok {
			if l := len(fmt.Sprintf("%v", value)); l > maxLen {
				maxLen = l
			}
		}

		width := float64(maxLen + 2)
		if width < 10 {
			width = 10
		}
		if width > 40 {
			width = 40
		}

		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			continue
		}
		_ = wb.SetColWidth(s.sheet, name, name, width)
	}
}

// rowIsEmpty checks the 1-based row against the loaded sheet matrix. Rows
// past the used range are empty by definition.
func rowIsEmpty(rows [][]string, row int) bool {
	if row < 1 || row > len(rows) {
		return true
	}
	for _, cell := range rows[row-1] {
		if cell != "" {
			return false
		}
	}
	return true
}
