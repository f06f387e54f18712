package services

import (
	"bytes"
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"

	"github.com/fieldtrak/fieldtrak/pkg/configuration"
	"github.com/fieldtrak/fieldtrak/pkg/serrors"
)

// TableFile is a fully parsed upload: one header row plus data records, both
// as raw strings. Parsing does not interpret values; mapping and validation
// happen downstream.
type TableFile struct {
	Headers []string
	Records []TableRecord
}

// TableRecord is one data row with its physical position in the file.
// Number is 1-based with the header excluded and keeps counting across
// blank rows, so reported row numbers always match the spreadsheet.
type TableRecord struct {
	Number int
	Cells  []string
}

var (
	ErrUnsupportedFormat = serrors.NewError("ERR_UNSUPPORTED_FORMAT", "unsupported file format", "Imports.Errors.UnsupportedFormat")
	ErrFileTooLarge      = serrors.NewError("ERR_FILE_TOO_LARGE", "file exceeds the size limit", "Imports.Errors.FileTooLarge")
	ErrTooManyRows       = serrors.NewError("ERR_TOO_MANY_ROWS", "file exceeds the row limit", "Imports.Errors.TooManyRows")
	ErrEmptyFile         = serrors.NewError("ERR_EMPTY_FILE", "file contains no header row", "Imports.Errors.EmptyFile")
)

type ParseService struct {
	limits configuration.ImportOptions
}

func NewParseService(limits configuration.ImportOptions) *ParseService {
	return &ParseService{limits: limits}
}

// Parse reads a takeoff upload into a TableFile. The format is chosen by
// file extension; size and row limits are enforced before any row reaches
// the mapper. size is the declared upload size and is checked first so an
// oversized file is rejected without reading its body.
func (s *ParseService) Parse(filename string, size int64, r io.Reader) (*TableFile, error) {
	if size > s.limits.MaxFileSize {
		return nil, errors.Wrapf(ErrFileTooLarge, "%d bytes (limit %d)", size, s.limits.MaxFileSize)
	}

	// Cap the read regardless of the declared size.
	limited := io.LimitReader(r, s.limits.MaxFileSize+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read upload")
	}
	if int64(len(data)) > s.limits.MaxFileSize {
		return nil, errors.Wrapf(ErrFileTooLarge, "limit %d bytes", s.limits.MaxFileSize)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return s.parseCSV(data)
	case ".xlsx":
		return s.parseXLSX(data)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", filepath.Ext(filename))
	}
}

func (s *ParseService) parseCSV(data []byte) (*TableFile, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, errors.Wrap(err, "malformed csv header")
	}

	var records []TableRecord
	number := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "malformed csv at data row %d", number+1)
		}
		number++
		if emptyRecord(record) {
			continue
		}
		records = append(records, TableRecord{Number: number, Cells: record})
		if len(records) > s.limits.MaxRows {
			return nil, errors.Wrapf(ErrTooManyRows, "limit %d data rows", s.limits.MaxRows)
		}
	}

	return &TableFile{Headers: trimAll(headers), Records: records}, nil
}

func (s *ParseService) parseXLSX(data []byte) (*TableFile, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "malformed xlsx file")
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}
	// Only the first sheet is imported.
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %q", sheets[0])
	}
	if len(rows) == 0 || emptyRecord(rows[0]) {
		return nil, ErrEmptyFile
	}

	var records []TableRecord
	for i, row := range rows[1:] {
		if emptyRecord(row) {
			continue
		}
		records = append(records, TableRecord{Number: i + 1, Cells: row})
		if len(records) > s.limits.MaxRows {
			return nil, errors.Wrapf(ErrTooManyRows, "limit %d data rows", s.limits.MaxRows)
		}
	}

	return &TableFile{Headers: trimAll(rows[0]), Records: records}, nil
}

func emptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func trimAll(cells []string) []string {
	out := make([]string, len(cells))
	for i, cell := range cells {
		out[i] = strings.TrimSpace(cell)
	}
	return out
}
