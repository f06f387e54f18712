package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/fieldtrak/fieldtrak/pkg/configuration"
)

func testLimits() configuration.ImportOptions {
	return configuration.ImportOptions{
		MaxFileSize:     1 << 20,
		MaxRows:         100,
		MaxPayloadBytes: 1 << 20,
		BatchSize:       50,
		YieldEvery:      10,
		SampleSize:      5,
	}
}

func TestParseService_CSV(t *testing.T) {
	svc := NewParseService(testLimits())
	input := "drawing,type,quantity,commodity_code\nP-1,Valve,1,VLV-1\n\nP-2,Valve,2,VLV-2\n"

	file, err := svc.Parse("takeoff.csv", int64(len(input)), strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"drawing", "type", "quantity", "commodity_code"}, file.Headers)
	require.Len(t, file.Records, 2)
	assert.Equal(t, []string{"P-1", "Valve", "1", "VLV-1"}, file.Records[0].Cells)
	assert.Equal(t, []string{"P-2", "Valve", "2", "VLV-2"}, file.Records[1].Cells)

	// Blank rows are dropped from the records but still count toward the
	// physical row number, so reported issues match the spreadsheet.
	assert.Equal(t, 1, file.Records[0].Number)
	assert.Equal(t, 3, file.Records[1].Number)
}

func TestParseService_CSVRaggedRows(t *testing.T) {
	svc := NewParseService(testLimits())
	input := "drawing,type,quantity,commodity_code\nP-1,Valve\n"

	file, err := svc.Parse("takeoff.csv", int64(len(input)), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, file.Records, 1)
	assert.Equal(t, []string{"P-1", "Valve"}, file.Records[0].Cells)
}

func TestParseService_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]string{"drawing", "type", "quantity", "commodity_code"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]string{"P-1", "Valve", "1", "VLV-1"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]string{"P-2", "Support", "2", "SUP-1"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	svc := NewParseService(testLimits())
	file, err := svc.Parse("takeoff.xlsx", int64(buf.Len()), bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	assert.Equal(t, []string{"drawing", "type", "quantity", "commodity_code"}, file.Headers)
	require.Len(t, file.Records, 2)
	assert.Equal(t, []string{"P-1", "Valve", "1", "VLV-1"}, file.Records[0].Cells)
	assert.Equal(t, []string{"P-2", "Support", "2", "SUP-1"}, file.Records[1].Cells)
	assert.Equal(t, 1, file.Records[0].Number)
	assert.Equal(t, 3, file.Records[1].Number)
}

func TestParseService_UnsupportedFormat(t *testing.T) {
	svc := NewParseService(testLimits())
	_, err := svc.Parse("takeoff.pdf", 4, strings.NewReader("data"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestParseService_DeclaredSizeTooLarge(t *testing.T) {
	limits := testLimits()
	limits.MaxFileSize = 10
	svc := NewParseService(limits)

	_, err := svc.Parse("takeoff.csv", 11, strings.NewReader("x"))
	assert.True(t, errors.Is(err, ErrFileTooLarge))
}

func TestParseService_ActualSizeTooLarge(t *testing.T) {
	limits := testLimits()
	limits.MaxFileSize = 10
	svc := NewParseService(limits)

	// Lies about its size; the reader cap still catches it.
	_, err := svc.Parse("takeoff.csv", 5, strings.NewReader(strings.Repeat("a", 64)))
	assert.True(t, errors.Is(err, ErrFileTooLarge))
}

func TestParseService_TooManyRows(t *testing.T) {
	limits := testLimits()
	limits.MaxRows = 2
	svc := NewParseService(limits)

	input := "drawing,type,quantity,commodity_code\nP-1,V,1,A\nP-2,V,1,B\nP-3,V,1,C\n"
	_, err := svc.Parse("takeoff.csv", int64(len(input)), strings.NewReader(input))
	assert.True(t, errors.Is(err, ErrTooManyRows))
}

func TestParseService_EmptyFile(t *testing.T) {
	svc := NewParseService(testLimits())
	_, err := svc.Parse("takeoff.csv", 0, strings.NewReader(""))
	assert.True(t, errors.Is(err, ErrEmptyFile))
}
