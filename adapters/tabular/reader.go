package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"strbrowser/internal"

	"github.com/xuri/excelize/v2"
)

// Supported file types
const (
	FileTypeTSV  = "tsv"
	FileTypeCSV  = "csv"
	FileTypeXLSX = "xlsx"
)

// DataReader reads tab-separated, comma-separated and Excel tables
type DataReader struct {
	filePath string
	fileType string
}

// NewDataReader picks the file type from the extension; anything that is not .csv or
// .xlsx is read as tab-separated.
func NewDataReader(filePath string) *DataReader {
	fileType := FileTypeTSV
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv":
		fileType = FileTypeCSV
	case ".xlsx":
		fileType = FileTypeXLSX
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadData reads the whole file into a RawTable
func (r *DataReader) ReadData() (*RawTable, error) {
	internal.DefaultLogger.Debug("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case FileTypeTSV:
		return r.readDelimited('\t')
	case FileTypeCSV:
		return r.readDelimited(',')
	case FileTypeXLSX:
		return r.readExcelData()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

// readExcelData reads the first sheet of a workbook
func (r *DataReader) readExcelData() (*RawTable, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	internal.DefaultLogger.Debug("[DataReader] Sheet %s read in %.2fms (%d rows)", sheets[0], float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	lines := make([]int, len(rows))
	for i := range lines {
		lines[i] = i + 1
	}
	return r.processRows(rows, lines)
}

func (r *DataReader) readDelimited(sep rune) (*RawTable, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file: %w", strings.ToUpper(r.fileType), err)
	}
	defer file.Close()

	readStart := time.Now()
	rows, lines, err := readRecords(file, sep)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s file: %w", strings.ToUpper(r.fileType), err)
	}
	internal.DefaultLogger.Debug("[DataReader] %s file read in %.2fms (%d rows)", strings.ToUpper(r.fileType), float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows, lines)
}

// readRecords reads all records of a delimited stream with the line each record starts on.
// Rows may be ragged; blank lines produce no record.
func readRecords(in io.Reader, sep rune) ([][]string, []int, error) {
	reader := csv.NewReader(in)
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	var lines []int
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return rows, lines, nil
		}
		if err != nil {
			return nil, nil, err
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, record)
		lines = append(lines, line)
	}
}

// processRows converts raw string rows into a RawTable. lines holds the source line of
// each entry in rows.
func (r *DataReader) processRows(rows [][]string, lines []int) (*RawTable, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s file must have at least a header row and one data row", strings.ToUpper(r.fileType))
	}

	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}
	// pandas writes an unnamed index column; drop a leading blank header.
	offset := 0
	if len(headers) > 0 && headers[0] == "" {
		headers = headers[1:]
		offset = 1
	}

	dataRows := make([]RawRowData, 0, len(rows)-1)
	dataLines := make([]int, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}
		rowData := make(RawRowData, len(headers))
		for j := offset; j < len(row); j++ {
			if j-offset < len(headers) {
				rowData[headers[j-offset]] = strings.TrimSpace(row[j])
			}
		}
		dataRows = append(dataRows, rowData)
		dataLines = append(dataLines, lines[i])
	}

	internal.DefaultLogger.Debug("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &RawTable{
		Headers: headers,
		Rows:    dataRows,
		Lines:   dataLines,
	}, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
