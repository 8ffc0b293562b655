package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"abplayground/internal/errors"

	"github.com/tidwall/gjson"
	"github.com/xuri/excelize/v2"
)

// FileType identifies a supported input format
type FileType string

const (
	FileTypeXLSX FileType = "xlsx"
	FileTypeCSV  FileType = "csv"
	FileTypeJSON FileType = "json"
)

// Options controls how a file is read
type Options struct {
	Sheet        string // xlsx only; empty selects the first sheet
	JSONDataPath string // gjson path to the experiment array; empty reads the document root
}

// Reader loads experiment rows from xlsx, csv or json files
type Reader struct {
	filePath string
	fileType FileType
	opts     Options
}

// NewReader creates a reader, choosing the format from the file extension
func NewReader(filePath string, opts Options) (*Reader, error) {
	fileType, err := DetectFileType(filePath)
	if err != nil {
		return nil, err
	}
	return &Reader{filePath: filePath, fileType: fileType, opts: opts}, nil
}

// DetectFileType maps a file extension to a FileType
func DetectFileType(filePath string) (FileType, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".xlsx":
		return FileTypeXLSX, nil
	case ".csv":
		return FileTypeCSV, nil
	case ".json":
		return FileTypeJSON, nil
	}
	return "", errors.New(errors.CodeValidationError, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filePath)))
}

// FileType returns the detected format
func (r *Reader) FileType() FileType { return r.fileType }

// Read loads all rows from the file
func (r *Reader) Read() ([]Row, error) {
	log.Printf("[DatasetReader] Reading %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.NotFound(fmt.Sprintf("%s file %s", strings.ToUpper(string(r.fileType)), r.filePath))
	}

	start := time.Now()
	var (
		rows []Row
		err  error
	)
	switch r.fileType {
	case FileTypeCSV:
		rows, err = r.readCSV()
	case FileTypeXLSX:
		rows, err = r.readXLSX()
	case FileTypeJSON:
		rows, err = r.readJSON()
	}
	if err != nil {
		return nil, err
	}

	log.Printf("[DatasetReader] %d experiments read in %.2fms", len(rows), float64(time.Since(start).Nanoseconds())/1e6)
	return rows, nil
}

func (r *Reader) readCSV() ([]Row, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open CSV file")
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV parses CSV content with a header row
func ReadCSV(src io.Reader) ([]Row, error) {
	reader := csv.NewReader(src)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV file")
	}
	return parseTable(records)
}

func (r *Reader) readXLSX() ([]Row, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open Excel file")
	}
	defer f.Close()

	sheet := r.opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New(errors.CodeValidationError, "Excel file has no sheets")
		}
		sheet = sheets[0]
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %s", sheet)
	}
	return parseTable(records)
}

func (r *Reader) readJSON() ([]Row, error) {
	body, err := os.ReadFile(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read JSON file")
	}
	return ParseJSON(body, r.opts.JSONDataPath)
}

// ParseJSON extracts experiment objects from body at dataPath. The path may
// select an array of objects or a single object.
func ParseJSON(body []byte, dataPath string) ([]Row, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New(errors.CodeValidationError, "invalid JSON document")
	}

	data := gjson.ParseBytes(body)
	if dataPath != "" {
		data = gjson.GetBytes(body, dataPath)
		if !data.Exists() {
			// a bare array or object at the root is accepted too
			root := gjson.ParseBytes(body)
			if !root.IsArray() && !root.IsObject() {
				return nil, errors.New(errors.CodeValidationError, fmt.Sprintf("data path '%s' not found in JSON document", dataPath))
			}
			data = root
		}
	}

	var objects []gjson.Result
	switch {
	case data.IsArray():
		objects = data.Array()
	case data.IsObject():
		objects = []gjson.Result{data}
	default:
		return nil, errors.New(errors.CodeValidationError, fmt.Sprintf("data path '%s' is not an array or object", dataPath))
	}

	rows := make([]Row, 0, len(objects))
	for i, obj := range objects {
		if !obj.IsObject() {
			return nil, errors.New(errors.CodeValidationError, fmt.Sprintf("experiment %d is not an object", i+1))
		}
		fields := make(map[string]string)
		obj.ForEach(func(key, value gjson.Result) bool {
			fields[normalizeHeader(key.String())] = value.String()
			return true
		})
		row, err := parseRecord(i+1, fields)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
