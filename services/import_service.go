package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"techshop/models"

	"github.com/xuri/excelize/v2"
)

var TemplateHeaders = []string{
	"Product Name", "Category", "Brand", "Price", "Discount Price",
	"Image URL", "Specifications", "Rating", "In Stock",
}

var templateRows = [][]interface{}{
	{"AMD Ryzen 5 5600X", "Processor", "AMD", 15999, 13999, "https://example.com/image.jpg", "6 Cores, 12 Threads, 3.7GHz Base Clock", 4.8, "Yes"},
	{"NVIDIA RTX 4060 Ti", "Graphics Card", "NVIDIA", 42999, "", "https://example.com/image2.jpg", "8GB GDDR6, 2535MHz Boost Clock", 4.6, "No"},
}

const (
	templateSheet    = "Products"
	defaultCategory  = "Uncategorized"
	defaultRating    = 4.5
	TemplateFilename = "product_template.xlsx"
)

var ErrUnsupportedFile = errors.New("unsupported file type, upload an .xlsx or .csv file")

// ImportService turns uploaded spreadsheets into preview product lists and commits them.
type ImportService struct {
	catalog *CatalogService
}

func NewImportService(catalog *CatalogService) *ImportService {
	return &ImportService{catalog: catalog}
}

// Preview reads the first sheet of the file and maps it to products. Nothing is stored.
func (s *ImportService) Preview(filename string, r io.Reader) ([]models.Product, error) {
	rows, err := ReadRows(filename, r)
	if err != nil {
		return nil, err
	}
	return MapRows(rows)
}

// Commit appends a confirmed preview list to the catalog.
func (s *ImportService) Commit(ctx context.Context, products []models.Product) ([]models.Product, error) {
	return s.catalog.ImportProducts(ctx, products)
}

// ReadRows loads the first sheet of an .xlsx workbook or a .csv file as a grid of cells.
// Workbook cells come back as float64, bool, string or nil; csv cells are always strings.
func ReadRows(filename string, r io.Reader) ([][]any, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return readWorkbook(r)
	case ".csv":
		return readCSV(r)
	default:
		return nil, ErrUnsupportedFile
	}
}

func readWorkbook(r io.Reader) ([][]any, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrImportFormat
	}
	sheet := sheets[0]

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	rows := make([][]any, len(raw))
	for r, cols := range raw {
		row := make([]any, len(cols))
		for c, value := range cols {
			if value == "" {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheet, axis)
			if err != nil {
				return nil, err
			}
			row[c] = typedCell(cellType, value)
		}
		rows[r] = row
	}
	return rows, nil
}

func typedCell(cellType excelize.CellType, value string) any {
	switch cellType {
	case excelize.CellTypeBool:
		return value == "1" || strings.EqualFold(value, "true")
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			return n
		}
	}
	return value
}

func readCSV(r io.Reader) ([][]any, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	rows := make([][]any, len(records))
	for i, record := range records {
		row := make([]any, len(record))
		for j, v := range record {
			row[j] = v
		}
		rows[i] = row
	}
	return rows, nil
}

// MapRows maps a header row plus data rows onto products. Rows whose cells are all blank are
// skipped, and recognised column names are mapped with defaults for anything missing.
func MapRows(rows [][]any) ([]models.Product, error) {
	if len(rows) < 2 {
		return nil, ErrImportFormat
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = cellText(h)
	}

	products := []models.Product{}
	index := 0
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}

		fields := make(map[string]any, len(headers))
		for i, header := range headers {
			if i < len(row) {
				fields[header] = row[i]
			} else {
				fields[header] = nil
			}
		}

		products = append(products, mapProduct(fields, index))
		index++
	}
	return products, nil
}

func isBlankRow(row []any) bool {
	for _, cell := range row {
		if !isEmptyCell(cell) {
			return false
		}
	}
	return true
}

func isEmptyCell(cell any) bool {
	if cell == nil {
		return true
	}
	s, ok := cell.(string)
	return ok && s == ""
}

func mapProduct(fields map[string]any, index int) models.Product {
	p := models.Product{
		Name:     firstText(fields, "Product Name", "Name"),
		Category: firstText(fields, "Category"),
		Brand:    firstText(fields, "Brand"),
		Image:    firstText(fields, "Image URL", "Image"),
		Specs:    firstText(fields, "Specifications", "Specs"),
		InStock:  isInStock(fields["In Stock"]),
	}
	if p.Name == "" {
		p.Name = fmt.Sprintf("Product %d", index+1)
	}
	if p.Category == "" {
		p.Category = defaultCategory
	}
	if p.Image == "" {
		p.Image = models.PlaceholderImage
	}

	if price, ok := cellNumber(fields["Price"]); ok {
		p.Price = price
	}
	if discount, ok := cellNumber(fields["Discount Price"]); ok && discount != 0 {
		p.DiscountPrice = models.Float64(discount)
	}
	if rating, ok := cellNumber(fields["Rating"]); ok && rating != 0 {
		p.Rating = models.Float64(rating)
	} else {
		p.Rating = models.Float64(defaultRating)
	}
	return p
}

func firstText(fields map[string]any, names ...string) string {
	for _, name := range names {
		if v := cellText(fields[name]); v != "" {
			return v
		}
	}
	return ""
}

func cellText(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		if v {
			return "true"
		}
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// cellNumber coerces a cell to a finite number. Blank and non-numeric cells report ok=false.
func cellNumber(cell any) (float64, bool) {
	var n float64
	switch v := cell.(type) {
	case float64:
		n = v
	case int:
		n = float64(v)
	case bool:
		if v {
			n = 1
		}
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func isInStock(cell any) bool {
	switch v := cell.(type) {
	case string:
		return v == "Yes"
	case bool:
		return v
	case float64:
		return v == 1
	case int:
		return v == 1
	}
	return false
}

// WriteTemplate writes the downloadable import template workbook.
func WriteTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", templateSheet); err != nil {
		return err
	}

	header := make([]interface{}, len(TemplateHeaders))
	for i, h := range TemplateHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(templateSheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range templateRows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(templateSheet, cell, &values); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}
