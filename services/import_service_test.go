package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"techshop/models"
	"techshop/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var header = []any{"Product Name", "Category", "Brand", "Price", "Discount Price", "Image URL", "Specifications", "Rating", "In Stock"}

func TestMapRows_RejectsHeaderOnly(t *testing.T) {
	_, err := MapRows(nil)
	assert.ErrorIs(t, err, ErrImportFormat)

	_, err = MapRows([][]any{header})
	assert.ErrorIs(t, err, ErrImportFormat)
}

func TestMapRows_SkipsBlankRows(t *testing.T) {
	rows := [][]any{
		header,
		{"Ryzen 5", "Processor", "AMD", 15999.0, 13999.0, "https://example.com/a.jpg", "6 cores", 4.8, "Yes"},
		{nil, "", nil, "", nil},
	}

	products, err := MapRows(rows)
	require.NoError(t, err)
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, "Ryzen 5", p.Name)
	assert.Equal(t, "Processor", p.Category)
	assert.Equal(t, "AMD", p.Brand)
	assert.Equal(t, 15999.0, p.Price)
	require.NotNil(t, p.DiscountPrice)
	assert.Equal(t, 13999.0, *p.DiscountPrice)
	assert.Equal(t, "https://example.com/a.jpg", p.Image)
	assert.Equal(t, "6 cores", p.Specs)
	require.NotNil(t, p.Rating)
	assert.Equal(t, 4.8, *p.Rating)
	assert.True(t, p.InStock)
	assert.Zero(t, p.ID)
}

func TestMapRows_InStock(t *testing.T) {
	tests := []struct {
		name string
		cell any
		want bool
	}{
		{"Yes", "Yes", true},
		{"No", "No", false},
		{"lowercase yes", "yes", false},
		{"bool true", true, true},
		{"bool false", false, false},
		{"number one", 1.0, true},
		{"number zero", 0.0, false},
		{"text one", "1", false},
		{"blank", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := MapRows([][]any{{"Product Name", "In Stock"}, {"Part", tt.cell}})
			require.NoError(t, err)
			require.Len(t, products, 1)
			assert.Equal(t, tt.want, products[0].InStock)
		})
	}
}

func TestMapRows_MissingInStockColumnDefaultsFalse(t *testing.T) {
	products, err := MapRows([][]any{{"Product Name", "Price"}, {"Part", 10.0}})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.False(t, products[0].InStock)
}

func TestMapRows_Defaults(t *testing.T) {
	rows := [][]any{
		{"Price", "Rating", "Discount Price"},
		{nil, nil, nil, "extra cell"},
		{"abc", "n/a", ""},
		{"12.5"},
	}

	products, err := MapRows(rows)
	require.NoError(t, err)
	require.Len(t, products, 3)

	for i, p := range products {
		assert.Equal(t, []string{"Product 1", "Product 2", "Product 3"}[i], p.Name)
		assert.Equal(t, "Uncategorized", p.Category)
		assert.Equal(t, "", p.Brand)
		assert.Equal(t, models.PlaceholderImage, p.Image)
		assert.Equal(t, "", p.Specs)
		assert.Nil(t, p.DiscountPrice)
		require.NotNil(t, p.Rating)
		assert.Equal(t, 4.5, *p.Rating)
		assert.False(t, p.InStock)
	}
	assert.Equal(t, 0.0, products[0].Price)
	assert.Equal(t, 0.0, products[1].Price)
	assert.Equal(t, 12.5, products[2].Price)
}

func TestMapRows_NameIndexCountsKeptRows(t *testing.T) {
	rows := [][]any{
		{"Product Name", "Price"},
		{"", ""},
		{nil, 5.0},
	}

	products, err := MapRows(rows)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Product 1", products[0].Name)
}

func TestMapRows_Aliases(t *testing.T) {
	rows := [][]any{
		{"Name", "Image", "Specs", "Category"},
		{"Fan", "/fan.png", "120mm", "Cooling"},
	}

	products, err := MapRows(rows)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Fan", products[0].Name)
	assert.Equal(t, "/fan.png", products[0].Image)
	assert.Equal(t, "120mm", products[0].Specs)
	assert.Equal(t, "Cooling", products[0].Category)
}

func TestReadRows_CSV(t *testing.T) {
	data := "Product Name,Category,Price,In Stock\nRTX 4060,Graphics Card,42999,No\n,,,\nRM850x,Power Supply,12999,Yes\n"

	rows, err := ReadRows("products.CSV", strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 4)

	products, err := MapRows(rows)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, 42999.0, products[0].Price)
	assert.False(t, products[0].InStock)
	assert.Equal(t, "RM850x", products[1].Name)
	assert.True(t, products[1].InStock)
}

func TestReadRows_UnsupportedFile(t *testing.T) {
	_, err := ReadRows("products.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestTemplateRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplate(&buf))

	rows, err := ReadRows(TemplateFilename, &buf)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	got := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		got[i] = h.(string)
	}
	assert.Equal(t, TemplateHeaders, got)

	products, err := MapRows(rows)
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "AMD Ryzen 5 5600X", products[0].Name)
	assert.Equal(t, 15999.0, products[0].Price)
	require.NotNil(t, products[0].DiscountPrice)
	assert.Equal(t, 13999.0, *products[0].DiscountPrice)
	assert.Equal(t, 4.8, *products[0].Rating)
	assert.True(t, products[0].InStock)

	assert.Equal(t, "NVIDIA RTX 4060 Ti", products[1].Name)
	assert.Nil(t, products[1].DiscountPrice)
	assert.False(t, products[1].InStock)
}

func TestReadRows_WorkbookTypedCells(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Product Name", "Price", "In Stock"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"SSD", 99.5, true}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]interface{}{"HDD", 45, false}))

	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	rows, err := ReadRows("stock.xlsx", &buf)
	require.NoError(t, err)
	assert.Equal(t, 99.5, rows[1][1])
	assert.Equal(t, true, rows[1][2])

	products, err := MapRows(rows)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.True(t, products[0].InStock)
	assert.Equal(t, 99.5, products[0].Price)
	assert.False(t, products[1].InStock)
	assert.Equal(t, 45.0, products[1].Price)
}

func TestImportService_PreviewAndCommit(t *testing.T) {
	ctx := context.Background()
	catalog := newTestCatalog(t, repositories.NewMemoryStore())
	_, err := catalog.AddProduct(ctx, validInput("Existing", 10))
	require.NoError(t, err)
	svc := NewImportService(catalog)

	preview, err := svc.Preview("p.csv", strings.NewReader("Name,Price\nA,1\nB,2\n"))
	require.NoError(t, err)
	require.Len(t, preview, 2)
	assert.Equal(t, 1, catalog.Len())

	imported, err := svc.Commit(ctx, preview)
	require.NoError(t, err)
	assert.Len(t, imported, 2)
	assert.Equal(t, []string{"Existing", "A", "B"}, names(catalog.Products()))

	_, err = svc.Preview("p.csv", strings.NewReader("Name,Price\n"))
	assert.ErrorIs(t, err, ErrImportFormat)
	assert.Equal(t, 3, catalog.Len())
}
