package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func writeTestCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeTestXLSX(t *testing.T, rows [][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	require.NoError(t, err)
	for _, rowData := range rows {
		row := sheet.AddRow()
		for _, cellData := range rowData {
			row.AddCell().SetString(cellData)
		}
	}
	path := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestReadCatalog_CSV(t *testing.T) {
	path := writeTestCSV(t, "sic_codes.csv", `SIC Code,Description
56210,Event catering activities
73110,"Research and experimental development on biotechnology"
`)

	codes, err := ReadCatalog(path)
	require.NoError(t, err)
	require.Len(t, codes, 2)
	assert.Equal(t, "56210", codes[0].Code)
	assert.Equal(t, "Event catering activities", codes[0].Description)
	assert.Equal(t, "73110", codes[1].Code)
}

func TestReadCatalog_XLSX(t *testing.T) {
	path := writeTestXLSX(t, [][]string{
		{"Code", "Description"},
		{"64191", "Banks"},
		{"", ""},
		{"47110", "Retail sale in non-specialised stores"},
	})

	codes, err := ReadCatalog(path)
	require.NoError(t, err)
	require.Len(t, codes, 2)
	assert.Equal(t, "64191", codes[0].Code)
	assert.Equal(t, "47110", codes[1].Code)
}

func TestReadCatalog_MissingColumn(t *testing.T) {
	path := writeTestCSV(t, "bad.csv", "Code,Notes\n56210,whatever\n")

	_, err := ReadCatalog(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchema))
}

func TestReadCompanies_CSV(t *testing.T) {
	path := writeTestCSV(t, "companies.csv", `Registration number,Company Name,Business Description,UK SIC 2007 Code
C-1,Acme Catering Ltd,Event catering for weddings,56210
C-2,Beta Biotech plc,Biotechnology research and development,73110
,No ID Row,should be dropped,
C-3,Gamma Stores,,47110
`)

	companies, err := ReadCompanies(path)
	require.NoError(t, err)
	require.Len(t, companies, 3)
	assert.Equal(t, "C-1", companies[0].ID)
	assert.Equal(t, "Acme Catering Ltd", companies[0].Name)
	assert.Equal(t, "56210", companies[0].CurrentCode)
	assert.Equal(t, "Biotechnology research and development", companies[1].BusinessDescription)
	assert.Empty(t, companies[2].BusinessDescription)
}

func TestReadCompanies_AlternateHeaders(t *testing.T) {
	path := writeTestCSV(t, "export.csv", `id,name,activities,sic_code
C-9,Delta Foods,wholesale of food products,46390
`)

	companies, err := ReadCompanies(path)
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "C-9", companies[0].ID)
	assert.Equal(t, "wholesale of food products", companies[0].BusinessDescription)
	assert.Equal(t, "46390", companies[0].CurrentCode)
}

func TestReadCompanies_XLSX(t *testing.T) {
	path := writeTestXLSX(t, [][]string{
		{"Registration number", "Company Name", "Business Description", "UK SIC 2007 Code"},
		{"C-1", "Acme Catering Ltd", "Event catering", "56210"},
	})

	companies, err := ReadCompanies(path)
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "Acme Catering Ltd", companies[0].Name)
}

func TestReadCompanies_MissingIDColumn(t *testing.T) {
	path := writeTestCSV(t, "bad.csv", "Company Name,Business Description\nAcme,catering\n")

	_, err := ReadCompanies(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchema))
}

func TestReadTable_UnsupportedExtension(t *testing.T) {
	path := writeTestCSV(t, "data.txt", "a,b\n1,2\n")

	_, err := ReadCatalog(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestReadTable_EmptyCSV(t *testing.T) {
	path := writeTestCSV(t, "empty.csv", "")

	_, err := ReadCatalog(path)
	require.Error(t, err)
}

func TestReadTable_VariableWidthRows(t *testing.T) {
	path := writeTestCSV(t, "ragged.csv", `Registration number,Company Name,Business Description,UK SIC 2007 Code
C-1,Acme
C-2,Beta Biotech,Biotechnology research,73110
`)

	companies, err := ReadCompanies(path)
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Empty(t, companies[0].BusinessDescription)
	assert.Equal(t, "73110", companies[1].CurrentCode)
}
