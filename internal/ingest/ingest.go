package ingest

import (
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/model"
)

// ReadCatalog loads a code table from a CSV or XLSX file. Rows whose code and
// description are both blank are skipped; validation of what remains (blank
// codes, duplicates) is the catalog's job, not the reader's.
func ReadCatalog(path string) ([]model.ClassificationCode, error) {
	header, rows, err := readTable(path)
	if err != nil {
		return nil, err
	}

	codeIdx := columnIndex(header, "sic code", "code", "sic_code")
	descIdx := columnIndex(header, "description", "sic description", "sic_description")
	if codeIdx < 0 {
		return nil, eris.Wrap(ErrSchema, "catalog: code column")
	}
	if descIdx < 0 {
		return nil, eris.Wrap(ErrSchema, "catalog: description column")
	}

	codes := make([]model.ClassificationCode, 0, len(rows))
	for _, row := range rows {
		code := cell(row, codeIdx)
		desc := cell(row, descIdx)
		if code == "" && desc == "" {
			continue
		}
		codes = append(codes, model.ClassificationCode{Code: code, Description: desc})
	}

	zap.L().Debug("ingest: catalog read",
		zap.String("path", path),
		zap.Int("rows", len(codes)),
	)
	return codes, nil
}

// ReadCompanies loads company rows from a CSV or XLSX export. Only the id
// column is required in the header; missing optional columns yield empty
// fields, and rows without an id are dropped.
func ReadCompanies(path string) ([]model.CompanyRecord, error) {
	header, rows, err := readTable(path)
	if err != nil {
		return nil, err
	}

	idIdx := columnIndex(header, "registration number", "company number", "company_id", "id")
	nameIdx := columnIndex(header, "company name", "name")
	descIdx := columnIndex(header, "business description", "description", "activities")
	codeIdx := columnIndex(header, "uk sic 2007 code", "sic code", "current code", "sic_code")
	if idIdx < 0 {
		return nil, eris.Wrap(ErrSchema, "companies: id column")
	}

	var dropped int
	companies := make([]model.CompanyRecord, 0, len(rows))
	for _, row := range rows {
		id := cell(row, idIdx)
		if id == "" {
			dropped++
			continue
		}
		companies = append(companies, model.CompanyRecord{
			ID:                  id,
			Name:                cell(row, nameIdx),
			BusinessDescription: cell(row, descIdx),
			CurrentCode:         strings.TrimSpace(cell(row, codeIdx)),
		})
	}

	zap.L().Info("ingest: companies read",
		zap.String("path", path),
		zap.Int("rows", len(companies)),
		zap.Int("dropped", dropped),
	)
	return companies, nil
}
