// Package sheet reads listing workbooks and turns raw rows into
// normalized, typed records.
package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/peacachucarrots/assumable-properties/internal/columns"
	"github.com/peacachucarrots/assumable-properties/internal/models"
	"github.com/peacachucarrots/assumable-properties/internal/parse"
)

// Sheet is one worksheet's raw content: a normalized header row plus the
// data rows as strings, exactly as the cells render.
type Sheet struct {
	Name    string
	Headers []string
	Records [][]string
}

// ListSheets returns the workbook's sheet names in order.
func ListSheets(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

// Load reads one worksheet. An empty sheetName selects the first sheet.
func Load(path, sheetName string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		names := f.GetSheetList()
		if len(names) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheetName = names[0]
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return &Sheet{Name: sheetName}, nil
	}

	return &Sheet{
		Name:    sheetName,
		Headers: columns.Normalize(rows[0]),
		Records: rows[1:],
	}, nil
}

// BuildRows applies the resolved column mapping and the field parsers to
// every record. resolved maps canonical field -> actual header ("" for
// unresolved); unresolved fields come out nil on every row.
func BuildRows(s *Sheet, resolved map[string]string) []models.Row {
	index := make(map[string]int, len(s.Headers))
	for i, h := range s.Headers {
		index[h] = i
	}

	cell := func(record []string, field string) string {
		header := resolved[field]
		if header == "" {
			return ""
		}
		i, ok := index[header]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	out := make([]models.Row, 0, len(s.Records))
	for n, record := range s.Records {
		row := models.Row{Index: n}

		row.DateAdded = parse.Date(cell(record, columns.FieldDateAdded))
		row.RealtorName = parse.Text(cell(record, columns.FieldRealtorName))
		row.MLSLink = parse.Text(cell(record, columns.FieldMLSLink))
		if row.MLSLink != nil {
			row.MLSID = parse.MLSID(*row.MLSLink)
		}

		addr := parse.ParseAddress(cell(record, columns.FieldAddress))
		row.Street, row.Unit = addr.Street, addr.Unit
		row.City, row.State, row.Zip = addr.City, addr.State, addr.Zip

		row.LoanType = parse.LoanType(cell(record, columns.FieldLoanType))
		row.InterestRate = parse.NormalizeRate(cell(record, columns.FieldInterestRate))
		row.PITI = parse.Decimal(cell(record, columns.FieldPITI))
		row.AskingPrice = parse.Decimal(cell(record, columns.FieldAskingPrice))
		row.Balance = parse.Decimal(cell(record, columns.FieldLoanBalance))
		row.Equity = parse.Decimal(cell(record, columns.FieldEquity))
		row.LoanServicer = parse.Text(cell(record, columns.FieldLoanServicer))
		row.InvestorOK = parse.Bool(cell(record, columns.FieldInvestorOK))

		row.Beds = parse.Int(cell(record, columns.FieldBeds))
		row.Baths = parse.Float(cell(record, columns.FieldBaths))
		row.Sqft = parse.Int(cell(record, columns.FieldSqft))
		row.HOAAmount, row.HOAFrequency = parse.HOA(cell(record, columns.FieldHOA))
		row.MLSStatus = parse.Text(cell(record, columns.FieldMLSStatus))

		row.DoneNumbers = parse.Bool(cell(record, columns.FieldDoneNumbers))
		row.ROIPass, row.ROICategory = parse.ROI(cell(record, columns.FieldROI))
		row.SentToClients = parse.Bool(cell(record, columns.FieldSentClients))
		row.AnalysisLink = parse.Text(cell(record, columns.FieldAnalysisLink))

		row.RealtorNote = parse.Text(cell(record, columns.FieldRealtorNote))
		row.ReviewerNote = parse.Text(cell(record, columns.FieldReviewerNote))

		out = append(out, row)
	}
	return out
}
