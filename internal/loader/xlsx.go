package loader

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/bioscore-cli/internal/model"
)

// XLSXOptions configures workbook parsing.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
	SkipRows   int    // number of header rows to skip (default 1)
}

// Workbook column layout: name, ticker, then the six raw scores in declared
// pillar order.
const (
	colName   = 0
	colTicker = 1
	colScores = 2
	numCols   = colScores + 6
)

// ReadScorecardsXLSX reads an analyst workbook and returns one scorecard per
// row. Rows shorter than the expected layout or with non-numeric scores fail
// with the offending row number.
func ReadScorecardsXLSX(path string, opts XLSXOptions) ([]model.Scorecard, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "loader: open workbook")
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}

	skip := opts.SkipRows
	if skip == 0 {
		skip = 1
	}

	var cards []model.Scorecard
	for i, row := range sheet.Rows {
		if i < skip {
			continue
		}

		cells := rowToStrings(row)
		if isBlankRow(cells) {
			continue
		}

		card, err := parseScorecardRow(cells)
		if err != nil {
			return nil, eris.Wrapf(err, "loader: row %d", i+1)
		}
		cards = append(cards, card)
	}

	return cards, nil
}

func parseScorecardRow(cells []string) (model.Scorecard, error) {
	if len(cells) < numCols {
		return model.Scorecard{}, eris.Errorf("expected %d columns, got %d", numCols, len(cells))
	}

	name := strings.TrimSpace(cells[colName])
	if name == "" {
		return model.Scorecard{}, eris.New("company name is empty")
	}

	card := model.Scorecard{
		Company: model.Company{
			Name:   name,
			Ticker: strings.TrimSpace(cells[colTicker]),
		},
	}

	for j, p := range model.Pillars() {
		raw := strings.TrimSpace(cells[colScores+j])
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return model.Scorecard{}, eris.Errorf("pillar %s: invalid score %q", p, raw)
		}
		if v < 0 || v > 5 {
			return model.Scorecard{}, eris.Errorf("pillar %s: score %.2f outside [0,5]", p, v)
		}
		card.Scores = setScore(card.Scores, p, model.PillarScore{RawScore: v, Confidence: 1})
	}

	return card, nil
}

func setScore(s model.PillarScores, p model.Pillar, score model.PillarScore) model.PillarScores {
	switch p {
	case model.PillarAssetQuality:
		s.AssetQuality = score
	case model.PillarMarketOutlook:
		s.MarketOutlook = score
	case model.PillarCapitalIntensity:
		s.CapitalIntensity = score
	case model.PillarStrategicFit:
		s.StrategicFit = score
	case model.PillarFinancialReadiness:
		s.FinancialReadiness = score
	case model.PillarRegulatoryRisk:
		s.RegulatoryRisk = score
	}
	return s
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("loader: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("loader: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}
	return f.Sheets[opts.SheetIndex], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
