package ingest

import (
	"errors"
	"financial_analysis/pkg/models"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// =============================================================================
// HTML TABLE IMPORT - statements exported from spreadsheets or accounting tools
// =============================================================================

// ErrNoTable is returned when the document holds no usable table.
var ErrNoTable = errors.New("no statement table found")

type fieldSetter func(st *models.FinancialStatement, v float64)

// labelAliases maps normalized row labels (English and Arabic) to fields.
var labelAliases = map[string]fieldSetter{}

func alias(set fieldSetter, labels ...string) {
	for _, l := range labels {
		labelAliases[normalizeLabel(l)] = set
	}
}

func init() {
	// Current assets
	alias(func(s *models.FinancialStatement, v float64) { s.BalanceSheet.CurrentAssets.Cash = v },
		"cash", "cash and cash equivalents", "cash & equivalents", "النقد", "النقد وما في حكمه")
	alias(func(s *models.FinancialStatement, v float64) { s.BalanceSheet.CurrentAssets.ShortTermInvestments = v },
		"short-term investments", "short term investments", "استثمارات قصيرة الأجل")
	alias(func(s *models.FinancialStatement, v float64) { s.BalanceSheet.CurrentAssets.AccountsReceivable = v },
		"accounts receivable", "receivables", "trade receivables", "الذمم المدينة")
	alias(func(s *models.FinancialStatement, v float64) { s.BalanceSheet.CurrentAssets.Inventory = v },
		"inventory", "inventories", "المخزون")
	alias(func(s *models.FinancialStatement, v float64) { s.BalanceSheet.CurrentAssets.PrepaidExpenses = v },
		"prepaid expenses", "prepayments", "مصروفات مدفوعة مقدما")
	alias(func(s *models.FinancialStatement, v float64) { s.BalanceSheet.CurrentAssets.OtherCurrentAssets = v },
		"other current assets", "أصول متداولة أخرى")
	alias(func(s *models.FinancialStatement, v float64) { s.BalanceSheet.CurrentAssets.TotalCurrentAssets = v },
		"total current assets", "إجمالي الأصول المتداولة")

	// Non-current assets
	alias(func(s *models.FinancialStatement, v float64) { s.BalanceSheet.NonCurrentAssets.PropertyPlantEquipment = v },
		"property, plant and equipment", "property plant and equipment", "ppe", "ممتلكات وآلات ومعدات")
	alias(func(s *models.FinancialStatement, v float64) { s.BalanceSheet.NonCurrentAssets.IntangibleAssets = v },
		"intangible assets", "intangibles", "أصول غير ملموسة")
	alias(func(s *models.FinancialStatement, v float64) { s.BalanceSheet.NonCurrentAssets.LongTermInvestments = v },
		"long-term investments", "long term investments", "استثمارات طويلة الأجل")
	alias(func(s *models.FinancialStatement, v float64) { s.BalanceSheet.NonCurrentAssets.OtherNonCurrentAssets = v },
		"other non-current assets", "other noncurrent assets", "أصول غير متداولة أخرى")
	alias(func(s *models.FinancialStatement, v float64) { s.BalanceSheet.NonCurrentAssets.TotalNonCurrentAssets = v },
		"total non-current assets", "total noncurrent assets", "إجمالي الأصول غير المتداولة")
	alias(func(s *models.FinancialStatement, v float64) { s.BalanceSheet.TotalAssets = v },
		"total assets", "إجمالي الأصول")

	// Liabilities
	alias(func(s *models.FinancialStatement, v float64) { s.BalanceSheet.CurrentLiabilities.AccountsPayable = v },
		"accounts payable", "trade payables", "الذمم الدائنة")
	alias(func(s *models.FinancialStatement, v float64) { s.BalanceSheet.CurrentLiabilities.ShortTermDebt = v },
		"short-term debt", "short term debt", "short-term borrowings", "قروض قصيرة الأجل")
	alias(func(s *models.FinancialStatement, v float64) { s.BalanceSheet.CurrentLiabilities.AccruedLiabilities = v },
		"accrued liabilities", "accrued expenses", "مصروفات مستحقة")
	alias(func(s *models.FinancialStatement, v float64) { s.BalanceSheet.CurrentLiabilities.OtherCurrentLiabilities = v },
		"other current liabilities", "خصوم متداولة أخرى")
	alias(func(s *models.FinancialStatement, v float64) { s.BalanceSheet.CurrentLiabilities.TotalCurrentLiabilities = v },
		"total current liabilities", "إجمالي الخصوم المتداولة")
	alias(func(s *models.FinancialStatement, v float64) { s.BalanceSheet.NonCurrentLiabilities.LongTermDebt = v },
		"long-term debt", "long term debt", "long-term borrowings", "قروض طويلة الأجل")
	alias(func(s *models.FinancialStatement, v float64) { s.BalanceSheet.NonCurrentLiabilities.DeferredTaxLiabilities = v },
		"deferred tax liabilities", "deferred taxes", "التزامات ضريبية مؤجلة")
	alias(func(s *models.FinancialStatement, v float64) {
		s.BalanceSheet.NonCurrentLiabilities.OtherNonCurrentLiabilities = v
	}, "other non-current liabilities", "other noncurrent liabilities", "خصوم غير متداولة أخرى")
	alias(func(s *models.FinancialStatement, v float64) {
		s.BalanceSheet.NonCurrentLiabilities.TotalNonCurrentLiabilities = v
	}, "total non-current liabilities", "total noncurrent liabilities", "إجمالي الخصوم غير المتداولة")
	alias(func(s *models.FinancialStatement, v float64) { s.BalanceSheet.TotalLiabilities = v },
		"total liabilities", "إجمالي الخصوم", "إجمالي المطلوبات")

	// Equity
	alias(func(s *models.FinancialStatement, v float64) { s.BalanceSheet.ShareholdersEquity.ShareCapital = v },
		"share capital", "common stock", "رأس المال")
	alias(func(s *models.FinancialStatement, v float64) { s.BalanceSheet.ShareholdersEquity.RetainedEarnings = v },
		"retained earnings", "الأرباح المبقاة")
	alias(func(s *models.FinancialStatement, v float64) { s.BalanceSheet.ShareholdersEquity.OtherEquity = v },
		"other equity", "other reserves", "احتياطيات أخرى")
	alias(func(s *models.FinancialStatement, v float64) { s.BalanceSheet.ShareholdersEquity.TotalEquity = v },
		"total equity", "total shareholders' equity", "total shareholders equity", "إجمالي حقوق الملكية")

	// Income statement
	alias(func(s *models.FinancialStatement, v float64) { s.IncomeStatement.Revenue = v },
		"revenue", "revenues", "sales", "net sales", "الإيرادات", "المبيعات")
	alias(func(s *models.FinancialStatement, v float64) { s.IncomeStatement.CostOfGoodsSold = v },
		"cost of goods sold", "cost of sales", "cost of revenue", "تكلفة المبيعات", "تكلفة الإيرادات")
	alias(func(s *models.FinancialStatement, v float64) { s.IncomeStatement.GrossProfit = v },
		"gross profit", "مجمل الربح")
	alias(func(s *models.FinancialStatement, v float64) { s.IncomeStatement.OperatingExpenses.Selling = v },
		"selling expenses", "selling and marketing", "مصروفات بيع وتسويق")
	alias(func(s *models.FinancialStatement, v float64) { s.IncomeStatement.OperatingExpenses.Administrative = v },
		"administrative expenses", "general and administrative", "مصروفات إدارية")
	alias(func(s *models.FinancialStatement, v float64) { s.IncomeStatement.OperatingExpenses.ResearchDevelopment = v },
		"research and development", "r&d", "البحث والتطوير")
	alias(func(s *models.FinancialStatement, v float64) { s.IncomeStatement.OperatingExpenses.Other = v },
		"other operating expenses", "مصروفات تشغيلية أخرى")
	alias(func(s *models.FinancialStatement, v float64) { s.IncomeStatement.OperatingExpenses.Total = v },
		"total operating expenses", "إجمالي المصروفات التشغيلية")
	alias(func(s *models.FinancialStatement, v float64) { s.IncomeStatement.OperatingIncome = v },
		"operating income", "operating profit", "الربح التشغيلي", "الدخل التشغيلي")
	alias(func(s *models.FinancialStatement, v float64) { s.IncomeStatement.NonOperatingIncome = v },
		"non-operating income", "other income", "إيرادات غير تشغيلية")
	alias(func(s *models.FinancialStatement, v float64) { s.IncomeStatement.InterestExpense = v },
		"interest expense", "finance costs", "مصروفات الفوائد", "تكاليف التمويل")
	alias(func(s *models.FinancialStatement, v float64) { s.IncomeStatement.EarningsBeforeTax = v },
		"earnings before tax", "income before tax", "profit before zakat and tax", "الربح قبل الزكاة والضريبة")
	alias(func(s *models.FinancialStatement, v float64) { s.IncomeStatement.TaxExpense = v },
		"tax expense", "income tax", "zakat and income tax", "الزكاة والضريبة")
	alias(func(s *models.FinancialStatement, v float64) { s.IncomeStatement.NetIncome = v },
		"net income", "net profit", "صافي الربح", "صافي الدخل")
	alias(func(s *models.FinancialStatement, v float64) { s.IncomeStatement.EBITDA = v },
		"ebitda")

	// Cash flow
	alias(func(s *models.FinancialStatement, v float64) { s.CashFlowStatement.OperatingActivities.Depreciation = v },
		"depreciation", "depreciation and amortization", "الاستهلاك والإطفاء")
	alias(func(s *models.FinancialStatement, v float64) {
		s.CashFlowStatement.OperatingActivities.NetCashFromOperating = v
	}, "net cash from operating activities", "cash from operations", "صافي النقد من الأنشطة التشغيلية")
	alias(func(s *models.FinancialStatement, v float64) {
		s.CashFlowStatement.InvestingActivities.CapitalExpenditures = v
	}, "capital expenditures", "capex", "purchase of property, plant and equipment", "النفقات الرأسمالية")
	alias(func(s *models.FinancialStatement, v float64) {
		s.CashFlowStatement.InvestingActivities.NetCashFromInvesting = v
	}, "net cash from investing activities", "cash from investing", "صافي النقد من الأنشطة الاستثمارية")
	alias(func(s *models.FinancialStatement, v float64) { s.CashFlowStatement.FinancingActivities.DividendsPaid = v },
		"dividends paid", "توزيعات أرباح مدفوعة")
	alias(func(s *models.FinancialStatement, v float64) {
		s.CashFlowStatement.FinancingActivities.NetCashFromFinancing = v
	}, "net cash from financing activities", "cash from financing", "صافي النقد من الأنشطة التمويلية")
	alias(func(s *models.FinancialStatement, v float64) { s.CashFlowStatement.NetCashFlow = v },
		"net cash flow", "net change in cash", "صافي التغير في النقد")
	alias(func(s *models.FinancialStatement, v float64) { s.CashFlowStatement.BeginningCash = v },
		"beginning cash", "cash at beginning of year", "النقد في بداية السنة")
	alias(func(s *models.FinancialStatement, v float64) { s.CashFlowStatement.EndingCash = v },
		"ending cash", "cash at end of year", "النقد في نهاية السنة")
}

// ParseStatementTable reads label | value rows from the tables in an HTML
// document into a statement for year. When a header row names years, the
// matching column is used; otherwise the last numeric cell of each row.
// Unrecognized labels are skipped.
func ParseStatementTable(html string, year int) (models.FinancialStatement, error) {
	st := models.FinancialStatement{Year: year}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return st, fmt.Errorf("parse html: %w", err)
	}

	tables := doc.Find("table")
	if tables.Length() == 0 {
		return st, ErrNoTable
	}

	matched, skipped := 0, 0
	tables.Each(func(_ int, table *goquery.Selection) {
		col := lastNumeric
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td, th")
			if cells.Length() < 2 {
				return
			}

			texts := make([]string, 0, cells.Length())
			cells.Each(func(_ int, c *goquery.Selection) {
				texts = append(texts, strings.TrimSpace(c.Text()))
			})

			if c, ok := yearColumn(texts, year); ok {
				col = c
				return
			}

			set, ok := labelAliases[normalizeLabel(texts[0])]
			if !ok {
				skipped++
				return
			}

			v, ok := pickValue(texts, col)
			if !ok {
				return
			}
			set(&st, v)
			matched++
		})
	})

	if matched == 0 {
		return st, fmt.Errorf("%w: no recognized line items for %d", ErrNoTable, year)
	}
	if skipped > 0 {
		fmt.Printf("[INGEST] Table import %d: %d line items mapped, %d unrecognized rows skipped\n", year, matched, skipped)
	}
	return st, nil
}

// yearColumn reports the index of year when texts is a header row: the
// label cell is not a known line item and every other non-empty cell is a
// plausible fiscal year.
func yearColumn(texts []string, year int) (int, bool) {
	if _, known := labelAliases[normalizeLabel(texts[0])]; known {
		return 0, false
	}

	years, idx := 0, noColumn
	for i, t := range texts[1:] {
		if t == "" {
			continue
		}
		y, err := strconv.Atoi(t)
		if err != nil || y < minFiscalYear || y > maxFiscalYear {
			return 0, false
		}
		years++
		if y == year {
			idx = i + 1
		}
	}
	if years == 0 {
		return 0, false
	}
	// A header with years but not ours: no column selected for this table.
	return idx, true
}

const (
	minFiscalYear = 1900
	maxFiscalYear = 2100
)

const (
	lastNumeric = -1
	noColumn    = -2
)

func pickValue(texts []string, col int) (float64, bool) {
	switch {
	case col > 0:
		if col >= len(texts) {
			return 0, false
		}
		return parseAmount(texts[col])
	case col == lastNumeric:
		for i := len(texts) - 1; i >= 1; i-- {
			if v, ok := parseAmount(texts[i]); ok {
				return v, true
			}
		}
	}
	return 0, false
}

// parseAmount accepts thousands separators, currency labels and accounting
// negatives "(1,234)". Dashes mean zero.
func parseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0, false
	case "-", "–", "—":
		return 0, true
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		case r >= '٠' && r <= '٩':
			b.WriteRune('0' + (r - '٠'))
		case r == '٫':
			b.WriteRune('.')
		}
	}
	if b.Len() == 0 {
		return 0, false
	}

	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	if negative {
		v = -v
	}
	return v, true
}

func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimRight(s, ":")
	return strings.Join(strings.Fields(s), " ")
}
