package calc

import (
	"financial_analysis/pkg/models"
	"math"
	"strconv"
)

// BenfordDistribution is the expected frequency for leading digits 1-9
var BenfordDistribution = map[int]float64{
	1: 0.30103,
	2: 0.17609,
	3: 0.12494,
	4: 0.09691,
	5: 0.07918,
	6: 0.06695,
	7: 0.05799,
	8: 0.05115,
	9: 0.04576,
}

// Mean absolute deviation thresholds. They are looser than the audit
// literature because one company's statements give few samples.
const (
	benfordHighMAD   = 0.015
	benfordMediumMAD = 0.010
)

// BenfordResult holds the analysis of leading digit distribution
type BenfordResult struct {
	DigitCounts      map[int]int     `json:"digitCounts"`
	DigitFrequencies map[int]float64 `json:"digitFrequencies"`
	TotalCount       int             `json:"totalCount"`
	MAD              float64         `json:"mad"`
	Flagged          bool            `json:"flagged"`
	Level            string          `json:"level"`
}

// AnalyzeBenfordsLaw performs first-digit analysis on a set of reported
// values. Values with magnitude below 1 are ignored.
func AnalyzeBenfordsLaw(values []float64) BenfordResult {
	counts := make(map[int]int)
	processed := 0

	for _, v := range values {
		d, ok := leadingDigit(v)
		if !ok {
			continue
		}
		counts[d]++
		processed++
	}

	if processed == 0 {
		return BenfordResult{Level: "Insufficient Data"}
	}

	freqs := make(map[int]float64)
	sumDiff := 0.0
	for d := 1; d <= 9; d++ {
		freqs[d] = float64(counts[d]) / float64(processed)
		sumDiff += math.Abs(freqs[d] - BenfordDistribution[d])
	}
	mad := sumDiff / 9.0

	res := BenfordResult{
		DigitCounts:      counts,
		DigitFrequencies: freqs,
		TotalCount:       processed,
		MAD:              mad,
		Level:            "Low Risk",
	}
	switch {
	case mad > benfordHighMAD:
		res.Level = "High Risk"
		res.Flagged = true
	case mad > benfordMediumMAD:
		res.Level = "Medium Risk"
	}
	return res
}

func leadingDigit(v float64) (int, bool) {
	abs := math.Abs(v)
	if abs < 1.0 || math.IsInf(abs, 0) || math.IsNaN(abs) {
		return 0, false
	}
	for _, c := range strconv.FormatFloat(abs, 'f', -1, 64) {
		if c >= '1' && c <= '9' {
			return int(c - '0'), true
		}
	}
	return 0, false
}

// StatementValues collects the non-zero reported line items of a statement
// for digit analysis. Totals are excluded so each amount is counted once.
func StatementValues(stmt models.FinancialStatement) []float64 {
	bs := stmt.BalanceSheet
	is := stmt.IncomeStatement
	cf := stmt.CashFlowStatement

	all := []float64{
		bs.CurrentAssets.Cash, bs.CurrentAssets.ShortTermInvestments, bs.CurrentAssets.AccountsReceivable,
		bs.CurrentAssets.Inventory, bs.CurrentAssets.PrepaidExpenses, bs.CurrentAssets.OtherCurrentAssets,
		bs.NonCurrentAssets.PropertyPlantEquipment, bs.NonCurrentAssets.IntangibleAssets,
		bs.NonCurrentAssets.LongTermInvestments, bs.NonCurrentAssets.OtherNonCurrentAssets,
		bs.CurrentLiabilities.AccountsPayable, bs.CurrentLiabilities.ShortTermDebt,
		bs.CurrentLiabilities.AccruedLiabilities, bs.CurrentLiabilities.OtherCurrentLiabilities,
		bs.NonCurrentLiabilities.LongTermDebt, bs.NonCurrentLiabilities.DeferredTaxLiabilities,
		bs.NonCurrentLiabilities.OtherNonCurrentLiabilities,
		bs.ShareholdersEquity.ShareCapital, bs.ShareholdersEquity.RetainedEarnings, bs.ShareholdersEquity.OtherEquity,

		is.Revenue, is.CostOfGoodsSold, is.OperatingExpenses.Selling, is.OperatingExpenses.Administrative,
		is.OperatingExpenses.ResearchDevelopment, is.OperatingExpenses.Other,
		is.NonOperatingIncome, is.InterestExpense, is.TaxExpense,

		cf.OperatingActivities.Depreciation, cf.OperatingActivities.WorkingCapitalChanges,
		cf.InvestingActivities.CapitalExpenditures, cf.InvestingActivities.Acquisitions,
		cf.InvestingActivities.InvestmentPurchases, cf.InvestingActivities.InvestmentSales,
		cf.FinancingActivities.DebtIssued, cf.FinancingActivities.DebtRepaid,
		cf.FinancingActivities.DividendsPaid, cf.FinancingActivities.ShareIssuance,
	}

	values := make([]float64, 0, len(all))
	for _, v := range all {
		if v != 0 {
			values = append(values, v)
		}
	}
	return values
}
