package calc

import (
	"financial_analysis/pkg/models"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// VerifyTolerance is the largest gap, in statement currency units, still
// treated as balanced.
var VerifyTolerance = decimal.NewFromFloat(0.01)

// IdentityCheck is the outcome of one accounting identity.
type IdentityCheck struct {
	Name     string  `json:"name"`
	Reported float64 `json:"reported"`
	Computed float64 `json:"computed"`
	Gap      float64 `json:"gap"`
	Balanced bool    `json:"balanced"`
}

// VerificationResult holds the status of integrity checks
type VerificationResult struct {
	IsBalanced bool            `json:"isBalanced"`
	Checks     []IdentityCheck `json:"checks"`
	Warnings   []string        `json:"warnings,omitempty"`
}

// Failed returns the checks that did not balance.
func (v VerificationResult) Failed() []IdentityCheck {
	var out []IdentityCheck
	for _, c := range v.Checks {
		if !c.Balanced {
			out = append(out, c)
		}
	}
	return out
}

// VerifyStatement checks the accounting identities of one statement. It is
// advisory: nothing in the record store rejects an unbalanced statement.
func VerifyStatement(stmt models.FinancialStatement) VerificationResult {
	bs := stmt.BalanceSheet
	is := stmt.IncomeStatement
	cf := stmt.CashFlowStatement

	res := VerificationResult{IsBalanced: true}
	check := func(name string, reported float64, parts ...float64) {
		if !finite(append(parts, reported)...) {
			res.IsBalanced = false
			res.Checks = append(res.Checks, IdentityCheck{
				Name:     name,
				Reported: reported,
				Computed: math.NaN(),
				Gap:      math.NaN(),
			})
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s not checked: non-finite value", name))
			return
		}

		r := decimal.NewFromFloat(reported)
		c := sum(parts...)
		gap := r.Sub(c)
		ok := gap.Abs().LessThanOrEqual(VerifyTolerance)

		res.Checks = append(res.Checks, IdentityCheck{
			Name:     name,
			Reported: reported,
			Computed: c.InexactFloat64(),
			Gap:      gap.InexactFloat64(),
			Balanced: ok,
		})
		if !ok {
			res.IsBalanced = false
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s out of balance by %s", name, gap.StringFixed(2)))
		}
	}

	// Balance sheet
	check("totalAssets = currentAssets + nonCurrentAssets", bs.TotalAssets,
		bs.CurrentAssets.TotalCurrentAssets, bs.NonCurrentAssets.TotalNonCurrentAssets)
	check("totalAssets = totalLiabilities + totalEquity", bs.TotalAssets,
		bs.TotalLiabilities, bs.ShareholdersEquity.TotalEquity)
	check("totalLiabilities = currentLiabilities + nonCurrentLiabilities", bs.TotalLiabilities,
		bs.CurrentLiabilities.TotalCurrentLiabilities, bs.NonCurrentLiabilities.TotalNonCurrentLiabilities)

	ca := bs.CurrentAssets
	check("totalCurrentAssets", ca.TotalCurrentAssets,
		ca.Cash, ca.ShortTermInvestments, ca.AccountsReceivable, ca.Inventory, ca.PrepaidExpenses, ca.OtherCurrentAssets)
	nca := bs.NonCurrentAssets
	check("totalNonCurrentAssets", nca.TotalNonCurrentAssets,
		nca.PropertyPlantEquipment, nca.IntangibleAssets, nca.LongTermInvestments, nca.OtherNonCurrentAssets)
	cl := bs.CurrentLiabilities
	check("totalCurrentLiabilities", cl.TotalCurrentLiabilities,
		cl.AccountsPayable, cl.ShortTermDebt, cl.AccruedLiabilities, cl.OtherCurrentLiabilities)
	ncl := bs.NonCurrentLiabilities
	check("totalNonCurrentLiabilities", ncl.TotalNonCurrentLiabilities,
		ncl.LongTermDebt, ncl.DeferredTaxLiabilities, ncl.OtherNonCurrentLiabilities)
	eq := bs.ShareholdersEquity
	check("totalEquity", eq.TotalEquity, eq.ShareCapital, eq.RetainedEarnings, eq.OtherEquity)

	// Income statement
	opex := is.OperatingExpenses
	check("operatingExpenses.total", opex.Total, opex.Selling, opex.Administrative, opex.ResearchDevelopment, opex.Other)
	check("grossProfit = revenue - costOfGoodsSold", is.GrossProfit, is.Revenue, -is.CostOfGoodsSold)

	// Cash flow
	op, inv, fin := cf.OperatingActivities, cf.InvestingActivities, cf.FinancingActivities
	check("netCashFromOperating", op.NetCashFromOperating, op.NetIncome, op.Depreciation, op.WorkingCapitalChanges, op.Other)
	check("netCashFromInvesting", inv.NetCashFromInvesting,
		inv.CapitalExpenditures, inv.Acquisitions, inv.InvestmentPurchases, inv.InvestmentSales, inv.Other)
	check("netCashFromFinancing", fin.NetCashFromFinancing,
		fin.DebtIssued, fin.DebtRepaid, fin.DividendsPaid, fin.ShareIssuance, fin.Other)
	check("netCashFlow = CFO + CFI + CFF", cf.NetCashFlow,
		op.NetCashFromOperating, inv.NetCashFromInvesting, fin.NetCashFromFinancing)
	check("endingCash = beginningCash + netCashFlow", cf.EndingCash, cf.BeginningCash, cf.NetCashFlow)

	return res
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func sum(values ...float64) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total
}
