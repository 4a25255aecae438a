package calc

import "financial_analysis/pkg/models"

// CommonSize performs vertical analysis of one statement. Income statement
// and cash-flow items are divided by revenue, balance sheet items by total
// assets. Zero bases produce sentinels, like the ratio set.
func CommonSize(stmt models.FinancialStatement) CommonSizeAnalysis {
	bs := stmt.BalanceSheet
	is := stmt.IncomeStatement
	cf := stmt.CashFlowStatement

	out := CommonSizeAnalysis{
		IncomeStatement: make(map[string]float64),
		BalanceSheet:    make(map[string]float64),
		CashFlow:        make(map[string]float64),
	}

	addIS := func(key string, v float64) { out.IncomeStatement[key] = ratio(v, is.Revenue) }
	addBS := func(key string, v float64) { out.BalanceSheet[key] = ratio(v, bs.TotalAssets) }
	addCF := func(key string, v float64) { out.CashFlow[key] = ratio(v, is.Revenue) }

	addIS("costOfGoodsSold", is.CostOfGoodsSold)
	addIS("grossProfit", is.GrossProfit)
	addIS("sellingExpenses", is.OperatingExpenses.Selling)
	addIS("administrativeExpenses", is.OperatingExpenses.Administrative)
	addIS("researchDevelopment", is.OperatingExpenses.ResearchDevelopment)
	addIS("operatingIncome", is.OperatingIncome)
	addIS("interestExpense", is.InterestExpense)
	addIS("taxExpense", is.TaxExpense)
	addIS("netIncome", is.NetIncome)
	addIS("ebitda", is.EBITDA)

	addBS("cash", bs.CurrentAssets.Cash)
	addBS("accountsReceivable", bs.CurrentAssets.AccountsReceivable)
	addBS("inventory", bs.CurrentAssets.Inventory)
	addBS("totalCurrentAssets", bs.CurrentAssets.TotalCurrentAssets)
	addBS("propertyPlantEquipment", bs.NonCurrentAssets.PropertyPlantEquipment)
	addBS("intangibleAssets", bs.NonCurrentAssets.IntangibleAssets)
	addBS("accountsPayable", bs.CurrentLiabilities.AccountsPayable)
	addBS("totalCurrentLiabilities", bs.CurrentLiabilities.TotalCurrentLiabilities)
	addBS("longTermDebt", bs.NonCurrentLiabilities.LongTermDebt)
	addBS("totalLiabilities", bs.TotalLiabilities)
	addBS("totalEquity", bs.ShareholdersEquity.TotalEquity)

	addCF("netCashFromOperating", cf.OperatingActivities.NetCashFromOperating)
	addCF("capitalExpenditures", cf.InvestingActivities.CapitalExpenditures)
	addCF("dividendsPaid", cf.FinancingActivities.DividendsPaid)

	return out
}
