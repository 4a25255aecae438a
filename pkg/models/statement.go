package models

// =============================================================================
// FINANCIAL STATEMENT (one per fiscal year)
// =============================================================================

// FinancialStatement is one fiscal year of balance sheet, income statement
// and cash-flow data for a company. Missing numeric fields are zero.
type FinancialStatement struct {
	Year              int               `json:"year"`
	BalanceSheet      BalanceSheet      `json:"balanceSheet"`
	IncomeStatement   IncomeStatement   `json:"incomeStatement"`
	CashFlowStatement CashFlowStatement `json:"cashFlowStatement"`
	MarketData        MarketData        `json:"marketData"` // public companies only
}

// BalanceSheet holds the asset, liability and equity sides.
type BalanceSheet struct {
	CurrentAssets         CurrentAssets         `json:"currentAssets"`
	NonCurrentAssets      NonCurrentAssets      `json:"nonCurrentAssets"`
	TotalAssets           float64               `json:"totalAssets"`
	CurrentLiabilities    CurrentLiabilities    `json:"currentLiabilities"`
	NonCurrentLiabilities NonCurrentLiabilities `json:"nonCurrentLiabilities"`
	TotalLiabilities      float64               `json:"totalLiabilities"`
	ShareholdersEquity    ShareholdersEquity    `json:"shareholdersEquity"`
}

type CurrentAssets struct {
	Cash                 float64 `json:"cash"`
	ShortTermInvestments float64 `json:"shortTermInvestments"`
	AccountsReceivable   float64 `json:"accountsReceivable"`
	Inventory            float64 `json:"inventory"`
	PrepaidExpenses      float64 `json:"prepaidExpenses"`
	OtherCurrentAssets   float64 `json:"otherCurrentAssets"`
	TotalCurrentAssets   float64 `json:"totalCurrentAssets"`
}

// LineItemSum is the sum of the listed current-asset line items.
func (a CurrentAssets) LineItemSum() float64 {
	return a.Cash + a.ShortTermInvestments + a.AccountsReceivable + a.Inventory + a.PrepaidExpenses + a.OtherCurrentAssets
}

type NonCurrentAssets struct {
	PropertyPlantEquipment float64 `json:"propertyPlantEquipment"`
	IntangibleAssets       float64 `json:"intangibleAssets"`
	LongTermInvestments    float64 `json:"longTermInvestments"`
	OtherNonCurrentAssets  float64 `json:"otherNonCurrentAssets"`
	TotalNonCurrentAssets  float64 `json:"totalNonCurrentAssets"`
}

func (a NonCurrentAssets) LineItemSum() float64 {
	return a.PropertyPlantEquipment + a.IntangibleAssets + a.LongTermInvestments + a.OtherNonCurrentAssets
}

type CurrentLiabilities struct {
	AccountsPayable         float64 `json:"accountsPayable"`
	ShortTermDebt           float64 `json:"shortTermDebt"`
	AccruedLiabilities      float64 `json:"accruedLiabilities"`
	OtherCurrentLiabilities float64 `json:"otherCurrentLiabilities"`
	TotalCurrentLiabilities float64 `json:"totalCurrentLiabilities"`
}

func (l CurrentLiabilities) LineItemSum() float64 {
	return l.AccountsPayable + l.ShortTermDebt + l.AccruedLiabilities + l.OtherCurrentLiabilities
}

type NonCurrentLiabilities struct {
	LongTermDebt               float64 `json:"longTermDebt"`
	DeferredTaxLiabilities     float64 `json:"deferredTaxLiabilities"`
	OtherNonCurrentLiabilities float64 `json:"otherNonCurrentLiabilities"`
	TotalNonCurrentLiabilities float64 `json:"totalNonCurrentLiabilities"`
}

func (l NonCurrentLiabilities) LineItemSum() float64 {
	return l.LongTermDebt + l.DeferredTaxLiabilities + l.OtherNonCurrentLiabilities
}

type ShareholdersEquity struct {
	ShareCapital     float64 `json:"shareCapital"`
	RetainedEarnings float64 `json:"retainedEarnings"`
	OtherEquity      float64 `json:"otherEquity"`
	TotalEquity      float64 `json:"totalEquity"`
}

func (e ShareholdersEquity) LineItemSum() float64 {
	return e.ShareCapital + e.RetainedEarnings + e.OtherEquity
}

// IncomeStatement represents income statement line items.
type IncomeStatement struct {
	Revenue            float64           `json:"revenue"`
	CostOfGoodsSold    float64           `json:"costOfGoodsSold"`
	GrossProfit        float64           `json:"grossProfit"`
	OperatingExpenses  OperatingExpenses `json:"operatingExpenses"`
	OperatingIncome    float64           `json:"operatingIncome"`
	NonOperatingIncome float64           `json:"nonOperatingIncome"`
	InterestExpense    float64           `json:"interestExpense"`
	EarningsBeforeTax  float64           `json:"earningsBeforeTax"`
	TaxExpense         float64           `json:"taxExpense"`
	NetIncome          float64           `json:"netIncome"`
	EBITDA             float64           `json:"ebitda"`
}

type OperatingExpenses struct {
	Selling             float64 `json:"selling"`
	Administrative      float64 `json:"administrative"`
	ResearchDevelopment float64 `json:"researchDevelopment"`
	Other               float64 `json:"other"`
	Total               float64 `json:"total"`
}

func (o OperatingExpenses) LineItemSum() float64 {
	return o.Selling + o.Administrative + o.ResearchDevelopment + o.Other
}

// CashFlowStatement represents the three cash-flow categories and the
// cash roll-forward.
type CashFlowStatement struct {
	OperatingActivities OperatingActivities `json:"operatingActivities"`
	InvestingActivities InvestingActivities `json:"investingActivities"`
	FinancingActivities FinancingActivities `json:"financingActivities"`
	NetCashFlow         float64             `json:"netCashFlow"`
	BeginningCash       float64             `json:"beginningCash"`
	EndingCash          float64             `json:"endingCash"`
}

type OperatingActivities struct {
	NetIncome             float64 `json:"netIncome"`
	Depreciation          float64 `json:"depreciation"`
	WorkingCapitalChanges float64 `json:"workingCapitalChanges"`
	Other                 float64 `json:"other"`
	NetCashFromOperating  float64 `json:"netCashFromOperating"`
}

func (o OperatingActivities) LineItemSum() float64 {
	return o.NetIncome + o.Depreciation + o.WorkingCapitalChanges + o.Other
}

type InvestingActivities struct {
	CapitalExpenditures  float64 `json:"capitalExpenditures"` // negative
	Acquisitions         float64 `json:"acquisitions"`        // negative
	InvestmentPurchases  float64 `json:"investmentPurchases"`
	InvestmentSales      float64 `json:"investmentSales"`
	Other                float64 `json:"other"`
	NetCashFromInvesting float64 `json:"netCashFromInvesting"`
}

func (i InvestingActivities) LineItemSum() float64 {
	return i.CapitalExpenditures + i.Acquisitions + i.InvestmentPurchases + i.InvestmentSales + i.Other
}

type FinancingActivities struct {
	DebtIssued           float64 `json:"debtIssued"`
	DebtRepaid           float64 `json:"debtRepaid"`    // negative
	DividendsPaid        float64 `json:"dividendsPaid"` // negative
	ShareIssuance        float64 `json:"shareIssuance"`
	Other                float64 `json:"other"`
	NetCashFromFinancing float64 `json:"netCashFromFinancing"`
}

func (f FinancingActivities) LineItemSum() float64 {
	return f.DebtIssued + f.DebtRepaid + f.DividendsPaid + f.ShareIssuance + f.Other
}

// MarketData is populated only for listed companies.
type MarketData struct {
	SharePrice        float64 `json:"sharePrice"`
	MarketCap         float64 `json:"marketCap"`
	SharesOutstanding float64 `json:"sharesOutstanding"`
	BookValuePerShare float64 `json:"bookValuePerShare"`
	EPS               float64 `json:"eps"`
}
