// Package calc provides deterministic financial calculations over a single
// year's statement: the basic ratio set, statement verification, common-size
// analysis and the risk scores used by the deeper analysis levels.
package calc

// =============================================================================
// RATIO SET
// =============================================================================

// Ratio names, in the order they are reported.
const (
	RatioCurrent           = "currentRatio"
	RatioQuick             = "quickRatio"
	RatioCash              = "cashRatio"
	RatioGrossProfitMargin = "grossProfitMargin"
	RatioOperatingMargin   = "operatingMargin"
	RatioNetProfitMargin   = "netProfitMargin"
	RatioROA               = "roa"
	RatioROE               = "roe"
	RatioDebtToAssets      = "debtToAssets"
	RatioDebtToEquity      = "debtToEquity"
	RatioInterestCoverage  = "interestCoverage"
	RatioAssetTurnover     = "assetTurnover"
)

var ratioNames = []string{
	RatioCurrent, RatioQuick, RatioCash,
	RatioGrossProfitMargin, RatioOperatingMargin, RatioNetProfitMargin,
	RatioROA, RatioROE,
	RatioDebtToAssets, RatioDebtToEquity, RatioInterestCoverage,
	RatioAssetTurnover,
}

// RatioSet is the full set of basic ratios for one statement. A value may be
// +Inf, -Inf or NaN when its denominator was zero; see IsIndeterminate.
type RatioSet struct {
	Year int `json:"year"`

	// Liquidity
	CurrentRatio float64 `json:"currentRatio"`
	QuickRatio   float64 `json:"quickRatio"`
	CashRatio    float64 `json:"cashRatio"`

	// Profitability
	GrossProfitMargin float64 `json:"grossProfitMargin"`
	OperatingMargin   float64 `json:"operatingMargin"`
	NetProfitMargin   float64 `json:"netProfitMargin"`
	ROA               float64 `json:"roa"`
	ROE               float64 `json:"roe"`

	// Leverage
	DebtToAssets     float64 `json:"debtToAssets"`
	DebtToEquity     float64 `json:"debtToEquity"`
	InterestCoverage float64 `json:"interestCoverage"`

	// Activity
	AssetTurnover float64 `json:"assetTurnover"`
}

// =============================================================================
// COMMON-SIZE (VERTICAL) ANALYSIS
// =============================================================================

// CommonSizeAnalysis expresses income statement items as a share of revenue,
// balance sheet items as a share of total assets and cash-flow items as a
// share of revenue.
type CommonSizeAnalysis struct {
	IncomeStatement map[string]float64 `json:"incomeStatement"`
	BalanceSheet    map[string]float64 `json:"balanceSheet"`
	CashFlow        map[string]float64 `json:"cashFlow"`
}
