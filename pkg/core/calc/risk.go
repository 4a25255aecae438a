package calc

import (
	"financial_analysis/pkg/models"
	"math"
)

// =============================================================================
// DUPONT
// =============================================================================

type DuPontResult struct {
	ProfitMargin      float64 `json:"profitMargin"`
	AssetTurnover     float64 `json:"assetTurnover"`
	FinancialLeverage float64 `json:"financialLeverage"`
	ROE               float64 `json:"roe"`
}

// DuPont decomposes ROE = margin * turnover * leverage using year-end
// balances.
func DuPont(stmt models.FinancialStatement) DuPontResult {
	is := stmt.IncomeStatement
	bs := stmt.BalanceSheet

	pm := ratio(is.NetIncome, is.Revenue)
	at := ratio(is.Revenue, bs.TotalAssets)
	fl := ratio(bs.TotalAssets, bs.ShareholdersEquity.TotalEquity)
	return DuPontResult{
		ProfitMargin:      pm,
		AssetTurnover:     at,
		FinancialLeverage: fl,
		ROE:               pm * at * fl,
	}
}

// =============================================================================
// ALTMAN Z-SCORE
// =============================================================================

const (
	ZoneSafe     = "safe"
	ZoneGrey     = "grey"
	ZoneDistress = "distress"
)

type AltmanResult struct {
	Score   float64 `json:"score"`
	Zone    string  `json:"zone"`
	Variant string  `json:"variant"` // "public" (market value of equity) or "private" (book equity)
}

// AltmanZScore scores bankruptcy risk. Listed companies with a market cap use
// the original model:
//
//	Z = 1.2A + 1.4B + 3.3C + 0.6D + 1.0E
//
// everyone else uses the private-firm revision with book equity:
//
//	Z' = 0.717A + 0.847B + 3.107C + 0.420D + 0.998E
//
// A = working capital / TA, B = retained earnings / TA, C = EBIT / TA,
// D = equity / TL, E = revenue / TA. Zero assets or liabilities give NaN.
func AltmanZScore(stmt models.FinancialStatement, isPublic bool) AltmanResult {
	bs := stmt.BalanceSheet
	is := stmt.IncomeStatement

	ta := bs.TotalAssets
	tl := bs.TotalLiabilities
	if ta == 0 || tl == 0 {
		return AltmanResult{Score: math.NaN(), Variant: variant(stmt, isPublic)}
	}

	wc := bs.CurrentAssets.TotalCurrentAssets - bs.CurrentLiabilities.TotalCurrentLiabilities
	a := wc / ta
	b := bs.ShareholdersEquity.RetainedEarnings / ta
	c := is.OperatingIncome / ta
	e := is.Revenue / ta

	if variant(stmt, isPublic) == "public" {
		d := stmt.MarketData.MarketCap / tl
		z := 1.2*a + 1.4*b + 3.3*c + 0.6*d + 1.0*e
		return AltmanResult{Score: z, Zone: zone(z, 2.99, 1.81), Variant: "public"}
	}

	d := bs.ShareholdersEquity.TotalEquity / tl
	z := 0.717*a + 0.847*b + 3.107*c + 0.420*d + 0.998*e
	return AltmanResult{Score: z, Zone: zone(z, 2.9, 1.23), Variant: "private"}
}

func variant(stmt models.FinancialStatement, isPublic bool) string {
	if isPublic && stmt.MarketData.MarketCap > 0 {
		return "public"
	}
	return "private"
}

func zone(z, safe, distress float64) string {
	switch {
	case z > safe:
		return ZoneSafe
	case z < distress:
		return ZoneDistress
	default:
		return ZoneGrey
	}
}
