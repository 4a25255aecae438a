package calc

import (
	"encoding/json"
	"financial_analysis/pkg/models"
	"math"
	"strconv"
)

// CalculateRatios derives the basic ratio set from one statement. It reads
// nothing but its argument, so repeated calls on the same value agree.
func CalculateRatios(stmt models.FinancialStatement) RatioSet {
	bs := stmt.BalanceSheet
	is := stmt.IncomeStatement

	tca := bs.CurrentAssets.TotalCurrentAssets
	tcl := bs.CurrentLiabilities.TotalCurrentLiabilities
	equity := bs.ShareholdersEquity.TotalEquity

	return RatioSet{
		Year: stmt.Year,

		CurrentRatio: ratio(tca, tcl),
		QuickRatio:   ratio(tca-bs.CurrentAssets.Inventory, tcl),
		CashRatio:    ratio(bs.CurrentAssets.Cash, tcl),

		GrossProfitMargin: ratio(is.GrossProfit, is.Revenue),
		OperatingMargin:   ratio(is.OperatingIncome, is.Revenue),
		NetProfitMargin:   ratio(is.NetIncome, is.Revenue),
		ROA:               ratio(is.NetIncome, bs.TotalAssets),
		ROE:               ratio(is.NetIncome, equity),

		DebtToAssets:     ratio(bs.TotalLiabilities, bs.TotalAssets),
		DebtToEquity:     ratio(bs.TotalLiabilities, equity),
		InterestCoverage: ratio(is.OperatingIncome, is.InterestExpense),

		AssetTurnover: ratio(is.Revenue, bs.TotalAssets),
	}
}

// ratio divides without panicking. A zero denominator yields +Inf or -Inf
// following the numerator's sign, and NaN for 0/0.
func ratio(numerator, denominator float64) float64 {
	if denominator == 0 {
		switch {
		case numerator > 0:
			return math.Inf(1)
		case numerator < 0:
			return math.Inf(-1)
		default:
			return math.NaN()
		}
	}
	return numerator / denominator
}

// IsIndeterminate reports whether v is a division-by-zero sentinel.
func IsIndeterminate(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// FormatRatio renders v with the given number of decimals, or "N/A" for a
// sentinel.
func FormatRatio(v float64, decimals int) string {
	if IsIndeterminate(v) {
		return "N/A"
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// RatioNames lists the ratio names in report order.
func RatioNames() []string {
	out := make([]string, len(ratioNames))
	copy(out, ratioNames)
	return out
}

// Names lists the ratio names in report order.
func (r RatioSet) Names() []string {
	return RatioNames()
}

// Map returns the ratios keyed by name.
func (r RatioSet) Map() map[string]float64 {
	return map[string]float64{
		RatioCurrent:           r.CurrentRatio,
		RatioQuick:             r.QuickRatio,
		RatioCash:              r.CashRatio,
		RatioGrossProfitMargin: r.GrossProfitMargin,
		RatioOperatingMargin:   r.OperatingMargin,
		RatioNetProfitMargin:   r.NetProfitMargin,
		RatioROA:               r.ROA,
		RatioROE:               r.ROE,
		RatioDebtToAssets:      r.DebtToAssets,
		RatioDebtToEquity:      r.DebtToEquity,
		RatioInterestCoverage:  r.InterestCoverage,
		RatioAssetTurnover:     r.AssetTurnover,
	}
}

// Get returns the named ratio.
func (r RatioSet) Get(name string) (float64, bool) {
	v, ok := r.Map()[name]
	return v, ok
}

// Indeterminate lists the names of ratios that hold a sentinel.
func (r RatioSet) Indeterminate() []string {
	m := r.Map()
	var out []string
	for _, name := range ratioNames {
		if IsIndeterminate(m[name]) {
			out = append(out, name)
		}
	}
	return out
}

// MarshalJSON writes sentinels as null; encoding/json rejects NaN and Inf.
func (r RatioSet) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(ratioNames)+1)
	out["year"] = r.Year
	for name, v := range r.Map() {
		if IsIndeterminate(v) {
			out[name] = nil
			continue
		}
		out[name] = v
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads null back as NaN.
func (r *RatioSet) UnmarshalJSON(data []byte) error {
	var raw map[string]*float64
	var year struct {
		Year int `json:"year"`
	}
	if err := json.Unmarshal(data, &year); err != nil {
		return err
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	get := func(name string) float64 {
		if p := raw[name]; p != nil {
			return *p
		}
		return math.NaN()
	}

	*r = RatioSet{
		Year:              year.Year,
		CurrentRatio:      get(RatioCurrent),
		QuickRatio:        get(RatioQuick),
		CashRatio:         get(RatioCash),
		GrossProfitMargin: get(RatioGrossProfitMargin),
		OperatingMargin:   get(RatioOperatingMargin),
		NetProfitMargin:   get(RatioNetProfitMargin),
		ROA:               get(RatioROA),
		ROE:               get(RatioROE),
		DebtToAssets:      get(RatioDebtToAssets),
		DebtToEquity:      get(RatioDebtToEquity),
		InterestCoverage:  get(RatioInterestCoverage),
		AssetTurnover:     get(RatioAssetTurnover),
	}
	return nil
}
