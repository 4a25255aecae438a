package calc

import (
	"financial_analysis/pkg/models"
	"math"
	"testing"
)

func withoutBalanceSheet(stmt models.FinancialStatement) models.FinancialStatement {
	stmt.BalanceSheet = models.BalanceSheet{}
	return stmt
}

func TestDuPont(t *testing.T) {
	res := DuPont(exampleStatement())

	// 20000/150000 * 150000/200000 * 200000/100000 = 0.2
	if math.Abs(res.ROE-0.2) > 0.0001 {
		t.Errorf("ROE = %f, want 0.2", res.ROE)
	}
	if math.Abs(res.FinancialLeverage-2.0) > 0.0001 {
		t.Errorf("FinancialLeverage = %f, want 2.0", res.FinancialLeverage)
	}

	// Must agree with the basic ratio set.
	r := CalculateRatios(exampleStatement())
	if math.Abs(res.ROE-r.ROE) > 0.0001 {
		t.Errorf("DuPont ROE %f disagrees with ratio ROE %f", res.ROE, r.ROE)
	}
}

func TestAltmanZScore(t *testing.T) {
	stmt := exampleStatement()

	// A = 50000/200000 = 0.25, B = 20000/200000 = 0.1, C = 25000/200000 = 0.125,
	// D = 100000/100000 = 1.0, E = 150000/200000 = 0.75
	priv := AltmanZScore(stmt, false)
	want := 0.717*0.25 + 0.847*0.1 + 3.107*0.125 + 0.420*1.0 + 0.998*0.75
	if math.Abs(priv.Score-want) > 0.0001 {
		t.Errorf("private Z = %f, want %f", priv.Score, want)
	}
	if priv.Variant != "private" {
		t.Errorf("Variant = %q, want private", priv.Variant)
	}
	if priv.Zone != ZoneGrey {
		t.Errorf("Zone = %q, want grey", priv.Zone)
	}

	stmt.MarketData.MarketCap = 300000
	pub := AltmanZScore(stmt, true)
	want = 1.2*0.25 + 1.4*0.1 + 3.3*0.125 + 0.6*3.0 + 1.0*0.75
	if math.Abs(pub.Score-want) > 0.0001 {
		t.Errorf("public Z = %f, want %f", pub.Score, want)
	}
	if pub.Zone != ZoneSafe {
		t.Errorf("Zone = %q, want safe for %f", pub.Zone, pub.Score)
	}

	// Public flag without a market cap falls back to book equity.
	stmt.MarketData.MarketCap = 0
	if got := AltmanZScore(stmt, true).Variant; got != "private" {
		t.Errorf("Variant = %q, want private", got)
	}

	empty := AltmanZScore(withoutBalanceSheet(exampleStatement()), false)
	if !math.IsNaN(empty.Score) {
		t.Errorf("Z with zero assets = %f, want NaN", empty.Score)
	}
}

func TestGrowthRate(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		prior    float64
		expected float64
	}{
		{"Positive growth", 110, 100, 0.10},
		{"Negative growth", 90, 100, -0.10},
		{"Negative base improving", -50, -100, 0.5},
		{"Flat", 100, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GrowthRate(tt.current, tt.prior)
			if math.Abs(got-tt.expected) > 0.0001 {
				t.Errorf("GrowthRate(%v, %v) = %v, want %v", tt.current, tt.prior, got, tt.expected)
			}
		})
	}

	if !math.IsInf(GrowthRate(10, 0), 1) {
		t.Error("growth from zero should be +Inf")
	}
	if !math.IsNaN(GrowthRate(0, 0)) {
		t.Error("growth from zero to zero should be NaN")
	}
}

func TestCAGR(t *testing.T) {
	// 100 -> 121 over 2 years = 10%
	if got := CAGR(121, 100, 2); math.Abs(got-0.10) > 0.0001 {
		t.Errorf("CAGR = %f, want 0.10", got)
	}
	if !math.IsNaN(CAGR(100, 0, 3)) {
		t.Error("CAGR with zero base should be NaN")
	}
	if !math.IsNaN(CAGR(100, 50, 0)) {
		t.Error("CAGR over zero years should be NaN")
	}
}

func TestCommonSize(t *testing.T) {
	cs := CommonSize(exampleStatement())

	if math.Abs(cs.IncomeStatement["grossProfit"]-0.4) > 0.0001 {
		t.Errorf("grossProfit %% = %f, want 0.4", cs.IncomeStatement["grossProfit"])
	}
	if math.Abs(cs.BalanceSheet["cash"]-0.15) > 0.0001 {
		t.Errorf("cash %% = %f, want 0.15", cs.BalanceSheet["cash"])
	}
	if math.Abs(cs.BalanceSheet["totalLiabilities"]+cs.BalanceSheet["totalEquity"]-1.0) > 0.0001 {
		t.Error("liabilities and equity should make up 100% of assets")
	}

	zero := CommonSize(withoutBalanceSheet(exampleStatement()))
	if !IsIndeterminate(zero.BalanceSheet["cash"]) {
		t.Errorf("cash %% with zero assets = %v, want sentinel", zero.BalanceSheet["cash"])
	}
}

func TestBenfordAnalysis(t *testing.T) {
	values := []float64{
		105.0, 1500.0, 19.0, // Should be '1' -> 3 count
		200.0, 25.0, // '2' -> 2 count
		-300.0, // '3' -> 1 count (Abs)
		0.5,    // Skipped (< 1)
		9.9,    // '9' -> 1 count
	}

	res := AnalyzeBenfordsLaw(values)

	if res.TotalCount != 7 {
		t.Errorf("Expected 7 processed values, got %d", res.TotalCount)
	}
	if res.DigitCounts[1] != 3 {
		t.Errorf("Expected 3 ones, got %d", res.DigitCounts[1])
	}
	if res.DigitCounts[9] != 1 {
		t.Errorf("Expected 1 nine, got %d", res.DigitCounts[9])
	}
	if math.Abs(res.DigitFrequencies[1]-3.0/7.0) > 0.0001 {
		t.Error("Frequency calc wrong")
	}

	empty := AnalyzeBenfordsLaw(nil)
	if empty.TotalCount != 0 || empty.Level != "Insufficient Data" {
		t.Errorf("empty input: %+v", empty)
	}
}

func TestStatementValues_SkipsZerosAndTotals(t *testing.T) {
	vals := StatementValues(exampleStatement())
	for _, v := range vals {
		if v == 0 {
			t.Fatal("zero value included")
		}
		if v == 200000 {
			t.Error("totalAssets should not be collected")
		}
	}
	if len(vals) == 0 {
		t.Error("expected some values")
	}
}
