package calc

import (
	"encoding/json"
	"financial_analysis/pkg/models"
	"math"
	"reflect"
	"testing"
)

// exampleStatement is a fully balanced year:
// assets 200,000 = liabilities 100,000 + equity 100,000.
func exampleStatement() models.FinancialStatement {
	return models.FinancialStatement{
		Year: 2024,
		BalanceSheet: models.BalanceSheet{
			CurrentAssets: models.CurrentAssets{
				Cash:               30000,
				AccountsReceivable: 70000,
				Inventory:          0,
				TotalCurrentAssets: 100000,
			},
			NonCurrentAssets: models.NonCurrentAssets{
				PropertyPlantEquipment: 100000,
				TotalNonCurrentAssets:  100000,
			},
			TotalAssets: 200000,
			CurrentLiabilities: models.CurrentLiabilities{
				AccountsPayable:         50000,
				TotalCurrentLiabilities: 50000,
			},
			NonCurrentLiabilities: models.NonCurrentLiabilities{
				LongTermDebt:               50000,
				TotalNonCurrentLiabilities: 50000,
			},
			TotalLiabilities: 100000,
			ShareholdersEquity: models.ShareholdersEquity{
				ShareCapital:     80000,
				RetainedEarnings: 20000,
				TotalEquity:      100000,
			},
		},
		IncomeStatement: models.IncomeStatement{
			Revenue:         150000,
			CostOfGoodsSold: 90000,
			GrossProfit:     60000,
			OperatingExpenses: models.OperatingExpenses{
				Selling:        20000,
				Administrative: 15000,
				Total:          35000,
			},
			OperatingIncome:   25000,
			InterestExpense:   5000,
			EarningsBeforeTax: 20000,
			NetIncome:         20000,
		},
	}
}

func TestCalculateRatios_EndToEnd(t *testing.T) {
	r := CalculateRatios(exampleStatement())

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"currentRatio", r.CurrentRatio, 2.0},
		{"quickRatio", r.QuickRatio, 2.0},
		{"cashRatio", r.CashRatio, 0.6},
		{"grossProfitMargin", r.GrossProfitMargin, 0.4},
		{"operatingMargin", r.OperatingMargin, 25000.0 / 150000.0},
		{"netProfitMargin", r.NetProfitMargin, 0.1333},
		{"roa", r.ROA, 0.1},
		{"roe", r.ROE, 0.2},
		{"debtToAssets", r.DebtToAssets, 0.5},
		{"debtToEquity", r.DebtToEquity, 1.0},
		{"interestCoverage", r.InterestCoverage, 5.0},
		{"assetTurnover", r.AssetTurnover, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > 0.0001 {
				t.Errorf("%s = %f, want %f", tt.name, tt.got, tt.want)
			}
		})
	}

	if r.Year != 2024 {
		t.Errorf("Year = %d, want 2024", r.Year)
	}
	if len(r.Indeterminate()) != 0 {
		t.Errorf("unexpected indeterminate ratios: %v", r.Indeterminate())
	}
}

func TestCalculateRatios_QuickRatioExcludesInventory(t *testing.T) {
	stmt := exampleStatement()
	stmt.BalanceSheet.CurrentAssets.Inventory = 20000

	r := CalculateRatios(stmt)
	if math.Abs(r.QuickRatio-1.6) > 0.0001 {
		t.Errorf("quickRatio = %f, want 1.6", r.QuickRatio)
	}
	if math.Abs(r.CurrentRatio-2.0) > 0.0001 {
		t.Errorf("currentRatio = %f, want 2.0", r.CurrentRatio)
	}
}

func TestCalculateRatios_ZeroDenominators(t *testing.T) {
	stmt := models.FinancialStatement{Year: 2022}
	stmt.BalanceSheet.CurrentAssets.TotalCurrentAssets = 100000
	stmt.IncomeStatement.NetIncome = -5000
	stmt.IncomeStatement.OperatingIncome = 0

	r := CalculateRatios(stmt)

	if !math.IsInf(r.CurrentRatio, 1) {
		t.Errorf("currentRatio = %v, want +Inf", r.CurrentRatio)
	}
	if !math.IsInf(r.NetProfitMargin, -1) {
		t.Errorf("netProfitMargin = %v, want -Inf", r.NetProfitMargin)
	}
	if !math.IsNaN(r.OperatingMargin) {
		t.Errorf("operatingMargin = %v, want NaN", r.OperatingMargin)
	}
	if !math.IsNaN(r.InterestCoverage) {
		t.Errorf("interestCoverage = %v, want NaN", r.InterestCoverage)
	}

	// Every ratio has a zero denominator here.
	if got := len(r.Indeterminate()); got != len(r.Names()) {
		t.Errorf("indeterminate count = %d, want %d", got, len(r.Names()))
	}
}

func TestCalculateRatios_Pure(t *testing.T) {
	stmt := exampleStatement()
	first := CalculateRatios(stmt)
	second := CalculateRatios(stmt)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ:\n%+v\n%+v", first, second)
	}

	// Sentinels must also be stable (NaN != NaN, so compare formatted).
	zero := models.FinancialStatement{Year: 2020}
	a, b := CalculateRatios(zero), CalculateRatios(zero)
	for _, name := range a.Names() {
		va, _ := a.Get(name)
		vb, _ := b.Get(name)
		if FormatRatio(va, 4) != FormatRatio(vb, 4) {
			t.Errorf("%s differs across calls: %v vs %v", name, va, vb)
		}
	}
}

func TestFormatRatio(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{2, "2.00"},
		{0.13333, "0.13"},
		{math.Inf(1), "N/A"},
		{math.Inf(-1), "N/A"},
		{math.NaN(), "N/A"},
	}
	for _, tt := range tests {
		if got := FormatRatio(tt.v, 2); got != tt.want {
			t.Errorf("FormatRatio(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestRatioSet_MapAndNames(t *testing.T) {
	r := CalculateRatios(exampleStatement())
	m := r.Map()
	names := r.Names()

	if len(m) != 12 || len(names) != 12 {
		t.Fatalf("expected 12 ratios, got map=%d names=%d", len(m), len(names))
	}
	for _, n := range names {
		if _, ok := m[n]; !ok {
			t.Errorf("name %q missing from map", n)
		}
	}
	if v, ok := r.Get(RatioROE); !ok || math.Abs(v-0.2) > 0.0001 {
		t.Errorf("Get(roe) = %v, %v", v, ok)
	}
	if _, ok := r.Get("pe"); ok {
		t.Error("Get(pe) should not exist")
	}
}

func TestRatioSet_JSONSentinels(t *testing.T) {
	stmt := exampleStatement()
	stmt.BalanceSheet.CurrentLiabilities.TotalCurrentLiabilities = 0
	r := CalculateRatios(stmt)

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal raw: %v", err)
	}
	if raw[RatioCurrent] != nil {
		t.Errorf("currentRatio should encode as null, got %v", raw[RatioCurrent])
	}
	if raw[RatioROE] == nil {
		t.Error("roe should be a number")
	}

	var back RatioSet
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal RatioSet: %v", err)
	}
	if back.Year != 2024 {
		t.Errorf("Year = %d, want 2024", back.Year)
	}
	if !IsIndeterminate(back.CurrentRatio) {
		t.Errorf("currentRatio = %v, want sentinel", back.CurrentRatio)
	}
	if math.Abs(back.ROE-0.2) > 0.0001 {
		t.Errorf("roe = %v, want 0.2", back.ROE)
	}
}

func TestRatioNames(t *testing.T) {
	names := RatioNames()
	if len(names) != 12 || names[0] != RatioCurrent || names[11] != RatioAssetTurnover {
		t.Fatalf("RatioNames() = %v", names)
	}
	names[0] = "mutated"
	if RatioNames()[0] != RatioCurrent {
		t.Error("RatioNames must return a copy")
	}
}
