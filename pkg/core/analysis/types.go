package analysis

import (
	"financial_analysis/pkg/core/calc"
	"financial_analysis/pkg/core/record"
	"time"
)

// CompanyAnalysis is the multi-year profile assembled from per-year ratio
// sets over the company's analysis window.
type CompanyAnalysis struct {
	CompanyID    string                  `json:"companyId"`
	Name         string                  `json:"name"`
	Currency     string                  `json:"currency"`
	LastAnalyzed time.Time               `json:"lastAnalyzed"`
	Years        []int                   `json:"years"`    // ascending
	Timeline     map[int]*YearlyAnalysis `json:"timeline"` // Key: Fiscal Year
}

// YearlyAnalysis contains the computed metrics for a specific fiscal year.
// Sections beyond Ratios are filled according to the requested analysis depth.
type YearlyAnalysis struct {
	Year int `json:"year"`

	// basic_classical
	Ratios       calc.RatioSet           `json:"ratios"`
	Verification calc.VerificationResult `json:"verification"`

	// applied_intermediate
	Growth     *GrowthMetrics           `json:"growth,omitempty"`
	CommonSize *calc.CommonSizeAnalysis `json:"commonSize,omitempty"`
	Budget     *record.Variance         `json:"budget,omitempty"`

	// advanced_complex
	DuPont *calc.DuPontResult `json:"dupont,omitempty"`
	Altman *calc.AltmanResult `json:"altman,omitempty"`

	// comprehensive
	Benford *calc.BenfordResult `json:"benford,omitempty"`
}

// GrowthMetrics captures Year-over-Year growth rates for key items. A year
// without a statement for the previous year reports zeros.
type GrowthMetrics struct {
	RevenueGrowth     float64 `json:"revenueGrowth"`
	OpIncomeGrowth    float64 `json:"opIncomeGrowth"`
	NetIncomeGrowth   float64 `json:"netIncomeGrowth"`
	TotalAssetsGrowth float64 `json:"totalAssetsGrowth"`
	EquityGrowth      float64 `json:"equityGrowth"`
}
