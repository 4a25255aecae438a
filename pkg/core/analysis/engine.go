package analysis

import (
	"financial_analysis/pkg/core/calc"
	"financial_analysis/pkg/core/record"
	"financial_analysis/pkg/models"
	"fmt"
	"time"
)

// AnalysisEngine assembles multi-year analyses from a record store.
type AnalysisEngine struct {
	now func() time.Time
}

// NewAnalysisEngine creates a new instance of the engine.
func NewAnalysisEngine() *AnalysisEngine {
	return &AnalysisEngine{now: time.Now}
}

// Analyze runs over the company's preferred analysis window.
func (e *AnalysisEngine) Analyze(s *record.Store) (*CompanyAnalysis, error) {
	if s == nil {
		return nil, fmt.Errorf("record store is nil")
	}
	start, end, ok := s.AnalysisWindow()
	if !ok {
		return nil, fmt.Errorf("company %s has no financial statements", s.Company().Name)
	}
	return e.AnalyzeRange(s, start, end)
}

// AnalyzeRange computes each year in [start, end] that has a statement. The
// depth of each YearlyAnalysis follows the company's requested analysis types.
func (e *AnalysisEngine) AnalyzeRange(s *record.Store, start, end int) (*CompanyAnalysis, error) {
	if s == nil {
		return nil, fmt.Errorf("record store is nil")
	}
	company := s.Company()
	levels := depthLevel(company.AnalysisPreferences.AnalysisTypes)

	out := &CompanyAnalysis{
		CompanyID:    company.ID,
		Name:         company.Name,
		Currency:     company.Currency,
		LastAnalyzed: e.now(),
		Years:        []int{},
		Timeline:     make(map[int]*YearlyAnalysis),
	}

	statements := s.GetStatementRange(start, end)
	for _, stmt := range statements {
		ratios, ok := s.CalculateRatios(stmt.Year)
		if !ok {
			// The range and the point lookup read the same collection.
			return nil, fmt.Errorf("statement %d disappeared during analysis", stmt.Year)
		}

		ya := &YearlyAnalysis{
			Year:         stmt.Year,
			Ratios:       ratios,
			Verification: calc.VerifyStatement(stmt),
		}

		if levels >= levelIntermediate {
			// The prior year may sit just outside the window.
			var prior *models.FinancialStatement
			if p, ok := s.GetStatement(stmt.Year - 1); ok {
				prior = &p
			}
			g := calculateGrowth(stmt, prior)
			ya.Growth = &g

			cs := calc.CommonSize(stmt)
			ya.CommonSize = &cs

			if v, ok := s.BudgetVariance(stmt.Year); ok {
				ya.Budget = &v
			}
		}

		if levels >= levelAdvanced {
			dp := calc.DuPont(stmt)
			ya.DuPont = &dp
			z := calc.AltmanZScore(stmt, company.IsPublic)
			ya.Altman = &z
		}

		if levels >= levelComprehensive {
			b := calc.AnalyzeBenfordsLaw(calc.StatementValues(stmt))
			ya.Benford = &b
		}

		if !ya.Verification.IsBalanced {
			fmt.Printf("[ANALYSIS] %s %d: %d identity check(s) out of balance\n",
				company.Name, stmt.Year, len(ya.Verification.Failed()))
		}

		out.Years = append(out.Years, stmt.Year)
		out.Timeline[stmt.Year] = ya
	}

	return out, nil
}

const (
	levelBasic = iota
	levelIntermediate
	levelAdvanced
	levelComprehensive
)

// depthLevel returns the deepest level requested.
func depthLevel(types []models.AnalysisDepth) int {
	level := levelBasic
	for _, t := range types {
		l := levelBasic
		switch t {
		case models.DepthAppliedIntermediate:
			l = levelIntermediate
		case models.DepthAdvancedComplex:
			l = levelAdvanced
		case models.DepthComprehensive:
			l = levelComprehensive
		}
		if l > level {
			level = l
		}
	}
	return level
}

func calculateGrowth(current models.FinancialStatement, prior *models.FinancialStatement) GrowthMetrics {
	if prior == nil {
		return GrowthMetrics{}
	}
	ci, pi := current.IncomeStatement, prior.IncomeStatement
	cb, pb := current.BalanceSheet, prior.BalanceSheet

	return GrowthMetrics{
		RevenueGrowth:     calc.GrowthRate(ci.Revenue, pi.Revenue),
		OpIncomeGrowth:    calc.GrowthRate(ci.OperatingIncome, pi.OperatingIncome),
		NetIncomeGrowth:   calc.GrowthRate(ci.NetIncome, pi.NetIncome),
		TotalAssetsGrowth: calc.GrowthRate(cb.TotalAssets, pb.TotalAssets),
		EquityGrowth:      calc.GrowthRate(cb.ShareholdersEquity.TotalEquity, pb.ShareholdersEquity.TotalEquity),
	}
}

// RatioSeries returns one ratio across the analyzed years, in year order.
func (a *CompanyAnalysis) RatioSeries(name string) ([]float64, error) {
	out := make([]float64, 0, len(a.Years))
	for _, y := range a.Years {
		v, ok := a.Timeline[y].Ratios.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown ratio %q", name)
		}
		out = append(out, v)
	}
	return out, nil
}
