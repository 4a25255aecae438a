package record

import (
	"financial_analysis/pkg/core/calc"
	"financial_analysis/pkg/models"
	"math"
	"sort"
)

// Variance compares a year's actuals against its budget. Differences are
// actual - projected; percentages divide by |projected| with the ratio
// sentinel policy.
type Variance struct {
	Year int `json:"year"`

	Revenue         float64 `json:"revenue"`
	RevenuePct      float64 `json:"revenuePct"`
	NetIncome       float64 `json:"netIncome"`
	NetIncomePct    float64 `json:"netIncomePct"`
	NetCashFlow     float64 `json:"netCashFlow"`
	CapitalSpending float64 `json:"capitalSpending"`
}

// UpsertBudget stores b, replacing any budget for the same year.
func (s *Store) UpsertBudget(b models.Budget) bool {
	defer s.company.Touch(s.now())

	for i, existing := range s.company.Budgets {
		if existing.Year == b.Year {
			s.company.Budgets[i] = b
			return true
		}
	}
	s.company.Budgets = append(s.company.Budgets, b)
	sort.Slice(s.company.Budgets, func(i, j int) bool { return s.company.Budgets[i].Year < s.company.Budgets[j].Year })
	return false
}

// GetBudget returns the budget for year.
func (s *Store) GetBudget(year int) (models.Budget, bool) {
	for _, b := range s.company.Budgets {
		if b.Year == year {
			return b, true
		}
	}
	return models.Budget{}, false
}

// BudgetVariance compares actuals with the budget for year. Both must exist.
func (s *Store) BudgetVariance(year int) (Variance, bool) {
	st, ok := s.GetStatement(year)
	if !ok {
		return Variance{}, false
	}
	b, ok := s.GetBudget(year)
	if !ok {
		return Variance{}, false
	}

	is := st.IncomeStatement
	cf := st.CashFlowStatement
	d := b.Data

	revDiff := is.Revenue - d.ProjectedRevenue
	niDiff := is.NetIncome - d.ProjectedNetIncome
	return Variance{
		Year:         year,
		Revenue:      revDiff,
		RevenuePct:   calc.GrowthRate(is.Revenue, d.ProjectedRevenue),
		NetIncome:    niDiff,
		NetIncomePct: calc.GrowthRate(is.NetIncome, d.ProjectedNetIncome),
		NetCashFlow:  cf.NetCashFlow - d.ProjectedCashFlow,
		// capex is reported negative in the cash-flow statement, budgeted positive
		CapitalSpending: math.Abs(cf.InvestingActivities.CapitalExpenditures) - d.CapitalExpenditure,
	}, true
}

func dedupeBudgets(in []models.Budget) []models.Budget {
	byYear := make(map[int]models.Budget, len(in))
	for _, b := range in {
		byYear[b.Year] = b
	}
	out := make([]models.Budget, 0, len(byYear))
	for _, b := range byYear {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}
