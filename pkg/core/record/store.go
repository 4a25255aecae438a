// Package record holds one company's yearly statements, budgets and analysis
// preferences, and answers point lookups, range queries and ratio derivation
// over them.
package record

import (
	"financial_analysis/pkg/core/calc"
	"financial_analysis/pkg/models"
	"fmt"
	"sort"
	"time"
)

// Store is the query layer over a Company aggregate. It is not safe for
// concurrent mutation; writers are serialized by the persistence layer.
type Store struct {
	company *models.Company
	now     func() time.Time
}

// NewStore takes ownership of a loaded company. It rewrites
// company.FinancialStatements and company.Budgets in place: sorted by year,
// duplicate years collapsed with the last occurrence winning. Later
// mutations through the store also land on company, so the caller can save
// the same aggregate. The slices previously held by company are not modified.
func NewStore(company *models.Company) *Store {
	s := &Store{company: company, now: time.Now}
	company.FinancialStatements = dedupeStatements(company.Name, company.FinancialStatements)
	company.Budgets = dedupeBudgets(company.Budgets)
	return s
}

// Company returns the underlying aggregate.
func (s *Store) Company() *models.Company {
	return s.company
}

// =============================================================================
// QUERIES
// =============================================================================

// GetStatement returns the statement for year. The boolean is false when the
// company has no statement for that year.
func (s *Store) GetStatement(year int) (models.FinancialStatement, bool) {
	for _, st := range s.company.FinancialStatements {
		if st.Year == year {
			return st, true
		}
	}
	return models.FinancialStatement{}, false
}

// GetStatementRange returns the statements with startYear <= year <= endYear
// in ascending year order. It is empty when nothing matches or startYear >
// endYear.
func (s *Store) GetStatementRange(startYear, endYear int) []models.FinancialStatement {
	out := []models.FinancialStatement{}
	if startYear > endYear {
		return out
	}
	for _, st := range s.company.FinancialStatements {
		if st.Year >= startYear && st.Year <= endYear {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// LatestYear returns the most recent statement year, recomputed on every call.
func (s *Store) LatestYear() (int, bool) {
	if len(s.company.FinancialStatements) == 0 {
		return 0, false
	}
	latest := s.company.FinancialStatements[0].Year
	for _, st := range s.company.FinancialStatements[1:] {
		if st.Year > latest {
			latest = st.Year
		}
	}
	return latest, true
}

// CalculateRatios derives the ratio set for year from the statement stored at
// call time. The boolean is false when there is no statement for year.
func (s *Store) CalculateRatios(year int) (calc.RatioSet, bool) {
	st, ok := s.GetStatement(year)
	if !ok {
		return calc.RatioSet{}, false
	}
	return calc.CalculateRatios(st), true
}

// Statements returns a copy of all statements in ascending year order.
func (s *Store) Statements() []models.FinancialStatement {
	out := make([]models.FinancialStatement, len(s.company.FinancialStatements))
	copy(out, s.company.FinancialStatements)
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// Years lists the statement years in ascending order.
func (s *Store) Years() []int {
	years := make([]int, 0, len(s.company.FinancialStatements))
	for _, st := range s.company.FinancialStatements {
		years = append(years, st.Year)
	}
	sort.Ints(years)
	return years
}

// Preferences returns the company's analysis preferences.
func (s *Store) Preferences() models.AnalysisPreferences {
	return s.company.AnalysisPreferences
}

// AnalysisWindow is the inclusive year range covered by the preferred number
// of years to analyze, ending at the latest statement.
func (s *Store) AnalysisWindow() (start, end int, ok bool) {
	end, ok = s.LatestYear()
	if !ok {
		return 0, 0, false
	}
	n := s.company.AnalysisPreferences.YearsToAnalyze
	if n < models.MinYearsToAnalyze {
		n = models.DefaultYearsToAnalyze
	}
	if n > models.MaxYearsToAnalyze {
		n = models.MaxYearsToAnalyze
	}
	return end - n + 1, end, true
}

// =============================================================================
// MUTATIONS
// =============================================================================

// UpsertStatement stores stmt, replacing any statement for the same year.
// It reports whether an existing statement was replaced.
func (s *Store) UpsertStatement(stmt models.FinancialStatement) bool {
	defer s.company.Touch(s.now())

	for i, st := range s.company.FinancialStatements {
		if st.Year == stmt.Year {
			s.company.FinancialStatements[i] = stmt
			return true
		}
	}
	s.company.FinancialStatements = append(s.company.FinancialStatements, stmt)
	sort.Slice(s.company.FinancialStatements, func(i, j int) bool {
		return s.company.FinancialStatements[i].Year < s.company.FinancialStatements[j].Year
	})
	return false
}

// RemoveStatement deletes the statement for year, reporting whether one existed.
func (s *Store) RemoveStatement(year int) bool {
	for i, st := range s.company.FinancialStatements {
		if st.Year == year {
			s.company.FinancialStatements = append(s.company.FinancialStatements[:i], s.company.FinancialStatements[i+1:]...)
			s.company.Touch(s.now())
			return true
		}
	}
	return false
}

// SetPreferences replaces the analysis preferences after validating them.
func (s *Store) SetPreferences(p models.AnalysisPreferences) error {
	prev := s.company.AnalysisPreferences
	s.company.AnalysisPreferences = p
	if err := s.company.Validate(); err != nil {
		s.company.AnalysisPreferences = prev
		return fmt.Errorf("set preferences: %w", err)
	}
	s.company.Touch(s.now())
	return nil
}

func dedupeStatements(company string, in []models.FinancialStatement) []models.FinancialStatement {
	byYear := make(map[int]models.FinancialStatement, len(in))
	for _, st := range in {
		if _, dup := byYear[st.Year]; dup {
			fmt.Printf("[RECORD] WARNING: %s has more than one statement for %d; keeping the last\n", company, st.Year)
		}
		byYear[st.Year] = st
	}

	out := make([]models.FinancialStatement, 0, len(byYear))
	for _, st := range byYear {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}
