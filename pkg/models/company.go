package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidCompany is returned by Company.Validate.
var ErrInvalidCompany = errors.New("invalid company")

const (
	DefaultCountry        = "Saudi Arabia"
	DefaultCurrency       = "SAR"
	DefaultFiscalYearEnd  = 12
	DefaultYearsToAnalyze = 5
	MinYearsToAnalyze     = 1
	MaxYearsToAnalyze     = 10
)

type SizeClass string

const (
	SizeSmall  SizeClass = "small"
	SizeMedium SizeClass = "medium"
	SizeLarge  SizeClass = "large"
)

func (s SizeClass) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// ComparisonScope is the geographic level peers are drawn from.
type ComparisonScope string

const (
	ScopeLocal      ComparisonScope = "local"
	ScopeRegional   ComparisonScope = "regional"
	ScopeGCC        ComparisonScope = "gcc"
	ScopeArab       ComparisonScope = "arab"
	ScopeMiddleEast ComparisonScope = "middle_east"
	ScopeAsia       ComparisonScope = "asia"
	ScopeAfrica     ComparisonScope = "africa"
	ScopeEurope     ComparisonScope = "europe"
	ScopeAmericas   ComparisonScope = "americas"
	ScopeGlobal     ComparisonScope = "global"
)

func (s ComparisonScope) Valid() bool {
	switch s {
	case ScopeLocal, ScopeRegional, ScopeGCC, ScopeArab, ScopeMiddleEast,
		ScopeAsia, ScopeAfrica, ScopeEurope, ScopeAmericas, ScopeGlobal:
		return true
	}
	return false
}

type AnalysisDepth string

const (
	DepthBasicClassical      AnalysisDepth = "basic_classical"
	DepthAppliedIntermediate AnalysisDepth = "applied_intermediate"
	DepthAdvancedComplex     AnalysisDepth = "advanced_complex"
	DepthComprehensive       AnalysisDepth = "comprehensive"
)

func (d AnalysisDepth) Valid() bool {
	switch d {
	case DepthBasicClassical, DepthAppliedIntermediate, DepthAdvancedComplex, DepthComprehensive:
		return true
	}
	return false
}

type ReportLanguage string

const (
	LanguageArabic  ReportLanguage = "ar"
	LanguageEnglish ReportLanguage = "en"
)

func (l ReportLanguage) Valid() bool {
	return l == LanguageArabic || l == LanguageEnglish
}

// DataSource records where the statements came from.
type DataSource string

const (
	SourceUpload DataSource = "upload"
	SourceManual DataSource = "manual"
	SourceAPI    DataSource = "api"
)

func (s DataSource) Valid() bool {
	switch s {
	case SourceUpload, SourceManual, SourceAPI:
		return true
	}
	return false
}

// =============================================================================
// BUDGETS & PREFERENCES
// =============================================================================

// Budget is a forecast entry for one year, independent of actuals.
type Budget struct {
	Year int        `json:"year"`
	Data BudgetData `json:"budgetData"`
}

type BudgetData struct {
	ProjectedRevenue   float64 `json:"projectedRevenue"`
	ProjectedExpenses  float64 `json:"projectedExpenses"`
	ProjectedNetIncome float64 `json:"projectedNetIncome"`
	ProjectedCashFlow  float64 `json:"projectedCashFlow"`
	CapitalExpenditure float64 `json:"capitalExpenditure"`
}

type AnalysisPreferences struct {
	ComparisonScope ComparisonScope `json:"comparisonScope"`
	YearsToAnalyze  int             `json:"yearsToAnalyze"`
	AnalysisTypes   []AnalysisDepth `json:"analysisTypes"`
	ReportLanguage  ReportLanguage  `json:"reportLanguage"`
}

// DefaultPreferences returns the preferences a newly onboarded company starts with.
func DefaultPreferences() AnalysisPreferences {
	return AnalysisPreferences{
		ComparisonScope: ScopeLocal,
		YearsToAnalyze:  DefaultYearsToAnalyze,
		AnalysisTypes:   []AnalysisDepth{DepthBasicClassical},
		ReportLanguage:  LanguageArabic,
	}
}

// =============================================================================
// COMPANY AGGREGATE
// =============================================================================

// Company is the aggregate root owning a company's statements, budgets and
// analysis preferences.
type Company struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Name          string    `json:"name"`
	Sector        string    `json:"sector"`
	Activity      string    `json:"activity"`
	LegalEntity   string    `json:"legalEntity"`
	Country       string    `json:"country"`
	Currency      string    `json:"currency"`
	FiscalYearEnd int       `json:"fiscalYearEnd"` // month, 1-12
	Size          SizeClass `json:"size"`
	IsPublic      bool      `json:"isPublic"`
	StockSymbol   string    `json:"stockSymbol,omitempty"`

	FinancialStatements []FinancialStatement `json:"financialStatements"`
	Budgets             []Budget             `json:"budgets"`
	AnalysisPreferences AnalysisPreferences  `json:"analysisPreferences"`

	DataSource  DataSource `json:"dataSource"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastUpdated time.Time  `json:"lastUpdated"`

	// Version is the optimistic-lock counter maintained by the store.
	Version int `json:"version"`
}

// NewCompany creates a company for an onboarding user with every default applied.
func NewCompany(userID, name, sector string, size SizeClass) *Company {
	now := time.Now().UTC()
	c := &Company{
		ID:       uuid.New().String(),
		UserID:   userID,
		Name:     name,
		Sector:   sector,
		Size:     size,
		IsActive: true,
	}
	c.ApplyDefaults()
	c.CreatedAt = now
	c.LastUpdated = now
	return c
}

// ApplyDefaults fills zero-valued attributes with their documented defaults.
// Used after decoding a company that omitted them.
func (c *Company) ApplyDefaults() {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Country == "" {
		c.Country = DefaultCountry
	}
	if c.Currency == "" {
		c.Currency = DefaultCurrency
	}
	if c.FiscalYearEnd == 0 {
		c.FiscalYearEnd = DefaultFiscalYearEnd
	}
	if c.DataSource == "" {
		c.DataSource = SourceManual
	}

	def := DefaultPreferences()
	p := &c.AnalysisPreferences
	if p.ComparisonScope == "" {
		p.ComparisonScope = def.ComparisonScope
	}
	if p.YearsToAnalyze == 0 {
		p.YearsToAnalyze = def.YearsToAnalyze
	}
	if len(p.AnalysisTypes) == 0 {
		p.AnalysisTypes = def.AnalysisTypes
	}
	if p.ReportLanguage == "" {
		p.ReportLanguage = def.ReportLanguage
	}
}

// Validate checks required attributes and enum membership. Accounting
// identities are not checked here.
func (c *Company) Validate() error {
	if c.UserID == "" {
		return fmt.Errorf("%w: user is required", ErrInvalidCompany)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCompany)
	}
	if !c.Size.Valid() {
		return fmt.Errorf("%w: size %q", ErrInvalidCompany, c.Size)
	}
	if c.FiscalYearEnd < 1 || c.FiscalYearEnd > 12 {
		return fmt.Errorf("%w: fiscal year end month %d", ErrInvalidCompany, c.FiscalYearEnd)
	}
	if !c.DataSource.Valid() {
		return fmt.Errorf("%w: data source %q", ErrInvalidCompany, c.DataSource)
	}

	p := c.AnalysisPreferences
	if !p.ComparisonScope.Valid() {
		return fmt.Errorf("%w: comparison scope %q", ErrInvalidCompany, p.ComparisonScope)
	}
	if p.YearsToAnalyze < MinYearsToAnalyze || p.YearsToAnalyze > MaxYearsToAnalyze {
		return fmt.Errorf("%w: years to analyze %d out of range [%d, %d]",
			ErrInvalidCompany, p.YearsToAnalyze, MinYearsToAnalyze, MaxYearsToAnalyze)
	}
	for _, d := range p.AnalysisTypes {
		if !d.Valid() {
			return fmt.Errorf("%w: analysis type %q", ErrInvalidCompany, d)
		}
	}
	if !p.ReportLanguage.Valid() {
		return fmt.Errorf("%w: report language %q", ErrInvalidCompany, p.ReportLanguage)
	}
	return nil
}

// Deactivate soft-retires the company. There is no hard delete.
func (c *Company) Deactivate(now time.Time) {
	c.IsActive = false
	c.LastUpdated = now
}

// Touch records a mutation time.
func (c *Company) Touch(now time.Time) {
	c.LastUpdated = now
}
