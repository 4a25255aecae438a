// Package report renders analyses as Markdown tables and HTML.
package report

import (
	"bytes"
	"financial_analysis/pkg/core/analysis"
	"financial_analysis/pkg/core/calc"
	"financial_analysis/pkg/models"
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var ratioLabels = map[models.ReportLanguage]map[string]string{
	models.LanguageEnglish: {
		calc.RatioCurrent:           "Current Ratio",
		calc.RatioQuick:             "Quick Ratio",
		calc.RatioCash:              "Cash Ratio",
		calc.RatioGrossProfitMargin: "Gross Profit Margin",
		calc.RatioOperatingMargin:   "Operating Margin",
		calc.RatioNetProfitMargin:   "Net Profit Margin",
		calc.RatioROA:               "Return on Assets",
		calc.RatioROE:               "Return on Equity",
		calc.RatioDebtToAssets:      "Debt to Assets",
		calc.RatioDebtToEquity:      "Debt to Equity",
		calc.RatioInterestCoverage:  "Interest Coverage",
		calc.RatioAssetTurnover:     "Asset Turnover",
	},
	models.LanguageArabic: {
		calc.RatioCurrent:           "نسبة التداول",
		calc.RatioQuick:             "النسبة السريعة",
		calc.RatioCash:              "نسبة النقدية",
		calc.RatioGrossProfitMargin: "هامش الربح الإجمالي",
		calc.RatioOperatingMargin:   "هامش الربح التشغيلي",
		calc.RatioNetProfitMargin:   "هامش صافي الربح",
		calc.RatioROA:               "العائد على الأصول",
		calc.RatioROE:               "العائد على حقوق الملكية",
		calc.RatioDebtToAssets:      "نسبة الديون إلى الأصول",
		calc.RatioDebtToEquity:      "نسبة الديون إلى حقوق الملكية",
		calc.RatioInterestCoverage:  "معدل تغطية الفوائد",
		calc.RatioAssetTurnover:     "معدل دوران الأصول",
	},
}

var headings = map[models.ReportLanguage]struct {
	title, ratio, checks, balanced string
}{
	models.LanguageEnglish: {"Financial Ratios", "Ratio", "Verification", "All accounting identities balance."},
	models.LanguageArabic:  {"النسب المالية", "النسبة", "التحقق", "جميع المعادلات المحاسبية متوازنة."},
}

// Shown as percentages; the rest as multiples.
var percentRatios = map[string]bool{
	calc.RatioGrossProfitMargin: true,
	calc.RatioOperatingMargin:   true,
	calc.RatioNetProfitMargin:   true,
	calc.RatioROA:               true,
	calc.RatioROE:               true,
	calc.RatioDebtToAssets:      true,
}

func language(lang models.ReportLanguage) models.ReportLanguage {
	if lang.Valid() {
		return lang
	}
	return models.LanguageEnglish
}

// RatioTable renders one row per ratio and one column per analyzed year.
// Division-by-zero sentinels print as N/A.
func RatioTable(a *analysis.CompanyAnalysis, lang models.ReportLanguage) string {
	lang = language(lang)
	labels := ratioLabels[lang]

	var sb strings.Builder
	sb.WriteString("| " + headings[lang].ratio + " |")
	for _, y := range a.Years {
		sb.WriteString(" " + strconv.Itoa(y) + " |")
	}
	sb.WriteString("\n|---|")
	for range a.Years {
		sb.WriteString("---:|")
	}
	sb.WriteString("\n")

	for _, name := range calc.RatioNames() {
		sb.WriteString("| " + labels[name] + " |")
		for _, y := range a.Years {
			v, _ := a.Timeline[y].Ratios.Get(name)
			sb.WriteString(" " + formatCell(name, v) + " |")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatCell(name string, v float64) string {
	if percentRatios[name] && !calc.IsIndeterminate(v) {
		return calc.FormatRatio(v*100, 2) + "%"
	}
	return calc.FormatRatio(v, 2)
}

// Document renders the full ratio report: title, ratio table and the
// identity checks that failed, if any.
func Document(a *analysis.CompanyAnalysis, lang models.ReportLanguage) string {
	lang = language(lang)
	h := headings[lang]

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s: %s\n\n", h.title, a.Name)
	sb.WriteString(RatioTable(a, lang))
	fmt.Fprintf(&sb, "\n## %s\n\n", h.checks)

	clean := true
	for _, y := range a.Years {
		for _, w := range a.Timeline[y].Verification.Warnings {
			fmt.Fprintf(&sb, "- %d: %s\n", y, w)
			clean = false
		}
	}
	if clean {
		sb.WriteString(h.balanced + "\n")
	}
	return sb.String()
}

// CleanMarkdown strips an outer ```markdown fence that editors and
// exporters sometimes wrap around a report.
func CleanMarkdown(input string) string {
	cleaned := strings.TrimSpace(input)
	if strings.HasPrefix(cleaned, "```") && strings.HasSuffix(cleaned, "```") && len(cleaned) >= 6 {
		cleaned = strings.TrimPrefix(cleaned, "```markdown")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}
	return cleaned
}

// RenderHTML converts a Markdown report to HTML with GFM tables enabled.
func RenderHTML(markdown string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var buf bytes.Buffer
	if err := md.Convert([]byte(CleanMarkdown(markdown)), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
