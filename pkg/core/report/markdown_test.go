package report

import (
	"financial_analysis/pkg/core/analysis"
	"financial_analysis/pkg/core/calc"
	"financial_analysis/pkg/models"
	"math"
	"strings"
	"testing"
)

func sampleAnalysis() *analysis.CompanyAnalysis {
	r2023 := calc.RatioSet{Year: 2023, CurrentRatio: 1.5, NetProfitMargin: 0.125, InterestCoverage: math.Inf(1)}
	r2024 := calc.RatioSet{Year: 2024, CurrentRatio: math.NaN(), NetProfitMargin: 0.1, InterestCoverage: 6}
	return &analysis.CompanyAnalysis{
		Name:  "Test Co",
		Years: []int{2023, 2024},
		Timeline: map[int]*analysis.YearlyAnalysis{
			2023: {Year: 2023, Ratios: r2023, Verification: calc.VerificationResult{IsBalanced: true}},
			2024: {Year: 2024, Ratios: r2024, Verification: calc.VerificationResult{
				Warnings: []string{"A = L + E out of balance by 10000.00"},
			}},
		},
	}
}

func TestRatioTable_English(t *testing.T) {
	table := RatioTable(sampleAnalysis(), models.LanguageEnglish)
	lines := strings.Split(strings.TrimSpace(table), "\n")

	// header + separator + 12 ratios
	if len(lines) != 14 {
		t.Fatalf("table has %d lines, want 14:\n%s", len(lines), table)
	}
	if lines[0] != "| Ratio | 2023 | 2024 |" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(table, "| Current Ratio | 1.50 | N/A |") {
		t.Errorf("current ratio row missing or wrong:\n%s", table)
	}
	if !strings.Contains(table, "| Net Profit Margin | 12.50% | 10.00% |") {
		t.Errorf("margin row missing or wrong:\n%s", table)
	}
	if !strings.Contains(table, "| Interest Coverage | N/A | 6.00 |") {
		t.Errorf("coverage row missing or wrong:\n%s", table)
	}
}

func TestRatioTable_ArabicAndFallback(t *testing.T) {
	ar := RatioTable(sampleAnalysis(), models.LanguageArabic)
	if !strings.Contains(ar, "نسبة التداول") {
		t.Error("arabic labels expected")
	}
	other := RatioTable(sampleAnalysis(), "fr")
	if !strings.Contains(other, "Current Ratio") {
		t.Error("unknown language should fall back to English")
	}
}

func TestDocument_ListsWarnings(t *testing.T) {
	doc := Document(sampleAnalysis(), models.LanguageEnglish)
	if !strings.HasPrefix(doc, "# Financial Ratios: Test Co") {
		t.Errorf("unexpected title: %q", strings.SplitN(doc, "\n", 2)[0])
	}
	if !strings.Contains(doc, "- 2024: A = L + E out of balance by 10000.00") {
		t.Errorf("warning missing:\n%s", doc)
	}
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML("```markdown\n" + Document(sampleAnalysis(), models.LanguageEnglish) + "\n```")
	if err != nil {
		t.Fatalf("RenderHTML failed: %v", err)
	}
	for _, want := range []string{"<h1>", "<table>", "<th>Ratio</th>", ">N/A</td>", "<td>Current Ratio</td>"} {
		if !strings.Contains(html, want) {
			t.Errorf("html missing %s", want)
		}
	}
}

func TestCleanMarkdown(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"```markdown\n# Title\n```", "# Title"},
		{"```\nplain\n```", "plain"},
		{"  no fence  ", "no fence"},
	}
	for _, tt := range tests {
		if got := CleanMarkdown(tt.in); got != tt.want {
			t.Errorf("CleanMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
