package main

import (
	"context"
	"encoding/json"
	"financial_analysis/pkg/core/analysis"
	"financial_analysis/pkg/core/calc"
	"financial_analysis/pkg/core/config"
	"financial_analysis/pkg/core/ingest"
	"financial_analysis/pkg/core/record"
	"financial_analysis/pkg/core/report"
	"financial_analysis/pkg/core/store"
	"financial_analysis/pkg/models"
	"flag"
	"fmt"
	"os"
)

func main() {
	companyFile := flag.String("company", "", "Path to a company JSON/HJSON file")
	companyID := flag.String("id", "", "Company id in the configured store")
	year := flag.Int("year", 0, "Single fiscal year (default: the company's analysis window)")
	format := flag.String("format", "md", "Output: md, html or json")
	lang := flag.String("lang", "", "Report language: ar or en (default: company preference)")
	configPath := flag.String("config", config.DefaultPath, "Settings file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	company, err := loadCompany(ctx, cfg, *companyFile, *companyID)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	s := record.NewStore(company)
	latest, ok := s.LatestYear()
	if !ok {
		fmt.Printf("Error: %s has no financial statements\n", company.Name)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "[RATIOS] %s: %d statement(s), latest %d\n", company.Name, len(s.Years()), latest)

	engine := analysis.NewAnalysisEngine()
	var result *analysis.CompanyAnalysis
	if *year != 0 {
		if _, ok := s.GetStatement(*year); !ok {
			fmt.Printf("Error: no statement for %d (available: %v)\n", *year, s.Years())
			os.Exit(1)
		}
		result, err = engine.AnalyzeRange(s, *year, *year)
	} else {
		result, err = engine.Analyze(s)
	}
	if err != nil {
		fmt.Printf("Error analyzing: %v\n", err)
		os.Exit(1)
	}

	reportLang := company.AnalysisPreferences.ReportLanguage
	if *lang != "" {
		reportLang = models.ReportLanguage(*lang)
	}

	switch *format {
	case "md":
		fmt.Print(report.Document(result, reportLang))
	case "html":
		html, err := report.RenderHTML(report.Document(result, reportLang))
		if err != nil {
			fmt.Printf("Error rendering: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(html)
	case "json":
		// Only ratio sets: they encode division-by-zero sentinels as null.
		sets := make([]calc.RatioSet, 0, len(result.Years))
		for _, y := range result.Years {
			sets = append(sets, result.Timeline[y].Ratios)
		}
		out, err := json.MarshalIndent(sets, "", "  ")
		if err != nil {
			fmt.Printf("Error encoding: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
	default:
		fmt.Printf("Unknown format: %s\n", *format)
		os.Exit(1)
	}
}

func loadCompany(ctx context.Context, cfg *config.Config, file, id string) (*models.Company, error) {
	switch {
	case file != "":
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		c, err := ingest.DecodeCompany(string(raw))
		if err != nil {
			return nil, err
		}
		cfg.ApplyTo(c)
		return c, nil
	case id != "":
		repo, err := store.OpenCompanyRepo(ctx, cfg.Database.URL, cfg.Vault.Dir)
		if err != nil {
			return nil, err
		}
		return repo.Load(ctx, id)
	default:
		return nil, fmt.Errorf("one of -company or -id is required")
	}
}
