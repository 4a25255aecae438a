package main

import (
	"context"
	"errors"
	"financial_analysis/pkg/core/config"
	"financial_analysis/pkg/core/ingest"
	"financial_analysis/pkg/core/record"
	"financial_analysis/pkg/core/store"
	"financial_analysis/pkg/models"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func main() {
	file := flag.String("file", "", "Upload to import (.json, .hjson, .html)")
	year := flag.Int("year", 0, "Fiscal year of an HTML table upload")
	companyID := flag.String("id", "", "Existing company to update")
	userID := flag.String("user", "", "Owner of a new company")
	name := flag.String("name", "", "Name of a new company")
	sector := flag.String("sector", "", "Sector of a new company")
	size := flag.String("size", string(models.SizeSmall), "Size of a new company: small, medium or large")
	configPath := flag.String("config", config.DefaultPath, "Settings file")
	flag.Parse()

	if *file == "" {
		fmt.Println("Error: No upload provided")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	statements, err := readUpload(*file, *year)
	if err != nil {
		fmt.Printf("Error reading upload: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	repo, err := store.OpenCompanyRepo(ctx, cfg.Database.URL, cfg.Vault.Dir)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	var company *models.Company
	if *companyID != "" {
		company, err = repo.Load(ctx, *companyID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	} else {
		company = &models.Company{
			UserID:    *userID,
			Name:      *name,
			Sector:    *sector,
			Size:      models.SizeClass(*size),
			IsActive:  true,
			CreatedAt: time.Now().UTC(),
		}
		cfg.ApplyTo(company)
	}

	s := record.NewStore(company)
	for _, st := range statements {
		if s.UpsertStatement(st) {
			fmt.Printf("[INGEST] %d: replaced existing statement\n", st.Year)
		} else {
			fmt.Printf("[INGEST] %d: added\n", st.Year)
		}
	}
	company.DataSource = models.SourceUpload

	if err := repo.Save(ctx, company); err != nil {
		if errors.Is(err, store.ErrVersionConflict) {
			fmt.Println("Error: the company changed while importing; reload and retry")
		} else {
			fmt.Printf("Error saving: %v\n", err)
		}
		os.Exit(1)
	}

	latest, _ := s.LatestYear()
	fmt.Printf("[INGEST] Saved %s (%s) version %d, years %v, latest %d\n",
		company.Name, company.ID, company.Version, s.Years(), latest)
}

func readUpload(path string, year int) ([]models.FinancialStatement, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		if year <= 0 {
			return nil, fmt.Errorf("-year is required for table uploads")
		}
		st, err := ingest.ParseStatementTable(string(raw), year)
		if err != nil {
			return nil, err
		}
		return []models.FinancialStatement{st}, nil
	default:
		return ingest.DecodeStatements(string(raw))
	}
}
