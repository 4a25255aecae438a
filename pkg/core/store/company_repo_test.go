package store

import (
	"context"
	"errors"
	"financial_analysis/pkg/models"
	"os"
	"path/filepath"
	"testing"
)

func newCompany(user, name string) *models.Company {
	c := models.NewCompany(user, name, "retail", models.SizeSmall)
	c.FinancialStatements = []models.FinancialStatement{{Year: 2024}}
	return c
}

func TestCompanyRepo_FileRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewCompanyRepo(nil, t.TempDir())

	c := newCompany("user-1", "Acme")
	c.FinancialStatements[0].IncomeStatement.Revenue = 1000
	if err := repo.Save(ctx, c); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if c.Version != 1 {
		t.Errorf("Version after first save = %d, want 1", c.Version)
	}

	loaded, err := repo.Load(ctx, c.ID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Name != "Acme" || loaded.Version != 1 {
		t.Errorf("loaded %s v%d", loaded.Name, loaded.Version)
	}
	if got := loaded.FinancialStatements[0].IncomeStatement.Revenue; got != 1000 {
		t.Errorf("revenue = %f, want 1000", got)
	}
	if loaded.LastUpdated.IsZero() {
		t.Error("LastUpdated should be stamped")
	}
}

func TestCompanyRepo_VersionConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewCompanyRepo(nil, t.TempDir())

	c := newCompany("user-1", "Acme")
	if err := repo.Save(ctx, c); err != nil {
		t.Fatal(err)
	}

	a, _ := repo.Load(ctx, c.ID)
	b, _ := repo.Load(ctx, c.ID)

	a.Sector = "wholesale"
	if err := repo.Save(ctx, a); err != nil {
		t.Fatalf("first writer should win: %v", err)
	}
	b.Sector = "services"
	if err := repo.Save(ctx, b); !errors.Is(err, ErrVersionConflict) {
		t.Errorf("stale save: got %v, want ErrVersionConflict", err)
	}
	if b.Version != 1 {
		t.Errorf("failed save must not bump version, got %d", b.Version)
	}

	// A brand-new company colliding with an existing id is also stale.
	dup := newCompany("user-1", "Other")
	dup.ID = c.ID
	if err := repo.Save(ctx, dup); !errors.Is(err, ErrVersionConflict) {
		t.Errorf("duplicate create: got %v, want ErrVersionConflict", err)
	}
}

func TestCompanyRepo_LoadMissing(t *testing.T) {
	repo := NewCompanyRepo(nil, t.TempDir())
	if _, err := repo.Load(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestCompanyRepo_ListByUser(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := NewCompanyRepo(nil, dir)

	zeta := newCompany("user-1", "Zeta")
	alpha := newCompany("user-1", "Alpha")
	retired := newCompany("user-1", "Retired")
	retired.Deactivate(retired.CreatedAt)
	other := newCompany("user-2", "Other")

	for _, c := range []*models.Company{zeta, alpha, retired, other} {
		if err := repo.Save(ctx, c); err != nil {
			t.Fatalf("Save %s: %v", c.Name, err)
		}
	}
	// junk in the vault is skipped
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}

	list, err := repo.ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Name != "Alpha" || list[1].Name != "Zeta" {
		names := []string{}
		for _, c := range list {
			names = append(names, c.Name)
		}
		t.Errorf("ListByUser = %v, want [Alpha Zeta]", names)
	}
}

func TestCompanyRepo_RejectsInvalid(t *testing.T) {
	repo := NewCompanyRepo(nil, t.TempDir())

	c := newCompany("user-1", "Acme")
	c.AnalysisPreferences.YearsToAnalyze = 11
	if err := repo.Save(context.Background(), c); !errors.Is(err, models.ErrInvalidCompany) {
		t.Errorf("got %v, want ErrInvalidCompany", err)
	}

	c = newCompany("user-1", "Acme")
	c.ID = "../escape"
	if err := repo.Save(context.Background(), c); !errors.Is(err, models.ErrInvalidCompany) {
		t.Errorf("got %v, want ErrInvalidCompany for path id", err)
	}
}
