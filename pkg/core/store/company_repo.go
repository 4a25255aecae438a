package store

import (
	"context"
	"encoding/json"
	"errors"
	"financial_analysis/pkg/models"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound        = errors.New("company not found")
	ErrVersionConflict = errors.New("company was modified concurrently")
)

// CompanyRepo loads and saves Company aggregates.
// Supports Hybrid Vault: DB (Primary) + File System (Fallback/Local)
type CompanyRepo struct {
	pool    *pgxpool.Pool
	fileDir string
	now     func() time.Time

	// writes are serialized so the version check and the write are atomic
	// for the file vault
	mu sync.Mutex
}

// NewCompanyRepo creates a repository. If pool is nil, companies are stored
// as JSON files in dir (default .vault/companies).
func NewCompanyRepo(pool *pgxpool.Pool, dir string) *CompanyRepo {
	if pool == nil && dir == "" {
		dir = filepath.Join(".vault", "companies")
	}
	if pool == nil {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("[WARNING] Check company vault dir: %v\n", err)
		}
	}
	return &CompanyRepo{pool: pool, fileDir: dir, now: time.Now}
}

// OpenCompanyRepo connects to Postgres when dbURL is set and falls back to
// the file vault in dir otherwise.
func OpenCompanyRepo(ctx context.Context, dbURL, dir string) (*CompanyRepo, error) {
	if dbURL == "" {
		fmt.Printf("[STORE] No database configured, using file vault %s\n", dir)
		return NewCompanyRepo(nil, dir), nil
	}
	if err := InitDB(ctx, dbURL); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	fmt.Println("[STORE] Connected to Postgres")
	return NewCompanyRepo(GetPool(), ""), nil
}

// Save persists c. c.Version must equal the stored version (zero for a new
// company) or ErrVersionConflict is returned; on success c.Version is
// incremented and LastUpdated stamped.
func (r *CompanyRepo) Save(ctx context.Context, c *models.Company) error {
	if c == nil {
		return fmt.Errorf("%w: nil company", models.ErrInvalidCompany)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ID == "" || strings.ContainsAny(c.ID, `/\`) || c.ID == "." || c.ID == ".." {
		return fmt.Errorf("%w: id %q", models.ErrInvalidCompany, c.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := *c
	next.Version = c.Version + 1
	next.LastUpdated = r.now().UTC()
	if next.CreatedAt.IsZero() {
		next.CreatedAt = next.LastUpdated
	}

	data, err := json.MarshalIndent(&next, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal company: %w", err)
	}

	if r.pool != nil {
		err = r.saveDB(ctx, &next, c.Version, data)
	} else {
		err = r.saveFile(&next, c.Version, data)
	}
	if err != nil {
		return err
	}

	c.Version = next.Version
	c.LastUpdated = next.LastUpdated
	c.CreatedAt = next.CreatedAt
	return nil
}

func (r *CompanyRepo) saveDB(ctx context.Context, c *models.Company, expected int, data []byte) error {
	var tag pgconn.CommandTag
	var err error

	if expected == 0 {
		query := `
			INSERT INTO companies (id, user_id, name, is_active, version, data, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO NOTHING
		`
		tag, err = r.pool.Exec(ctx, query,
			c.ID, c.UserID, c.Name, c.IsActive, c.Version, data, c.CreatedAt, c.LastUpdated)
	} else {
		query := `
			UPDATE companies
			SET user_id = $2, name = $3, is_active = $4, version = $5, data = $6, updated_at = $7
			WHERE id = $1 AND version = $8
		`
		tag, err = r.pool.Exec(ctx, query,
			c.ID, c.UserID, c.Name, c.IsActive, c.Version, data, c.LastUpdated, expected)
	}
	if err != nil {
		return fmt.Errorf("failed to save company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s at version %d", ErrVersionConflict, c.ID, expected)
	}
	return nil
}

func (r *CompanyRepo) saveFile(c *models.Company, expected int, data []byte) error {
	path := r.path(c.ID)

	stored := 0
	if existing, err := r.loadFile(path); err == nil {
		stored = existing.Version
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	if stored != expected {
		return fmt.Errorf("%w: %s stored at version %d, saving from %d", ErrVersionConflict, c.ID, stored, expected)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write company file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace company file: %w", err)
	}
	return nil
}

// Load retrieves a company by id.
func (r *CompanyRepo) Load(ctx context.Context, id string) (*models.Company, error) {
	if r.pool != nil {
		query := `SELECT data, version FROM companies WHERE id = $1`
		var data []byte
		var version int
		err := r.pool.QueryRow(ctx, query, id).Scan(&data, &version)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load company: %w", err)
		}
		return decodeCompany(data, version)
	}

	if strings.ContainsAny(id, `/\`) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r.loadFile(r.path(id))
}

// ListByUser returns the user's active companies ordered by name.
func (r *CompanyRepo) ListByUser(ctx context.Context, userID string) ([]*models.Company, error) {
	var out []*models.Company

	if r.pool != nil {
		query := `
			SELECT data, version
			FROM companies
			WHERE user_id = $1 AND is_active
			ORDER BY name
		`
		rows, err := r.pool.Query(ctx, query, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list companies: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var data []byte
			var version int
			if err := rows.Scan(&data, &version); err != nil {
				return nil, fmt.Errorf("failed to scan company: %w", err)
			}
			c, err := decodeCompany(data, version)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
		return out, rows.Err()
	}

	files, err := filepath.Glob(filepath.Join(r.fileDir, "*.json"))
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		c, err := r.loadFile(f)
		if err != nil {
			fmt.Printf("[WARNING] Skipping unreadable company file %s: %v\n", filepath.Base(f), err)
			continue
		}
		if c.UserID == userID && c.IsActive {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CompanyRepo) path(id string) string {
	return filepath.Join(r.fileDir, id+".json")
}

func (r *CompanyRepo) loadFile(path string) (*models.Company, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, strings.TrimSuffix(filepath.Base(path), ".json"))
		}
		return nil, fmt.Errorf("failed to read company file: %w", err)
	}
	var c models.Company
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal company file: %w", err)
	}
	return &c, nil
}

func decodeCompany(data []byte, version int) (*models.Company, error) {
	var c models.Company
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal company: %w", err)
	}
	// the column is authoritative
	c.Version = version
	return &c, nil
}
