package session

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/khushal-mali/ai-workout-tracker/internal/models"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PrefsDB is the local durable slot for per-user preferences. Today it
// stores only the weight unit; it is read once per session start and
// written on every unit change.
type PrefsDB struct {
	db *sql.DB
}

// OpenPrefsDB opens (or creates) the SQLite preferences database at
// dir/prefs.db and applies pending migrations.
func OpenPrefsDB(dir string) (*PrefsDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "prefs.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening prefs db: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &PrefsDB{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// WeightUnit returns the stored unit for a user, or the default when no
// preference has been written yet.
func (p *PrefsDB) WeightUnit(userID string) (models.WeightUnit, error) {
	var unit string
	err := p.db.QueryRow(
		`SELECT weight_unit FROM user_prefs WHERE user_id = ?`, userID,
	).Scan(&unit)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultWeightUnit, nil
	}
	if err != nil {
		return models.DefaultWeightUnit, fmt.Errorf("reading weight unit: %w", err)
	}

	u := models.WeightUnit(unit)
	if !u.Valid() {
		return models.DefaultWeightUnit, nil
	}
	return u, nil
}

// SetWeightUnit upserts the stored unit for a user.
func (p *PrefsDB) SetWeightUnit(userID string, unit models.WeightUnit) error {
	_, err := p.db.Exec(
		`INSERT INTO user_prefs (user_id, weight_unit, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id) DO UPDATE
			SET weight_unit = excluded.weight_unit, updated_at = CURRENT_TIMESTAMP`,
		userID, string(unit),
	)
	if err != nil {
		return fmt.Errorf("writing weight unit: %w", err)
	}
	return nil
}

// Close closes the preferences database.
func (p *PrefsDB) Close() error {
	return p.db.Close()
}
