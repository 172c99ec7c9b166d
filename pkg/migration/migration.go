// Package migration is the database migration runner.
//
// Migrations register themselves from init() in database/migrations:
//
//	func init() {
//	    migration.Register("20260101000000_create_users_table", &CreateUsersTable{})
//	}
//
// and run from the CLI:
//
//	pizzeria migrate             // run all pending
//	pizzeria migrate:rollback    // rollback last batch
//	pizzeria migrate:status
package migration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizzeria/pkg/logger"
)

// Migration is the interface every migration must implement.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

type migrationRecord struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (migrationRecord) TableName() string { return "pizzeria_migrations" }

type entry struct {
	name string
	m    Migration
}

// Registry is an ordered set of named migrations.
type Registry struct {
	entries []entry
}

// Add appends a migration. Names should be timestamp-prefixed so they sort
// chronologically.
func (g *Registry) Add(name string, m Migration) {
	g.entries = append(g.entries, entry{name: name, m: m})
}

func (g *Registry) sorted() []entry {
	out := append([]entry(nil), g.entries...)
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

var defaultRegistry Registry

// Register adds a migration to the default registry.
func Register(name string, m Migration) {
	defaultRegistry.Add(name, m)
}

// Runner executes and tracks migrations.
type Runner struct {
	db       *gorm.DB
	out      io.Writer
	registry *Registry
}

// New creates a Runner over the default registry that reports progress to out.
func New(db *gorm.DB, out io.Writer) *Runner {
	return NewWithRegistry(db, out, &defaultRegistry)
}

func NewWithRegistry(db *gorm.DB, out io.Writer, reg *Registry) *Runner {
	if out == nil {
		out = io.Discard
	}
	return &Runner{db: db, out: out, registry: reg}
}

// EnsureTable creates the tracking table if it does not exist.
func (r *Runner) EnsureTable(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&migrationRecord{})
}

func (r *Runner) ran(ctx context.Context) (map[string]migrationRecord, error) {
	var records []migrationRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	out := make(map[string]migrationRecord, len(records))
	for _, rec := range records {
		out[rec.Name] = rec
	}
	return out, nil
}

// Pending returns the names of migrations that have not yet been run.
func (r *Runner) Pending(ctx context.Context) ([]string, error) {
	if err := r.EnsureTable(ctx); err != nil {
		return nil, err
	}
	ran, err := r.ran(ctx)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range r.registry.sorted() {
		if _, ok := ran[e.name]; !ok {
			names = append(names, e.name)
		}
	}
	return names, nil
}

// Run executes all pending migrations in a single batch. Each migration and
// its tracking row commit together.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.EnsureTable(ctx); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}

	ran, err := r.ran(ctx)
	if err != nil {
		return fmt.Errorf("migration: fetch ran: %w", err)
	}

	var pending []entry
	for _, e := range r.registry.sorted() {
		if _, ok := ran[e.name]; !ok {
			pending = append(pending, e)
		}
	}

	if len(pending) == 0 {
		fmt.Fprintln(r.out, "Nothing to migrate.")
		return nil
	}

	batch, err := r.nextBatch(ctx)
	if err != nil {
		return err
	}

	for _, e := range pending {
		fmt.Fprintf(r.out, "  ▶ Migrating: %s\n", e.name)

		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := e.m.Up(tx); err != nil {
				return fmt.Errorf("%s up: %w", e.name, err)
			}
			return tx.Create(&migrationRecord{Name: e.name, Batch: batch}).Error
		})
		if err != nil {
			return fmt.Errorf("migration: %w", err)
		}

		fmt.Fprintf(r.out, "  ✅ Migrated:  %s\n", e.name)
	}

	logger.Info("migration: done", "ran", len(pending), "batch", batch)
	return nil
}

// Rollback reverses all migrations from the most recent batch.
func (r *Runner) Rollback(ctx context.Context) error {
	if err := r.EnsureTable(ctx); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}

	last, err := r.nextBatch(ctx)
	if err != nil {
		return err
	}
	last--
	if last == 0 {
		fmt.Fprintln(r.out, "Nothing to roll back.")
		return nil
	}

	var records []migrationRecord
	if err := r.db.WithContext(ctx).Where("batch = ?", last).Order("id desc").Find(&records).Error; err != nil {
		return err
	}

	byName := make(map[string]Migration, len(r.registry.entries))
	for _, e := range r.registry.entries {
		byName[e.name] = e.m
	}

	for _, rec := range records {
		m, ok := byName[rec.Name]
		if !ok {
			return fmt.Errorf("migration: cannot rollback %s: not registered", rec.Name)
		}

		fmt.Fprintf(r.out, "  ◀ Rolling back: %s\n", rec.Name)

		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := m.Down(tx); err != nil {
				return fmt.Errorf("%s down: %w", rec.Name, err)
			}
			return tx.Delete(&rec).Error
		})
		if err != nil {
			return fmt.Errorf("migration: %w", err)
		}

		fmt.Fprintf(r.out, "  ✅ Rolled back:  %s\n", rec.Name)
	}

	logger.Info("migration: rolled back", "batch", last, "count", len(records))
	return nil
}

// Status prints all migrations and whether each has been run.
func (r *Runner) Status(ctx context.Context) error {
	if err := r.EnsureTable(ctx); err != nil {
		return err
	}

	ran, err := r.ran(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "%-60s  %-8s  %s\n", "Migration", "Status", "Batch")
	fmt.Fprintln(r.out, strings.Repeat("-", 80))
	for _, e := range r.registry.sorted() {
		if rec, ok := ran[e.name]; ok {
			fmt.Fprintf(r.out, "%-60s  %-8s  %d\n", e.name, "Ran", rec.Batch)
		} else {
			fmt.Fprintf(r.out, "%-60s  %-8s  -\n", e.name, "Pending")
		}
	}
	return nil
}

func (r *Runner) nextBatch(ctx context.Context) (int, error) {
	var maxBatch struct{ Max int }
	err := r.db.WithContext(ctx).Model(&migrationRecord{}).
		Select("COALESCE(MAX(batch), 0) as max").
		Scan(&maxBatch).Error
	if err != nil {
		return 0, fmt.Errorf("migration: read batch: %w", err)
	}
	return maxBatch.Max + 1, nil
}
