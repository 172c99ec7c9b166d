package migration_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizzeria/pkg/database"
	"github.com/shashiranjanraj/pizzeria/pkg/migration"
)

type widget struct {
	ID   uint
	Name string
}

type createWidgets struct{}

func (createWidgets) Up(db *gorm.DB) error   { return db.AutoMigrate(&widget{}) }
func (createWidgets) Down(db *gorm.DB) error { return db.Migrator().DropTable(&widget{}) }

type failing struct{}

func (failing) Up(*gorm.DB) error   { return errors.New("boom") }
func (failing) Down(*gorm.DB) error { return nil }

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(sqlite.Open(":memory:"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestRunAndRollback(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	var reg migration.Registry
	reg.Add("20260101000000_create_widgets", createWidgets{})

	var out bytes.Buffer
	r := migration.NewWithRegistry(db, &out, &reg)

	pending, err := r.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"20260101000000_create_widgets"}, pending)

	require.NoError(t, r.Run(ctx))
	assert.True(t, db.Migrator().HasTable(&widget{}))
	assert.Contains(t, out.String(), "Migrated:  20260101000000_create_widgets")

	pending, err = r.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	out.Reset()
	require.NoError(t, r.Run(ctx))
	assert.Contains(t, out.String(), "Nothing to migrate.")

	out.Reset()
	require.NoError(t, r.Status(ctx))
	assert.Contains(t, out.String(), "Ran")

	require.NoError(t, r.Rollback(ctx))
	assert.False(t, db.Migrator().HasTable(&widget{}))

	out.Reset()
	require.NoError(t, r.Rollback(ctx))
	assert.Contains(t, out.String(), "Nothing to roll back.")
}

func TestRunStopsOnFailureWithoutRecording(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	var reg migration.Registry
	reg.Add("20260101000000_create_widgets", createWidgets{})
	reg.Add("20260101000001_broken", failing{})

	r := migration.NewWithRegistry(db, nil, &reg)
	err := r.Run(ctx)
	assert.ErrorContains(t, err, "20260101000001_broken up: boom")

	pending, err := r.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"20260101000001_broken"}, pending)
}
