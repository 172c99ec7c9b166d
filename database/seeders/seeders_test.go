package seeders_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/database/seeders"
	"github.com/shashiranjanraj/pizzeria/internal/testdb"
)

func TestRunAllIsRepeatable(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, seeders.RunAll(ctx, db, &out))
	require.NoError(t, seeders.RunAll(ctx, db, &out))

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.Equal(t, int64(len(seeders.DemoCategories)), count)
	assert.Contains(t, out.String(), "Running seeder: categories … done")
}
