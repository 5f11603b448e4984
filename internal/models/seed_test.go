package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedProductsOnlyWhenEmpty(t *testing.T) {
	db, err := InitDB(DBOptions{Driver: "sqlite", DSN: "file:seed_test?mode=memory&cache=shared", LogLevel: "silent", Pool: DBPoolConfig{MaxOpenConns: 1}})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, AutoMigrate(db))

	defaults := DefaultProducts()
	created, err := SeedProducts(db, defaults)
	require.NoError(t, err)
	assert.Equal(t, len(defaults), created)

	created, err = SeedProducts(db, DefaultProducts())
	require.NoError(t, err)
	assert.Zero(t, created)

	var first Product
	require.NoError(t, db.Order("id asc").First(&first).Error)
	assert.Equal(t, defaults[0].Name, first.Name)
	assert.Equal(t, defaults[0].Price.String(), first.Price.String())
}

func TestInitDBRejectsUnknownDriver(t *testing.T) {
	_, err := InitDB(DBOptions{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)
}
