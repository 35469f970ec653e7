package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"siembra-valores-api/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Plant{},
		&domain.Service{},
		&domain.History{},
	))
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&[]domain.Service{
		{ID: 1, Name: "Riego", Description: "Aplicación de agua"},
		{ID: 2, Name: "Poda", Description: "Corte de ramas"},
		{ID: 3, Name: "Fertilización", Description: "Abono"},
	}).Error)
}
