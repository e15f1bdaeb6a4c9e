// Package testutil provides shared database helpers for tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/steelstack/crm-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbCounter atomic.Int64

// SetupTestDB opens a fresh in-memory sqlite database with the full schema.
// Each call gets its own database so tests stay independent.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared&_foreign_keys=on", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "failed to open in-memory database")

	err = db.AutoMigrate(
		&domain.User{},
		&domain.Company{},
		&domain.Contact{},
		&domain.Salesperson{},
		&domain.Deal{},
		&domain.DealContact{},
		&domain.DealStageHistory{},
		&domain.Product{},
		&domain.Quote{},
		&domain.QuoteItem{},
		&domain.QuoteSequence{},
		&domain.MailToken{},
	)
	require.NoError(t, err, "failed to migrate schema")

	return db
}

// CreateTestContact inserts a contact with the given email
func CreateTestContact(t *testing.T, db *gorm.DB, email string) *domain.Contact {
	t.Helper()
	contact := &domain.Contact{
		FirstName: "Test",
		LastName:  "Contact",
		Email:     email,
	}
	require.NoError(t, db.Create(contact).Error)
	return contact
}

// CreateTestDeal inserts a deal in the given stage
func CreateTestDeal(t *testing.T, db *gorm.DB, name string, stage domain.DealStage, value string) *domain.Deal {
	t.Helper()
	deal := &domain.Deal{
		Name:  name,
		Stage: stage,
		Value: decimal.RequireFromString(value),
	}
	require.NoError(t, db.Create(deal).Error)
	return deal
}

// CreateTestProduct inserts an active catalog product
func CreateTestProduct(t *testing.T, db *gorm.DB, name, sku, price string) *domain.Product {
	t.Helper()
	product := &domain.Product{
		Name:     name,
		SKU:      sku,
		Price:    decimal.RequireFromString(price),
		IsActive: true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

// CreateTestSalesperson inserts a salesperson
func CreateTestSalesperson(t *testing.T, db *gorm.DB, name string) *domain.Salesperson {
	t.Helper()
	sp := &domain.Salesperson{
		Name:  name,
		Email: "sales@example.com",
		Phone: "555-0100",
	}
	require.NoError(t, db.Create(sp).Error)
	return sp
}
