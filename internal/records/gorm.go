package records

import (
	"context"
	"fmt"

	"payproof/internal/models"

	"gorm.io/gorm"
)

// GormStore keeps payments in any gorm dialect (postgres, sqlite).
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// Migrate creates or updates the payments table.
func (s *GormStore) Migrate() error {
	if err := s.DB.AutoMigrate(&models.Payment{}); err != nil {
		return fmt.Errorf("failed to migrate payments: %w", err)
	}
	return nil
}

func (s *GormStore) Insert(ctx context.Context, payment *models.Payment) error {
	result := gorm.WithResult()
	if err := gorm.G[models.Payment](s.DB, result).Create(ctx, payment); err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("failed to insert payment: %d rows affected", result.RowsAffected)
	}
	return nil
}

func (s *GormStore) ListAll(ctx context.Context) ([]models.Payment, error) {
	payments, err := gorm.G[models.Payment](s.DB).Order("created_at DESC").Order("id DESC").Find(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// Ping checks the underlying connection.
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
