package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"kanflow-backend/internal/integration/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormIntegrationRepository stores one row per (user, provider) with the
// integration state JSON-encoded in the data column.
type gormIntegrationRepository struct {
	db *gorm.DB
}

// NewGormIntegrationRepository creates a new GORM-based IntegrationRepository
func NewGormIntegrationRepository(db *gorm.DB) IntegrationRepository {
	return &gormIntegrationRepository{db: db}
}

func (r *gormIntegrationRepository) GetRegistry(userID string) (domain.Registry, error) {
	var records []domain.IntegrationRecord
	if err := r.db.Where("user_id = ?", userID).Find(&records).Error; err != nil {
		return nil, err
	}

	registry := domain.Registry{}
	for _, record := range records {
		var integration domain.Integration
		if err := json.Unmarshal([]byte(record.Data), &integration); err != nil {
			return nil, fmt.Errorf("corrupt integration data for provider %s: %w", record.Provider, err)
		}
		registry[record.Provider] = integration
	}
	return registry, nil
}

func (r *gormIntegrationRepository) SaveEntry(userID, provider string, integration domain.Integration) error {
	data, err := json.Marshal(integration)
	if err != nil {
		return err
	}

	record := domain.IntegrationRecord{
		UserID:    userID,
		Provider:  provider,
		Data:      string(data),
		UpdatedAt: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "provider"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&record).Error
}
