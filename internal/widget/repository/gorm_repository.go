package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"kanflow-backend/internal/widget/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormStateRepository implements StateRepository against the widget_states table
type gormStateRepository struct {
	db *gorm.DB
}

// NewGormStateRepository creates a new GORM-based StateRepository
func NewGormStateRepository(db *gorm.DB) StateRepository {
	return &gormStateRepository{db: db}
}

func (r *gormStateRepository) GetState(userID, key string, v interface{}) (bool, error) {
	var record domain.WidgetRecord
	err := r.db.Where("user_id = ? AND key = ?", userID, key).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(record.Data), v); err != nil {
		return true, fmt.Errorf("corrupt widget state for key %s: %w", key, err)
	}
	return true, nil
}

func (r *gormStateRepository) SaveState(userID, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	record := domain.WidgetRecord{
		UserID:    userID,
		Key:       key,
		Data:      string(data),
		UpdatedAt: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&record).Error
}
