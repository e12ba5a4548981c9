package repository

import (
	"context"
	"time"

	"kanflow-backend/internal/task/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormTaskRepository implements TaskRepository against the backend tasks table
type gormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GORM-based TaskRepository
func NewGormTaskRepository(db *gorm.DB) TaskRepository {
	return &gormTaskRepository{db: db}
}

func (r *gormTaskRepository) List(ctx context.Context, userID string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *gormTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *gormTaskRepository) Update(ctx context.Context, userID, id string, patch domain.TaskPatch) (*domain.Task, error) {
	updates := patchToUpdates(patch)
	updates["updated_at"] = time.Now()

	res := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFoundOrDenied
	}

	var task domain.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *gormTaskRepository) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFoundOrDenied
	}
	return nil
}

// DeleteAll fetches the owned ids first, then bulk-deletes by id list. Two
// round trips, not atomic: a task inserted in between is simply not
// included, which is acceptable here.
func (r *gormTaskRepository) DeleteAll(ctx context.Context, userID string) error {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("user_id = ?", userID).
		Pluck("id", &ids).Error
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&domain.Task{}).Error
}

func (r *gormTaskRepository) FindPendingReminders(now time.Time) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := r.db.Where("reminder_at <= ? AND reminder_sent = ? AND status != ?",
		now, false, domain.StatusDone).Find(&tasks).Error
	return tasks, err
}

func (r *gormTaskRepository) MarkReminderSent(id string) error {
	return r.db.Model(&domain.Task{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"reminder_sent": true,
			"updated_at":    time.Now(),
		}).Error
}

func patchToUpdates(patch domain.TaskPatch) map[string]interface{} {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Status != nil {
		updates["status"] = domain.ParseStatus(*patch.Status)
	}
	if patch.Priority != nil {
		updates["priority"] = domain.ParsePriority(*patch.Priority)
	}
	if patch.Position != nil {
		updates["position"] = *patch.Position
	}
	if patch.DueDate != nil {
		if *patch.DueDate == "" {
			updates["due_date"] = nil
		} else if t, err := time.Parse(time.RFC3339, *patch.DueDate); err == nil {
			updates["due_date"] = t
		}
	}
	if patch.ReminderAt != nil {
		if *patch.ReminderAt == "" {
			updates["reminder_at"] = nil
			updates["reminder_sent"] = false
		} else if t, err := time.Parse(time.RFC3339, *patch.ReminderAt); err == nil {
			updates["reminder_at"] = t
			updates["reminder_sent"] = false // reset when the time changes
		}
	}
	return updates
}
