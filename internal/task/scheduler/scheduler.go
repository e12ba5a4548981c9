package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	authrepo "kanflow-backend/internal/auth/repository"
	"kanflow-backend/internal/task/repository"
	"kanflow-backend/pkg/fcm"
)

// ReminderScheduler pushes FCM reminders for tasks whose reminder time has
// passed.
type ReminderScheduler struct {
	reminderRepo repository.ReminderRepository
	tokenRepo    authrepo.DeviceTokenRepository
	fcmClient    *fcm.Client
	interval     time.Duration
	stopChan     chan struct{}
}

// NewReminderScheduler creates a new scheduler
func NewReminderScheduler(
	reminderRepo repository.ReminderRepository,
	tokenRepo authrepo.DeviceTokenRepository,
	fcmClient *fcm.Client,
) *ReminderScheduler {
	return &ReminderScheduler{
		reminderRepo: reminderRepo,
		tokenRepo:    tokenRepo,
		fcmClient:    fcmClient,
		interval:     1 * time.Minute,
		stopChan:     make(chan struct{}),
	}
}

// Start begins the scheduler loop
func (s *ReminderScheduler) Start() {
	if s.fcmClient == nil {
		log.Println("[Scheduler] FCM client not available, reminders disabled")
		return
	}

	log.Println("[Scheduler] Starting task reminder scheduler (interval: 1 minute)")

	go func() {
		// Run immediately on start
		s.checkAndSendReminders()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.checkAndSendReminders()
			case <-s.stopChan:
				log.Println("[Scheduler] Scheduler stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the scheduler
func (s *ReminderScheduler) Stop() {
	close(s.stopChan)
}

func (s *ReminderScheduler) checkAndSendReminders() {
	tasks, err := s.reminderRepo.FindPendingReminders(time.Now())
	if err != nil {
		log.Printf("[Scheduler] Error finding pending reminders: %v", err)
		return
	}
	if len(tasks) == 0 {
		return
	}

	log.Printf("[Scheduler] Found %d tasks with pending reminders", len(tasks))

	for _, task := range tasks {
		tokens, err := s.tokenRepo.GetTokensByUserID(task.UserID)
		if err != nil {
			log.Printf("[Scheduler] Error getting device tokens for user %s: %v", task.UserID, err)
			continue
		}

		if len(tokens) == 0 {
			// No registered devices, drop the reminder instead of retrying forever
			s.reminderRepo.MarkReminderSent(task.ID)
			continue
		}

		title := "Reminder: " + task.Title
		body := task.Description
		if body == "" {
			body = "You have a task waiting"
		}
		if task.DueDate != nil {
			body = fmt.Sprintf("%s\nDue: %s", body, task.DueDate.Format("Jan 2, 2006 15:04"))
		}

		var tokenStrings []string
		for _, t := range tokens {
			tokenStrings = append(tokenStrings, t.Token)
		}

		notification := fcm.Notification{
			Title: title,
			Body:  body,
			Data: map[string]string{
				"type":     "task_reminder",
				"task_id":  task.ID,
				"priority": string(task.Priority),
			},
		}

		failedTokens, err := s.fcmClient.SendToDevices(context.Background(), tokenStrings, notification)
		if err != nil {
			log.Printf("[Scheduler] Error sending reminder for task %s: %v", task.ID, err)
		} else {
			log.Printf("[Scheduler] Sent reminder for task %q to %d devices", task.Title, len(tokenStrings)-len(failedTokens))
		}

		// Prune tokens FCM rejected
		for _, token := range failedTokens {
			s.tokenRepo.DeleteToken(token)
		}

		// Marked sent even on failure so a broken token never spams retries
		if err := s.reminderRepo.MarkReminderSent(task.ID); err != nil {
			log.Printf("[Scheduler] Error marking reminder sent for task %s: %v", task.ID, err)
		}
	}
}
