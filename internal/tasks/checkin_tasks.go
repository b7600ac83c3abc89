package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"sakhigps/internal/models"
	"sakhigps/internal/services"
)

var (
	ErrInvalidRecurrence = errors.New("invalid recurrence rule")
	ErrNoRecipients      = errors.New("check-in needs at least one recipient")
	ErrCheckinNotFound   = errors.New("check-in not found")
	// ErrGiveUp marks a failure the runner must not retry
	ErrGiveUp = errors.New("task gave up")
)

const (
	checkinMaxAttempt = 3
	checkinRetryDelay = 5 * time.Minute
	defaultCheckinMsg = "Hi $name, this is an automatic SakhiGPS check-in. I am at $location and safe as of $time."
)

// SafetyCheckinArgs defines the arguments of a safety check-in
type SafetyCheckinArgs struct {
	Recipients   []services.Recipient `json:"recipients"`
	Message      string               `json:"message"`
	Location     string               `json:"location"`
	AttemptCount int                  `json:"attempt_count"`
}

// SafetyCheckinTaskDef sends a check-in message to every recipient.
// Recipients that fail are rescheduled on their own task until the
// attempt budget is spent.
type SafetyCheckinTaskDef struct {
	Notifier services.Notifier
	Now      func() time.Time
}

func (t *SafetyCheckinTaskDef) TaskID() string {
	return "safety_checkin"
}

func (t *SafetyCheckinTaskDef) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

// HandleExecution delivers the check-in through the configured notifier
func (t *SafetyCheckinTaskDef) HandleExecution(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error) {
	var args SafetyCheckinArgs
	if err := decodeArgs(task, &args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGiveUp, err)
	}
	if len(args.Recipients) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrGiveUp, ErrNoRecipients)
	}

	template := args.Message
	if template == "" {
		template = defaultCheckinMsg
	}

	var failures []string
	var failed []services.Recipient
	successCount := 0

	for _, to := range args.Recipients {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		msg := replacePlaceholders(template, to, args, t.now())
		if _, err := t.Notifier.Notify(ctx, to, msg); err != nil {
			log.Printf("Failed to send check-in to %s: %v", to.Name, err)
			failures = append(failures, fmt.Sprintf("%s: %v", to.Name, err))
			failed = append(failed, to)
			continue
		}
		successCount++
	}

	result := map[string]interface{}{
		"total":   len(args.Recipients),
		"success": successCount,
		"failure": len(failed),
	}
	if len(failed) == 0 {
		return result, nil
	}
	result["errors"] = failures

	attempt := args.AttemptCount + 1
	if attempt >= task.MaxAttempt {
		log.Printf("Max attempts (%d) reached for %d failed recipients.", task.MaxAttempt, len(failed))
		return result, fmt.Errorf("%w: failed to deliver to %d recipients", ErrGiveUp, len(failed))
	}

	retryArgs := args
	retryArgs.Recipients = failed
	retryArgs.AttemptCount = attempt

	retry, err := BuildScheduledTask(task.SessionID, t.TaskID(), retryArgs, t.now().Add(checkinRetryDelay), "", task.MaxAttempt)
	if err != nil {
		return result, err
	}
	if err := db.WithContext(ctx).Create(retry).Error; err != nil {
		return result, fmt.Errorf("failed to create retry task: %w", err)
	}
	log.Printf("Partial failure: %d recipients failed. Rescheduled as task %d (attempt %d)", len(failed), retry.ID, attempt+1)
	result["retry_task_id"] = retry.ID

	return result, nil
}

func replacePlaceholders(template string, to services.Recipient, args SafetyCheckinArgs, now time.Time) string {
	location := args.Location
	if location == "" {
		location = "my current location"
	}
	r := strings.NewReplacer(
		"$name", to.Name,
		"$location", location,
		"$time", now.Format("15:04"),
	)
	return r.Replace(template)
}

// ScheduleCheckin stores a check-in for the worker. A non-empty rule makes
// it recurring.
func ScheduleCheckin(ctx context.Context, db *gorm.DB, sessionID string, args SafetyCheckinArgs, due time.Time, rule string) (*models.ScheduledTask, error) {
	if len(args.Recipients) == 0 {
		return nil, ErrNoRecipients
	}
	args.AttemptCount = 0

	task, err := BuildScheduledTask(sessionID, (&SafetyCheckinTaskDef{}).TaskID(), args, due, rule, checkinMaxAttempt)
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, fmt.Errorf("failed to create check-in: %w", err)
	}
	log.Printf("Scheduled check-in %d for session %s at %s", task.ID, sessionID, due.Format(time.RFC3339))
	return task, nil
}

// ListCheckins returns a session's check-ins, soonest first
func ListCheckins(ctx context.Context, db *gorm.DB, sessionID string) ([]models.ScheduledTask, error) {
	var out []models.ScheduledTask
	err := db.WithContext(ctx).
		Where("session_id = ? AND task_name = ?", sessionID, (&SafetyCheckinTaskDef{}).TaskID()).
		Order("due asc").
		Find(&out).Error
	return out, err
}

// DisableCheckin stops a session's check-in from running again
func DisableCheckin(ctx context.Context, db *gorm.DB, sessionID string, id uint) error {
	res := db.WithContext(ctx).Model(&models.ScheduledTask{}).
		Where("id = ? AND session_id = ?", id, sessionID).
		Update("status", models.ScheduledTaskStatusDisabled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCheckinNotFound
	}
	return nil
}
