package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"sakhigps/internal/models"
)

// BuildScheduledTask is a helper to build ScheduledTask records generically.
// A non-empty rule makes the task recurring.
func BuildScheduledTask(sessionID, taskName string, args interface{}, due time.Time, rule string, maxAttempt int) (*models.ScheduledTask, error) {
	argsBytes, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal args: %w", err)
	}

	var mapArgs map[string]interface{}
	if err := json.Unmarshal(argsBytes, &mapArgs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal into map: %w", err)
	}

	task := &models.ScheduledTask{
		SessionID:  sessionID,
		TaskName:   taskName,
		Arguments:  mapArgs,
		Due:        due,
		Status:     models.ScheduledTaskStatusActive,
		TaskType:   models.ScheduledTaskTypeOneTime,
		MaxAttempt: maxAttempt,
	}

	if rule != "" {
		if err := models.ValidateRecurrence(rule); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRecurrence, err)
		}
		task.RecurringInterval = &rule
		task.TaskType = models.ScheduledTaskTypeRecurring
	}

	return task, nil
}

// decodeArgs turns a task's stored arguments back into a typed struct
func decodeArgs(task models.ScheduledTask, dest interface{}) error {
	argsBytes, err := json.Marshal(task.Arguments)
	if err != nil {
		return fmt.Errorf("failed to marshal args: %w", err)
	}
	if err := json.Unmarshal(argsBytes, dest); err != nil {
		return fmt.Errorf("failed to unmarshal args: %w", err)
	}
	return nil
}
