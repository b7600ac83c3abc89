package tasks

import (
	"context"
	"log"

	"gorm.io/gorm"

	"sakhigps/internal/models"
)

// LogInfoTaskDef writes its message to the worker log
type LogInfoTaskDef struct{}

func (t *LogInfoTaskDef) TaskID() string {
	return "log_info"
}

// HandleExecution logs the message argument
func (t *LogInfoTaskDef) HandleExecution(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error) {
	message, ok := task.Arguments["message"].(string)
	if !ok {
		message = "No message provided"
	}

	if task.SessionID != "" {
		log.Printf("[Task: log_info] Session %s: %s", task.SessionID, message)
	} else {
		log.Printf("[Task: log_info] Message: %s", message)
	}

	return map[string]interface{}{
		"status":  "success",
		"message": message,
	}, nil
}

// LogInfoTask is the singleton instance of LogInfoTaskDef
var LogInfoTask = &LogInfoTaskDef{}
