package tasks

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"sakhigps/internal/models"
)

// Runner picks up due tasks and executes them with their registered handler
type Runner struct {
	db       *gorm.DB
	registry *Registry
	now      func() time.Time
}

// NewRunner creates a runner over db and registry
func NewRunner(db *gorm.DB, registry *Registry) *Runner {
	return &Runner{db: db, registry: registry, now: time.Now}
}

// ProcessDue runs every active task whose due time has passed and returns
// how many were picked up
func (r *Runner) ProcessDue(ctx context.Context) (int, error) {
	log.Println("Checking for pending tasks...")

	var pending []models.ScheduledTask
	if err := r.db.WithContext(ctx).
		Where("status = ? AND due <= ?", models.ScheduledTaskStatusActive, r.now()).
		Order("due asc").
		Find(&pending).Error; err != nil {
		return 0, err
	}

	if len(pending) == 0 {
		log.Println("No pending tasks found.")
		return 0, nil
	}

	log.Printf("Found %d pending tasks.", len(pending))

	for i, task := range pending {
		if ctx.Err() != nil {
			return i, ctx.Err()
		}
		r.executeTask(ctx, task, 1)
	}
	return len(pending), nil
}

func (r *Runner) executeTask(ctx context.Context, task models.ScheduledTask, attempt int) {
	log.Printf("Processing task: %s (ID: %d, attempt %d)", task.TaskName, task.ID, attempt)

	if task.Arguments == nil {
		task.Arguments = make(map[string]interface{})
	}

	handler, found := r.registry.Get(task.TaskName)
	if !found {
		log.Printf("Task handler not found for: %s. Marking as failure.", task.TaskName)

		now := r.now()
		r.db.Model(&task).Updates(map[string]interface{}{
			"status":   models.ScheduledTaskStatusFailure,
			"last_run": &now,
		})
		r.db.Create(&models.ScheduledTaskHistory{
			ScheduledTaskID: task.ID,
			TaskName:        task.TaskName,
			RunAt:           now,
			Status:          "handler_not_found",
			AttemptNumber:   attempt,
			Arguments:       task.Arguments,
			Result:          map[string]interface{}{"error": "Handler not found"},
		})
		return
	}

	startTime := r.now()
	began := time.Now()
	result, err := handler(ctx, r.db, task)
	runtimeMs := int(time.Since(began).Milliseconds())

	status := "success"
	resultData := result
	if err != nil {
		status = "failure"
		if resultData == nil {
			resultData = map[string]interface{}{}
		}
		resultData["error"] = err.Error()
		log.Printf("Task %s failed: %v", task.TaskName, err)
	} else {
		log.Printf("Task %s completed successfully.", task.TaskName)
	}

	r.db.Create(&models.ScheduledTaskHistory{
		ScheduledTaskID: task.ID,
		TaskName:        task.TaskName,
		RunAt:           startTime,
		RuntimeMs:       runtimeMs,
		Status:          status,
		AttemptNumber:   attempt,
		Arguments:       task.Arguments,
		Result:          resultData,
	})

	updates := map[string]interface{}{
		"last_run": &startTime,
	}

	if err != nil {
		if attempt < task.MaxAttempt && !errors.Is(err, ErrGiveUp) && ctx.Err() == nil {
			r.executeTask(ctx, task, attempt+1)
			return
		}
	}

	switch {
	case task.TaskType == models.ScheduledTaskTypeRecurring:
		// a failed occurrence still re-arms; a rule with no further
		// occurrence finishes the task
		next := task.NextDue(startTime)
		if next.After(task.Due) {
			updates["status"] = models.ScheduledTaskStatusActive
			updates["due"] = next
		} else if err != nil {
			updates["status"] = models.ScheduledTaskStatusFailure
		} else {
			updates["status"] = models.ScheduledTaskStatusDone
		}
	case err != nil:
		updates["status"] = models.ScheduledTaskStatusFailure
	default:
		updates["status"] = models.ScheduledTaskStatusDone
	}

	r.db.Model(&task).Updates(updates)
}
