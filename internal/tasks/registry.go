package tasks

import (
	"context"
	"sort"
	"sync"

	"gorm.io/gorm"

	"sakhigps/internal/models"
	"sakhigps/internal/services"
)

// TaskHandler runs one scheduled task and returns a result map stored in
// the task history
type TaskHandler func(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error)

// Registry stores the mapping of task names to handlers
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]TaskHandler
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]TaskHandler)}
}

// Register adds a handler for a task name
func (r *Registry) Register(name string, handler TaskHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = handler
}

// Get retrieves a handler for a task name
func (r *Registry) Get(name string) (TaskHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handler, ok := r.handlers[name]
	return handler, ok
}

// Names lists registered task names in order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefineTasks registers every task the worker knows about
func DefineTasks(r *Registry, notifier services.Notifier) {
	r.Register(LogInfoTask.TaskID(), LogInfoTask.HandleExecution)

	checkin := &SafetyCheckinTaskDef{Notifier: notifier}
	r.Register(checkin.TaskID(), checkin.HandleExecution)
}
