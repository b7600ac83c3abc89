package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"sakhigps/internal/config"
	"sakhigps/internal/services"
	"sakhigps/internal/tasks"
)

func main() {
	sessionID := flag.String("session", "", "Session the task belongs to (optional)")
	taskName := flag.String("task_name", "", "Name of the task (mandatory)")
	argsStr := flag.String("arguments", "", "JSON arguments for the task (mandatory)")
	dueStr := flag.String("due", "", "Due date (mandatory, format: 2006-01-02 15:04 or RFC3339)")
	rule := flag.String("rule", "", "RRULE for recurring tasks, e.g. FREQ=DAILY (optional)")
	maxAttempt := flag.Int("max_attempt", 3, "Max attempts (optional, default: 3)")

	flag.Parse()

	if *taskName == "" || *argsStr == "" || *dueStr == "" {
		fmt.Println("Usage: schedule_task -task_name <name> -arguments <json_args> -due <YYYY-MM-DD HH:MM> [options]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := services.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect DB: %v", err)
	}
	if err := services.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	var args map[string]interface{}
	if err := json.Unmarshal([]byte(*argsStr), &args); err != nil {
		log.Fatalf("Invalid JSON arguments: %v", err)
	}

	due, err := time.Parse(time.RFC3339, *dueStr)
	if err != nil {
		due, err = time.ParseInLocation("2006-01-02 15:04", *dueStr, time.Local)
		if err != nil {
			log.Fatalf("Invalid due date format. Use '2006-01-02 15:04' (Local) or RFC3339: %v", err)
		}
	}

	task, err := tasks.BuildScheduledTask(*sessionID, *taskName, args, due, *rule, *maxAttempt)
	if err != nil {
		log.Fatalf("Failed to build task: %v", err)
	}

	if err := db.Create(task).Error; err != nil {
		log.Fatalf("Failed to create task: %v", err)
	}

	fmt.Printf("Successfully created task ID: %d\n", task.ID)
	fmt.Printf("Task: %s\nDue: %s\nType: %s\n", task.TaskName, task.Due, task.TaskType)
}
