package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/internal/config"
	pgInfra "github.com/taskboard/backend/internal/infrastructure/postgres"
	"github.com/taskboard/backend/pkg/logger"
	"github.com/taskboard/backend/repository/postgres"
)

// Demo dataset for local development: one admin, two users, a handful of
// tasks spread across statuses and priorities.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{Level: cfg.Logger.Level, Encoding: "console"})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(ctx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		zapLogger.Fatal("hashing failed", zap.Error(err))
	}

	users := []domain.User{
		{ID: "0d5a1c9e-7f3b-4e2a-8c61-9b0f4d2e1a35", Name: "Admin User", Email: "admin@demo.com", Role: domain.RoleAdmin},
		{ID: "5e8b2f4a-1c6d-4f9e-b3a7-2d8c0e6f4b19", Name: "John Doe", Email: "user@demo.com", Role: domain.RoleUser},
		{ID: "9c3f6a1d-8e4b-4c2f-a5d9-7b1e3f8c2d64", Name: "Jane Smith", Email: "jane@demo.com", Role: domain.RoleUser},
	}
	for i := range users {
		users[i].PasswordHash = string(hash)
		if err := userRepo.Upsert(ctx, &users[i]); err != nil {
			zapLogger.Fatal("seeding user failed", zap.String("email", users[i].Email), zap.Error(err))
		}
	}

	admin, john, jane := users[0], users[1], users[2]
	due := func(days int) *time.Time {
		t := time.Now().AddDate(0, 0, days).Truncate(24 * time.Hour)
		return &t
	}

	tasks := []domain.Task{
		{
			Title:       "Setup Development Environment",
			Description: "Install Go, PostgreSQL and Redis, and configure the local environment.",
			Status:      domain.StatusCompleted,
			Priority:    domain.PriorityHigh,
			AssignedTo:  john.ID,
		},
		{
			Title:       "Design Database Schema",
			Description: "Create the database schema for users, tasks, and relationships between entities.",
			Status:      domain.StatusCompleted,
			Priority:    domain.PriorityHigh,
			AssignedTo:  jane.ID,
		},
		{
			Title:       "Implement Authentication System",
			Description: "Build JWT-based authentication with login, register, and token refresh.",
			Status:      domain.StatusInProgress,
			Priority:    domain.PriorityHigh,
			AssignedTo:  john.ID,
			DueDate:     due(7),
		},
		{
			Title:       "Create Task Management API",
			Description: "Develop REST API endpoints for CRUD operations on tasks with proper authorization.",
			Status:      domain.StatusInProgress,
			Priority:    domain.PriorityMedium,
			AssignedTo:  jane.ID,
			DueDate:     due(14),
		},
		{
			Title:       "Write API Documentation",
			Description: "Document every endpoint with request and response examples.",
			Status:      domain.StatusPending,
			Priority:    domain.PriorityLow,
			AssignedTo:  john.ID,
			DueDate:     due(21),
		},
		{
			Title:       "Build Kanban Dashboard",
			Description: "Render the task board grouped by status with drag-and-drop transitions.",
			Status:      domain.StatusPending,
			Priority:    domain.PriorityMedium,
			AssignedTo:  jane.ID,
		},
		{
			Title:       "Set Up CI Pipeline",
			Description: "Run lint and tests on every push.",
			Status:      domain.StatusPending,
			Priority:    domain.PriorityMedium,
		},
		{
			Title:       "Load Test the List Endpoint",
			Description: "Measure p99 latency of filtered, paginated task queries under load.",
			Status:      domain.StatusPending,
			Priority:    domain.PriorityLow,
		},
	}
	for i := range tasks {
		tasks[i].CreatedBy = admin.ID
		if _, err := taskRepo.Create(ctx, &tasks[i]); err != nil {
			zapLogger.Fatal("seeding task failed", zap.String("title", tasks[i].Title), zap.Error(err))
		}
	}

	zapLogger.Info("seed complete",
		zap.Int("users", len(users)),
		zap.Int("tasks", len(tasks)))
}
