package main

import (
	"context"
	"log"
	"os"

	"github.com/example/todo-service/config"
	"github.com/example/todo-service/modules/activity"
	"github.com/example/todo-service/modules/api"
	"github.com/example/todo-service/modules/todo"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

func main() {
	log.Println("=== Todo Service ===")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	logger := app.Logger()

	// Order: event consumer first, then the core domain, then the driving adapter
	if err := app.Register(activity.NewModule(logger)); err != nil {
		log.Fatalf("Failed to register activity module: %v", err)
	}
	if err := app.Register(todo.NewModule(cfg.Store, logger)); err != nil {
		log.Fatalf("Failed to register todo module: %v", err)
	}
	if err := app.Register(api.NewModule(cfg, logger)); err != nil {
		log.Fatalf("Failed to register api module: %v", err)
	}

	// Mongo connect failures surface here and abort before any request is served
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg config.Config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Printf("  Store backend: %s", cfg.Store.Backend)
	log.Printf("  CORS policy:   %s", cfg.CORS.Policy)
	log.Println("")
	log.Printf("REST API Endpoints (http://%s):", cfg.HTTPAddr)
	log.Println("  POST   /todos             - Create a todo")
	log.Println("  GET    /todos             - List all todos")
	log.Println("  POST   /todos/:id/toggle  - Toggle a todo's completion")
	log.Println("  GET    /health            - Health check")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
