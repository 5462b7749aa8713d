package main

import (
	"context"
	"log"
	"os"
	"time"

	apimod "github.com/example/taskboard/modules/api"
	authmod "github.com/example/taskboard/modules/auth"
	cachemod "github.com/example/taskboard/modules/cache"
	notifymod "github.com/example/taskboard/modules/notify"
	taskmod "github.com/example/taskboard/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	redisAddr := os.Getenv("REDIS_ADDR")

	// Create modules
	authModule := authmod.NewModule()
	taskModule := taskmod.NewModule()
	notifyModule := notifymod.NewModule()
	apiModule := apimod.NewModule()

	var cacheModule *cachemod.CacheModule
	if redisAddr != "" {
		cacheModule = cachemod.NewModule(redisAddr)
	}

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create mono application: %v", err)
	}

	// Register modules in dependency order. The cache is optional; the
	// application runs without Redis.
	if cacheModule != nil {
		app.Register(cacheModule)
	}
	app.Register(authModule)
	app.Register(taskModule)
	app.Register(notifyModule)
	app.Register(apiModule)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}

	// Wire up dependencies after start
	if cacheModule != nil {
		authModule.SetCache(cacheModule.GetCache())
	}
	apiModule.SetHub(notifyModule.GetHub())

	printStartupInfo(redisAddr)

	// Setup graceful shutdown using gelmium/graceful-shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
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

func printStartupInfo(redisAddr string) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Println("=== Taskboard Started ===")
	if redisAddr != "" {
		log.Printf("User directory cache: Redis at %s", redisAddr)
	} else {
		log.Println("User directory cache: disabled (REDIS_ADDR not set)")
	}
	log.Printf("API available at http://localhost:%s", port)
	log.Println("Endpoints:")
	log.Println("  POST   /api/auth/register - Create account")
	log.Println("  POST   /api/auth/login    - Sign in")
	log.Println("  GET    /api/auth/profile  - Current user profile")
	log.Println("  PUT    /api/auth/profile  - Update profile")
	log.Println("  GET    /api/users         - User directory")
	log.Println("  GET    /api/tasks         - List tasks (filter + sort)")
	log.Println("  POST   /api/tasks         - Create task")
	log.Println("  GET    /api/tasks/:id     - Get task")
	log.Println("  PUT    /api/tasks/:id     - Update task")
	log.Println("  DELETE /api/tasks/:id     - Delete task")
	log.Println("  GET    /ws                - WebSocket (live task events)")
	log.Println("  GET    /health            - Health check")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown")
}
