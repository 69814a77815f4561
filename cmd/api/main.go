package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-habit-engine/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/config"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

func main() {
	cfg := config.Load(".env")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := repository.Migrate(ctx, db); err != nil {
		log.Fatalf("Critical: %v", err)
	}

	log.Println("Database connected successfully.")

	var habitRepo domain.HabitRepository = repository.NewPostgresHabitRepository(db)
	var vacationRepo domain.VacationRepository = repository.NewPostgresVacationRepository(db)
	var invalidators []adapterHTTP.SnapshotInvalidator

	rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Printf("Redis unavailable, running without snapshot cache and rate limiting: %v", err)
		rdb = nil
	} else {
		defer rdb.Close()

		cachedHabits := repository.NewCachedHabitRepository(habitRepo, rdb)
		cachedVacations := repository.NewCachedVacationRepository(vacationRepo, rdb)
		habitRepo, vacationRepo = cachedHabits, cachedVacations
		invalidators = append(invalidators, cachedHabits, cachedVacations)
	}

	a := newApp(appDeps{
		Config:       cfg,
		HabitRepo:    habitRepo,
		VacationRepo: vacationRepo,
		DB:           db,
		Redis:        rdb,
		Logger:       logger,
		Invalidators: invalidators,
	})

	a.cache.StartCleanup(ctx, cfg.Heatmap.CleanupInterval)
	a.worker.Start(ctx)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      a.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Kanso Habit Engine running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
