package main

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-habit-engine/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/config"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/analytics"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/services"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/workers"
)

type appDeps struct {
	Config       config.Config
	HabitRepo    domain.HabitRepository
	VacationRepo domain.VacationRepository
	DB           *sqlx.DB
	Redis        *redis.Client
	Logger       *slog.Logger
	Invalidators []adapterHTTP.SnapshotInvalidator
}

type app struct {
	router *gin.Engine
	worker *workers.HeatmapWorker
	cache  *cache.HeatmapCache
}

func newApp(deps appDeps) *app {
	cfg := deps.Config.Heatmap

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := services.NewMetrics(registry)

	engine := analytics.NewEngine(
		analytics.WithLogger(deps.Logger),
		analytics.WithRuleCacheSize(cfg.RuleCacheSize),
	)
	heatmapCache := cache.NewHeatmapCache(cfg.CacheSize, cfg.CacheTTL)

	opts := []services.Option{services.WithMetrics(metrics), services.WithLogger(deps.Logger)}
	statsService := services.NewStatsService(deps.HabitRepo, deps.VacationRepo, engine, opts...)
	heatmapService := services.NewHeatmapService(deps.HabitRepo, deps.VacationRepo, engine, heatmapCache, opts...)

	worker := workers.NewHeatmapWorker(heatmapService, cfg.PageSize)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		StatsHandler:   adapterHTTP.NewStatsHandler(statsService),
		HeatmapHandler: adapterHTTP.NewHeatmapHandler(heatmapService, worker, cfg.PageSize, deps.Invalidators...),
		DB:             deps.DB,
		Redis:          deps.Redis,
		Gatherer:       registry,
		RateLimit:      deps.Config.RateLimit,
		StartTime:      time.Now(),
	})

	return &app{router: router, worker: worker, cache: heatmapCache}
}
