package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-habit-engine/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/analytics"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/services"
)

type MockHabitRepo struct {
	mock.Mock
}

func (m *MockHabitRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.HabitSnapshot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.HabitSnapshot), args.Error(1)
}

func (m *MockHabitRepo) GetByID(ctx context.Context, id string) (*domain.HabitSnapshot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HabitSnapshot), args.Error(1)
}

type fakeWarmer struct {
	mu   sync.Mutex
	jobs []string
}

func (w *fakeWarmer) Enqueue(userID string, year int) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.jobs = append(w.jobs, userID)
	return "job-1"
}

type fakeInvalidator struct {
	users []string
}

func (f *fakeInvalidator) Invalidate(_ context.Context, userID string) {
	f.users = append(f.users, userID)
}

type testServer struct {
	router      *gin.Engine
	warmer      *fakeWarmer
	invalidator *fakeInvalidator
	cache       *cache.HeatmapCache
}

func newTestServer(habitRepo domain.HabitRepository) *testServer {
	gin.SetMode(gin.TestMode)

	engine := analytics.NewEngine()
	heatmapCache := cache.NewHeatmapCache(100, time.Hour)
	vacations := repository.NewInMemoryVacationRepository()

	statsSvc := services.NewStatsService(habitRepo, vacations, engine)
	heatmapSvc := services.NewHeatmapService(habitRepo, vacations, engine, heatmapCache)

	warmer := &fakeWarmer{}
	invalidator := &fakeInvalidator{}

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		StatsHandler:   adapterHTTP.NewStatsHandler(statsSvc),
		HeatmapHandler: adapterHTTP.NewHeatmapHandler(heatmapSvc, warmer, 10, invalidator),
		StartTime:      time.Now(),
	})

	return &testServer{router: router, warmer: warmer, invalidator: invalidator, cache: heatmapCache}
}

func seededRepo() *repository.InMemoryHabitRepository {
	repo := repository.NewInMemoryHabitRepository()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	repo.Save(&domain.HabitSnapshot{
		ID: "h1", UserID: "user-1", Name: "Read", StartDate: start, SortOrder: 1,
		ScheduleText: "Everyday", GoalText: "1 chapter",
		CompletionHistory: map[string]int{"2024-01-01": 1, "2024-01-02": 1, "2024-01-03": 1},
	})
	repo.Save(&domain.HabitSnapshot{
		ID: "h2", UserID: "user-1", Name: "Gym", StartDate: start, SortOrder: 2,
		ScheduleText: "Every Monday, Friday", GoalText: "1 session",
		CompletionHistory: map[string]int{"2024-01-01": 1},
	})
	repo.Save(&domain.HabitSnapshot{
		ID: "h3", UserID: "user-2", Name: "Other", StartDate: start, ScheduleText: "Everyday",
	})
	return repo
}

func (s *testServer) do(t *testing.T, method, path, userID string) *httptest.ResponseRecorder {
	t.Helper()
	req, _ := http.NewRequest(method, path, nil)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}
