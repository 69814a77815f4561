package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/analytics"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

const TracerName = "github.com/comitanigiacomo/kanso-habit-engine/internal/core/services"

const (
	MinYear = 1
	MaxYear = 9999
)

// ProgressFunc receives the fraction (0.0-1.0) of a page processed so far.
type ProgressFunc func(fraction float64)

type YearPageRequest struct {
	UserID     string
	Year       int
	StartIndex int
	PageSize   int
	Today      time.Time
}

func (r YearPageRequest) validate() error {
	if r.Year < MinYear || r.Year > MaxYear {
		return fmt.Errorf("%w: %d", domain.ErrInvalidYear, r.Year)
	}
	if r.StartIndex < 0 || r.PageSize <= 0 {
		return domain.ErrInvalidPage
	}
	return nil
}

type YearPageResult struct {
	Page *domain.YearPage
	Err  error
}

type yearRowFunc func(h *domain.HabitSnapshot, year int, today time.Time, vacation domain.VacationOracle) []domain.HeatmapCell

type HeatmapService struct {
	habitRepo    domain.HabitRepository
	vacationRepo domain.VacationRepository
	engine       *analytics.Engine
	cache        domain.HeatmapCache
	yearRow      yearRowFunc
	tracer       trace.Tracer
	opts         options
}

func NewHeatmapService(habitRepo domain.HabitRepository, vacationRepo domain.VacationRepository, engine *analytics.Engine, cache domain.HeatmapCache, opts ...Option) *HeatmapService {
	return &HeatmapService{
		habitRepo:    habitRepo,
		vacationRepo: vacationRepo,
		engine:       engine,
		cache:        cache,
		yearRow:      engine.YearRow,
		tracer:       otel.Tracer(TracerName),
		opts:         buildOptions(opts),
	}
}

func (s *HeatmapService) today(t time.Time) time.Time {
	if t.IsZero() {
		return domain.StartOfDay(s.opts.clock())
	}
	return domain.StartOfDay(t)
}

// Week renders the week containing date.
func (s *HeatmapService) Week(ctx context.Context, userID string, date, today time.Time) (*domain.Heatmap, error) {
	habits, vacation, err := loadUserData(ctx, s.habitRepo, s.vacationRepo, userID)
	if err != nil {
		return nil, err
	}

	today = s.today(today)
	if date.IsZero() {
		date = today
	}

	hm := s.engine.WeekHeatmap(habits, date, today, vacation)
	return &hm, nil
}

func (s *HeatmapService) Month(ctx context.Context, userID string, year int, month time.Month, today time.Time) (*domain.Heatmap, error) {
	if year < MinYear || year > MaxYear {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidYear, year)
	}
	if month < time.January || month > time.December {
		return nil, domain.ErrInvalidMonth
	}

	habits, vacation, err := loadUserData(ctx, s.habitRepo, s.vacationRepo, userID)
	if err != nil {
		return nil, err
	}

	hm := s.engine.MonthHeatmap(habits, year, month, s.today(today), vacation)
	return &hm, nil
}

// YearPage loads the user's habits and renders one page of them for a whole
// year. See GenerateYearPage for caching and cancellation.
func (s *HeatmapService) YearPage(ctx context.Context, req YearPageRequest, progress ProgressFunc) (*domain.YearPage, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	habits, vacation, err := loadUserData(ctx, s.habitRepo, s.vacationRepo, req.UserID)
	if err != nil {
		return nil, err
	}

	return s.GenerateYearPage(ctx, habits, vacation, req, progress)
}

// YearPageAsync runs YearPage in the background. The channel yields exactly
// one result and is then closed. Cancel ctx to stop between habits.
func (s *HeatmapService) YearPageAsync(ctx context.Context, req YearPageRequest, progress ProgressFunc) <-chan YearPageResult {
	out := make(chan YearPageResult, 1)
	go func() {
		defer close(out)
		page, err := s.YearPage(ctx, req, progress)
		out <- YearPageResult{Page: page, Err: err}
	}()
	return out
}

// GenerateYearPage renders habits[StartIndex:StartIndex+PageSize] for the
// requested year, in input order. Rows are served from the cache when
// present and stored after computation. Cancellation is checked before each
// habit; a cancelled run returns the rows finished so far together with the
// context error, and only those rows have been cached.
func (s *HeatmapService) GenerateYearPage(ctx context.Context, habits []*domain.HabitSnapshot, vacation domain.VacationOracle, req YearPageRequest, progress ProgressFunc) (*domain.YearPage, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	started := time.Now()
	defer func() { s.opts.metrics.ObservePage(time.Since(started).Seconds()) }()

	ctx, span := s.tracer.Start(ctx, "heatmap.year_page", trace.WithAttributes(
		attribute.Int("year", req.Year),
		attribute.Int("start_index", req.StartIndex),
		attribute.Int("page_size", req.PageSize),
		attribute.Int("habits", len(habits)),
	))
	defer span.End()

	today := s.today(req.Today)
	start := min(req.StartIndex, len(habits))
	end := min(start+req.PageSize, len(habits))
	slice := habits[start:end]

	page := &domain.YearPage{
		Year:       req.Year,
		DaysInYear: domain.DaysInYear(req.Year),
		StartIndex: req.StartIndex,
		PageSize:   req.PageSize,
		TotalRows:  len(habits),
		NextIndex:  start,
		Rows:       make([]domain.HeatmapRow, 0, len(slice)),
	}

	if len(slice) == 0 {
		page.Done = true
		report(progress, 1.0)
		return page, nil
	}

	for i, h := range slice {
		if err := ctx.Err(); err != nil {
			s.opts.metrics.PageCancelled()
			span.SetStatus(codes.Error, "cancelled")
			s.opts.logger.Info("year heatmap page cancelled",
				slog.Int("year", req.Year),
				slog.Int("completed", i),
				slog.Int("requested", len(slice)),
			)
			return page, err
		}

		cells, cached := s.yearCells(h, req.Year, today, vacation)
		span.AddEvent("habit", trace.WithAttributes(
			attribute.String("habit_id", h.ID),
			attribute.Bool("cached", cached),
		))

		page.Rows = append(page.Rows, domain.HeatmapRow{HabitID: h.ID, Name: h.Name, Cells: cells})
		page.NextIndex = start + i + 1
		report(progress, float64(i+1)/float64(len(slice)))
	}

	page.Done = page.NextIndex >= len(habits)
	return page, nil
}

func (s *HeatmapService) yearCells(h *domain.HabitSnapshot, year int, today time.Time, vacation domain.VacationOracle) ([]domain.HeatmapCell, bool) {
	key := domain.YearCacheKey(h.ID, year, today)

	if s.cache != nil {
		if cells, ok := s.cache.Get(key); ok {
			s.opts.metrics.CacheHit()
			return cells, true
		}
		s.opts.metrics.CacheMiss()
	}

	cells := s.yearRow(h, year, today, vacation)
	s.opts.metrics.YearRowComputed()

	if s.cache != nil {
		s.cache.Set(key, cells)
	}
	return cells, false
}

// Invalidate drops every cached year row. Callers use it whenever any
// completion data changed.
func (s *HeatmapService) Invalidate() {
	if s.cache != nil {
		s.cache.Clear()
	}
	s.opts.metrics.Invalidated()
	s.opts.logger.Info("heatmap cache invalidated")
}

func report(progress ProgressFunc, fraction float64) {
	if progress != nil {
		progress(fraction)
	}
}
