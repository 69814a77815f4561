package workers

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/services"
)

const (
	DefaultQueueSize = 100
	DefaultPageSize  = 20
)

type YearPageGenerator interface {
	YearPage(ctx context.Context, req services.YearPageRequest, progress services.ProgressFunc) (*domain.YearPage, error)
}

type HeatmapJob struct {
	ID     string
	UserID string
	Year   int
}

// HeatmapWorker pre-computes a user's year heatmap page by page so the rows
// are already cached when the client asks for them.
type HeatmapWorker struct {
	generator YearPageGenerator
	pageSize  int
	jobs      chan HeatmapJob
}

func NewHeatmapWorker(generator YearPageGenerator, pageSize int) *HeatmapWorker {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &HeatmapWorker{
		generator: generator,
		pageSize:  pageSize,
		jobs:      make(chan HeatmapJob, DefaultQueueSize),
	}
}

func (w *HeatmapWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Heatmap Worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("Heatmap Worker shutting down...")
				return
			}
		}
	}()
}

// Enqueue schedules a warm-up and returns the job ID, or "" when the queue
// is full and the job was dropped.
func (w *HeatmapWorker) Enqueue(userID string, year int) string {
	job := HeatmapJob{ID: uuid.NewString(), UserID: userID, Year: year}
	select {
	case w.jobs <- job:
		return job.ID
	default:
		log.Printf("Heatmap Worker queue full! Dropping %d warm-up for user %s", year, userID)
		return ""
	}
}

// processJob returns the number of rows generated.
func (w *HeatmapWorker) processJob(ctx context.Context, job HeatmapJob) int {
	rows := 0
	start := 0

	for {
		page, err := w.generator.YearPage(ctx, services.YearPageRequest{
			UserID:     job.UserID,
			Year:       job.Year,
			StartIndex: start,
			PageSize:   w.pageSize,
		}, nil)
		if err != nil {
			log.Printf("Worker Error warming %d heatmap for user %s (job %s): %v", job.Year, job.UserID, job.ID, err)
			return rows
		}

		rows += len(page.Rows)
		if page.Done || page.NextIndex <= start {
			break
		}
		start = page.NextIndex
	}

	log.Printf("Heatmap warmed for user %s: year=%d rows=%d", job.UserID, job.Year, rows)
	return rows
}
