// Package analytics decides when habits are due and turns completion
// histories into streaks and heatmaps. Everything here is pure computation
// over the snapshots handed in by the caller; "today" is always a parameter.
package analytics

import (
	"io"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

const DefaultRuleCacheSize = 256

type Engine struct {
	rules  *lru.Cache[string, domain.ScheduleRule]
	logger *slog.Logger
}

type Option func(*Engine)

// WithLogger attaches a structured logger. Logging never changes results.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRuleCacheSize bounds the memo of parsed schedule texts.
func WithRuleCacheSize(size int) Option {
	return func(e *Engine) {
		if size <= 0 {
			return
		}
		if c, err := lru.New[string, domain.ScheduleRule](size); err == nil {
			e.rules = c
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	rules, _ := lru.New[string, domain.ScheduleRule](DefaultRuleCacheSize)
	e := &Engine{
		rules:  rules,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rule parses the habit's schedule text, memoizing by text.
func (e *Engine) Rule(h *domain.HabitSnapshot) domain.ScheduleRule {
	if rule, ok := e.rules.Get(h.ScheduleText); ok {
		return rule
	}

	rule := domain.ParseSchedule(h.ScheduleText)
	if rule.Kind() == domain.ScheduleUnrecognized && h.ScheduleText != "" {
		e.logger.Debug("unrecognized schedule", slog.String("habit_id", h.ID), slog.String("schedule", h.ScheduleText))
	}
	e.rules.Add(h.ScheduleText, rule)
	return rule
}
