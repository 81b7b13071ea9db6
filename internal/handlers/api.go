package handlers

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"

	"github.com/android19/discipleship-form-sub001/internal/notify"
	"github.com/android19/discipleship-form-sub001/internal/reports"
	"github.com/android19/discipleship-form-sub001/internal/token"
	"github.com/android19/discipleship-form-sub001/pkg/bus"
)

// Config controls runtime behaviour for the API handlers.
type Config struct {
	AllowedOrigins  []string
	CodeLength      int
	PublicRateLimit int
}

// API wires dependencies and configuration for HTTP handlers.
type API struct {
	orm      *gorm.DB
	pool     *pgxpool.Pool
	gate     *token.Gate
	reporter *reports.Reporter
	bus      *bus.Bus
	notifier *notify.Telegram
	config   Config
	now      func() time.Time
}

// New initialises the API layer with sane defaults applied to the
// provided configuration. The bus and notifier may be nil.
func New(orm *gorm.DB, pool *pgxpool.Pool, eventBus *bus.Bus, notifier *notify.Telegram, cfg Config) (*API, error) {
	if orm == nil {
		return nil, errors.New("orm is required")
	}
	if pool == nil {
		return nil, errors.New("report pool is required")
	}

	if cfg.CodeLength <= 0 {
		cfg.CodeLength = token.DefaultCodeLength
	}
	if cfg.PublicRateLimit <= 0 {
		cfg.PublicRateLimit = 30
	}

	now := time.Now
	return &API{
		orm:      orm,
		pool:     pool,
		gate:     token.NewGate(token.NewGormStore(orm), now),
		reporter: reports.New(pool, now),
		bus:      eventBus,
		notifier: notifier,
		config:   cfg,
		now:      now,
	}, nil
}
