package database

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/diwise/api-sos/internal/pkg/infrastructure/metrics"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/repositories/persistence"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrUnavailable = errors.New("database unavailable")

//go:generate moq -rm -out sessionprovider_mock.go . SessionProvider

//SessionProvider hands out database sessions. Every acquired session must be
//released exactly once.
type SessionProvider interface {
	Acquire(ctx context.Context) (*gorm.DB, error)
	Release(session *gorm.DB)
}

//ConnectorFunc is used to inject a database connection method into NewDatabaseConnection
type ConnectorFunc func() (*gorm.DB, error)

//NewSQLiteConnector opens a connection to a sqlite database. An empty dsn
//opens an in memory database shared by all connections in the pool.
func NewSQLiteConnector(dsn string) ConnectorFunc {
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}

	return func() (*gorm.DB, error) {
		db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})

		if err == nil {
			db.Exec("PRAGMA foreign_keys = ON")
		}

		return db, err
	}
}

//NewPostgreSQLConnector opens a connection to postgres through the pgx driver
func NewPostgreSQLConnector(dsn string, log zerolog.Logger) ConnectorFunc {
	return func() (*gorm.DB, error) {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to connect to postgres")
		}
		return db, err
	}
}

//NewConnector selects a connector by driver name
func NewConnector(driver, dsn string, log zerolog.Logger) (ConnectorFunc, error) {
	switch driver {
	case "", "sqlite":
		return NewSQLiteConnector(dsn), nil
	case "postgres":
		return NewPostgreSQLConnector(dsn, log), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", driver)
}

//NewDatabaseConnection connects and migrates the schema
func NewDatabaseConnection(connect ConnectorFunc) (*gorm.DB, error) {
	impl, err := connect()
	if err != nil {
		return nil, err
	}

	err = impl.AutoMigrate(persistence.Models()...)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database schema: %w", err)
	}

	return impl, nil
}

type Provider struct {
	db      *gorm.DB
	sem     chan struct{}
	breaker *gobreaker.CircuitBreaker[struct{}]
	inUse   atomic.Int64
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// NewSessionProvider bounds the number of concurrently acquired sessions to
// maxSessions. Acquire pings the database through a circuit breaker so that
// an unreachable database fails requests fast.
func NewSessionProvider(db *gorm.DB, maxSessions int, m *metrics.Metrics, log zerolog.Logger) *Provider {
	if maxSessions <= 0 {
		maxSessions = 10
	}

	p := &Provider{
		db:      db,
		sem:     make(chan struct{}, maxSessions),
		metrics: m,
		log:     log,
	}

	p.breaker = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "database",
		MaxRequests: 1,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker changed state")
		},
	})

	return p
}

func (p *Provider) Acquire(ctx context.Context) (*gorm.DB, error) {
	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		p.metrics.SessionFailed()
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, ctx.Err())
	}

	_, err := p.breaker.Execute(func() (struct{}, error) {
		sqlDB, err := p.db.DB()
		if err != nil {
			return struct{}{}, err
		}
		return struct{}{}, sqlDB.PingContext(ctx)
	})
	if err != nil {
		<-p.sem
		p.metrics.SessionFailed()
		p.log.Error().Err(err).Msg("failed to acquire database session")
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	p.inUse.Add(1)
	p.metrics.SessionAcquired()

	return p.db.Session(&gorm.Session{NewDB: true, Context: ctx}), nil
}

func (p *Provider) Release(session *gorm.DB) {
	if session == nil {
		return
	}

	p.inUse.Add(-1)
	p.metrics.SessionReleased()
	<-p.sem
}

// InUse returns the number of sessions that have been acquired but not yet released
func (p *Provider) InUse() int64 {
	return p.inUse.Load()
}

func (p *Provider) DB() *gorm.DB {
	return p.db
}
