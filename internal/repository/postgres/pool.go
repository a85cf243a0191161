package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/geo-engine/internal/config"
	"github.com/geo-engine/internal/metrics"
	apperrors "github.com/geo-engine/internal/pkg/errors"
)

// Conn - арендованное соединение. Используется только внутри колбэка WithConn.
type Conn interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ConnSource выдает соединения и функцию их возврата в пул
type ConnSource interface {
	Acquire(ctx context.Context) (Conn, func(), error)
	Ping(ctx context.Context) error
	Close()
}

type pgxSource struct {
	pool *pgxpool.Pool
}

func (s *pgxSource) Acquire(ctx context.Context) (Conn, func(), error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, nil, err
	}
	return conn, conn.Release, nil
}

func (s *pgxSource) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *pgxSource) Close() {
	s.pool.Close()
}

// Pool - менеджер пула соединений к PostGIS.
// Создается один раз при старте процесса. Если создание не удалось, пул
// остается в деградированном состоянии и каждый Acquire сразу возвращает
// ErrPoolUnavailable без попыток переподключения.
type Pool struct {
	src            ConnSource
	initErr        error
	acquireTimeout time.Duration
	inUse          atomic.Int64
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// New создает пул по конфигурации и проверяет его через Ping
func New(ctx context.Context, cfg *config.DatabaseConfig, m *metrics.Metrics, logger *zap.Logger) *Pool {
	p := &Pool{
		acquireTimeout: cfg.AcquireTimeout,
		metrics:        m,
		logger:         logger,
	}

	src, err := connect(ctx, cfg)
	if err != nil {
		p.initErr = err
		logger.Error("PostgreSQL pool initialization failed, running in degraded mode",
			zap.String("host", cfg.Host),
			zap.Int("port", cfg.Port),
			zap.String("database", cfg.DBName),
			zap.Error(err),
		)
		return p
	}

	p.src = src
	logger.Info("PostgreSQL connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.DBName),
		zap.Int("min_conns", cfg.MinConns),
		zap.Int("max_conns", cfg.MaxConns),
	)
	return p
}

func connect(ctx context.Context, cfg *config.DatabaseConfig) (ConnSource, error) {
	pgxCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pgxCfg.MinConns = int32(cfg.MinConns)
	pgxCfg.MaxConns = int32(cfg.MaxConns)
	if cfg.ConnMaxLifetime > 0 {
		pgxCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	if cfg.ConnMaxIdleTime > 0 {
		pgxCfg.MaxConnIdleTime = cfg.ConnMaxIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &pgxSource{pool: pool}, nil
}

// NewWithSource оборачивает готовый источник соединений (тесты, внешние пулы)
func NewWithSource(src ConnSource, acquireTimeout time.Duration, m *metrics.Metrics, logger *zap.Logger) *Pool {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pool{
		src:            src,
		acquireTimeout: acquireTimeout,
		metrics:        m,
		logger:         logger,
	}
}

// NewDegraded - пул, который никогда не был инициализирован
func NewDegraded(initErr error, logger *zap.Logger) *Pool {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pool{initErr: initErr, logger: logger}
}

// WithConn арендует соединение на время fn. Соединение возвращается в пул
// при любом выходе из fn, включая панику.
func (p *Pool) WithConn(ctx context.Context, fn func(ctx context.Context, conn Conn) error) error {
	if p.initErr != nil {
		p.metrics.AcquireFailed()
		return apperrors.ErrPoolUnavailable.WithCause(p.initErr)
	}

	acquireCtx := ctx
	if p.acquireTimeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, p.acquireTimeout)
		defer cancel()
	}

	conn, release, err := p.src.Acquire(acquireCtx)
	if err != nil {
		p.metrics.AcquireFailed()
		p.logger.Warn("Failed to acquire connection", zap.Error(err))
		return apperrors.ErrStoreUnavailable.WithCause(fmt.Errorf("acquire connection: %w", err))
	}

	p.inUse.Add(1)
	p.metrics.ConnAcquired()
	defer func() {
		release()
		p.inUse.Add(-1)
		p.metrics.ConnReleased()
	}()

	return fn(ctx, conn)
}

// WithCursor открывает транзакцию на арендованном соединении.
// При успехе fn транзакция фиксируется, если autoCommit, иначе откатывается;
// при ошибке или панике всегда откатывается. Транзакция закрывается до возврата соединения.
func (p *Pool) WithCursor(ctx context.Context, autoCommit bool, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return p.WithConn(ctx, func(ctx context.Context, conn Conn) error {
		tx, err := conn.Begin(ctx)
		if err != nil {
			return apperrors.ErrStoreUnavailable.WithCause(fmt.Errorf("begin transaction: %w", err))
		}

		finished := false
		defer func() {
			if finished {
				return
			}
			// Отмененный клиентом контекст не должен мешать закрыть транзакцию
			cleanupCtx := context.WithoutCancel(ctx)
			if rbErr := tx.Rollback(cleanupCtx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				p.logger.Warn("Failed to rollback transaction", zap.Error(rbErr))
			}
		}()

		if err := fn(ctx, tx); err != nil {
			return err
		}

		if autoCommit {
			finished = true
			if err := tx.Commit(ctx); err != nil {
				return apperrors.ErrStoreUnavailable.WithCause(fmt.Errorf("commit transaction: %w", err))
			}
		}
		return nil
	})
}

// InUse - число арендованных в данный момент соединений
func (p *Pool) InUse() int64 {
	return p.inUse.Load()
}

// Health проверяет доступность хранилища
func (p *Pool) Health(ctx context.Context) error {
	if p.initErr != nil {
		return apperrors.ErrPoolUnavailable.WithCause(p.initErr)
	}
	if err := p.src.Ping(ctx); err != nil {
		return apperrors.ErrStoreUnavailable.WithCause(err)
	}
	return nil
}

// Degraded - пул не был инициализирован
func (p *Pool) Degraded() bool {
	return p.initErr != nil
}

func (p *Pool) Close() {
	if p.src == nil {
		return
	}
	p.logger.Info("Closing PostgreSQL pool")
	p.src.Close()
}
