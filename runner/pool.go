package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"github.com/yasserelgammal/rate-limiter/limiter"
	"github.com/yasserelgammal/rate-limiter/store"
)

// PoolConfig configures a Pool, populated via functional options
// (WithXxx(...) Option), the same shape as explore.Option.
type PoolConfig struct {
	Workers int

	// RatePerSecond and Burst size the admission-control token bucket in
	// front of Submit.
	RatePerSecond int64
	Burst         int64

	// BreakerFailureThreshold is how many consecutive failures of one
	// query kind trip that kind's circuit breaker open.
	BreakerFailureThreshold uint32
	// BreakerTimeout is how long a tripped breaker stays open before
	// allowing a half-open probe.
	BreakerTimeout time.Duration

	Logger *slog.Logger
}

// Option configures a PoolConfig.
type Option func(*PoolConfig)

// DefaultPoolConfig returns the Pool defaults: 4 workers, a generous
// admission rate, a 5-consecutive-failure breaker threshold.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		Workers:                 4,
		RatePerSecond:           100,
		Burst:                   50,
		BreakerFailureThreshold: 5,
		BreakerTimeout:          30 * time.Second,
		Logger:                  slog.Default(),
	}
}

// WithWorkers sets the number of goroutines draining the job queue.
func WithWorkers(n int) Option {
	return func(c *PoolConfig) { c.Workers = n }
}

// WithRateLimit sets the admission-control token bucket's rate and burst.
func WithRateLimit(ratePerSecond, burst int64) Option {
	return func(c *PoolConfig) { c.RatePerSecond = ratePerSecond; c.Burst = burst }
}

// WithBreakerThreshold sets how many consecutive failures of one query kind
// trip that kind's breaker, and how long it stays open.
func WithBreakerThreshold(consecutiveFailures uint32, timeout time.Duration) Option {
	return func(c *PoolConfig) { c.BreakerFailureThreshold = consecutiveFailures; c.BreakerTimeout = timeout }
}

// WithLogger overrides the *slog.Logger Pool logs submissions/results to.
func WithLogger(l *slog.Logger) Option {
	return func(c *PoolConfig) { c.Logger = l }
}

// Job is a unit of work submitted to a Pool: Kind names the query kind
// ("refinement", "consistency", "determinism", "reachability",
// "get-component") and keys the per-kind circuit breaker; Run performs the
// actual (single-threaded, per spec §5) query execution and returns its
// result value as an opaque interface{} so Pool never needs to import
// query itself.
type Job struct {
	Kind string
	Run  func() (interface{}, error)
}

type request struct {
	id     uuid.UUID
	job    Job
	result chan outcome
}

type outcome struct {
	id    uuid.UUID
	value interface{}
	err   error
}

// Pool is spec §5's bounded worker pool for independent queries: queries
// submitted via Submit are admission-controlled by a token bucket, stamped
// with a correlation uuid, queued to a fixed number of workers, and each
// query kind runs behind its own circuit breaker so a query type whose jobs
// keep returning errors is refused with ErrBreakerOpen instead of run.
type Pool struct {
	cfg PoolConfig

	jobs chan request

	limiter      *limiter.TokenBucket
	limiterStore store.Store

	breakersMu sync.Mutex
	breakers   map[string]*gobreaker.CircuitBreaker[interface{}]

	logger *slog.Logger

	closeOnce sync.Once
	closed    chan struct{}
	wg        sync.WaitGroup
}

// NewPool builds and starts a Pool with cfg's workers already running.
func NewPool(opts ...Option) (*Pool, error) {
	cfg := DefaultPoolConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Workers <= 0 {
		return nil, fmt.Errorf("runner: NewPool: workers must be positive, got %d", cfg.Workers)
	}

	limiterStore := store.NewMemoryStore(time.Minute)
	tb, err := limiter.NewTokenBucket(limiter.Config{
		Rate:     cfg.RatePerSecond,
		Duration: time.Second,
		Burst:    cfg.Burst,
	}, limiterStore)
	if err != nil {
		return nil, fmt.Errorf("runner: NewPool: rate limiter: %w", err)
	}

	p := &Pool{
		cfg:          cfg,
		jobs:         make(chan request, cfg.Workers*4),
		limiter:      tb,
		limiterStore: limiterStore,
		breakers:     make(map[string]*gobreaker.CircuitBreaker[interface{}]),
		logger:       cfg.Logger,
		closed:       make(chan struct{}),
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}

	for i := 0; i < cfg.Workers; i++ {
		p.wg.Add(1)
		go p.work()
	}

	return p, nil
}

// Submit admits job onto the pool: it is rejected outright if the token
// bucket has no capacity (ErrRateLimited) or the pool is closed
// (ErrPoolClosed), otherwise it is stamped with a fresh correlation uuid,
// queued, and Submit blocks until either a worker returns its result or ctx
// is done. The breaker for job.Kind may itself reject it with
// ErrBreakerOpen before job.Run ever executes.
func (p *Pool) Submit(ctx context.Context, job Job) (interface{}, error) {
	select {
	case <-p.closed:
		return nil, ErrPoolClosed
	default:
	}

	if !p.limiter.Allow(job.Kind) {
		return nil, ErrRateLimited
	}

	id := uuid.New()
	p.logger.Info("runner: query submitted", "correlation_id", id.String(), "kind", job.Kind)

	req := request{id: id, job: job, result: make(chan outcome, 1)}

	select {
	case p.jobs <- req:
	case <-p.closed:
		return nil, ErrPoolClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case out := <-req.result:
		if out.err != nil {
			p.logger.Warn("runner: query failed", "correlation_id", id.String(), "kind", job.Kind, "error", out.err)
		} else {
			p.logger.Info("runner: query completed", "correlation_id", id.String(), "kind", job.Kind)
		}

		return out.value, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops admitting new work and waits for in-flight jobs to drain.
// Already-queued jobs still run; Submit called after Close returns
// ErrPoolClosed immediately.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.closed)
		close(p.jobs)
	})
	p.wg.Wait()
}

func (p *Pool) work() {
	defer p.wg.Done()

	for req := range p.jobs {
		breaker := p.breakerFor(req.job.Kind)
		val, err := breaker.Execute(req.job.Run)
		if errors.Is(err, gobreaker.ErrOpenState) {
			err = fmt.Errorf("%w: %s", ErrBreakerOpen, req.job.Kind)
		}
		req.result <- outcome{id: req.id, value: val, err: err}
	}
}

// breakerFor returns (creating on first use) the circuit breaker guarding
// one query kind, per SPEC_FULL.md's domain-stack note: a pathological
// query kind (e.g. a runaway quotient) stops being admitted once it trips,
// exactly as nmxmxh-inos_v1's mesh coordinator isolates a misbehaving peer.
func (p *Pool) breakerFor(kind string) *gobreaker.CircuitBreaker[interface{}] {
	p.breakersMu.Lock()
	defer p.breakersMu.Unlock()

	if cb, ok := p.breakers[kind]; ok {
		return cb
	}

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        kind,
		MaxRequests: 1,
		Timeout:     p.cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= p.cfg.BreakerFailureThreshold
		},
	})
	p.breakers[kind] = cb

	return cb
}
