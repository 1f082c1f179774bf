package observability

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/riskibarqy/tournament-registry/internal/config"
	"github.com/riskibarqy/tournament-registry/internal/platform/logging"
)

// InitBetterStackLogger configures logger fanout to stdout and optional Better Stack.
func InitBetterStackLogger(cfg config.Config, baseLogger *logging.Logger) (*logging.Logger, func(context.Context) error, error) {
	if baseLogger == nil {
		baseLogger = logging.NewJSON(cfg.LogLevel)
	}

	if !cfg.BetterStackEnabled {
		baseLogger.Info("betterstack disabled", "reason", "BETTERSTACK_ENABLED=false")
		return baseLogger, func(context.Context) error { return nil }, nil
	}

	endpoint := normalizeShipperEndpoint(cfg.BetterStackEndpoint)
	if endpoint == "" {
		return nil, nil, errors.New("betterstack endpoint cannot be empty")
	}

	shipper, err := newLogShipper(
		endpoint,
		strings.TrimSpace(cfg.BetterStackToken),
		cfg.BetterStackTimeout,
		cfg.BetterStackWorkers,
	)
	if err != nil {
		return nil, nil, errors.Wrap(err, "start betterstack shipper")
	}

	stdoutCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(logging.EncoderConfig()),
		zapcore.Lock(os.Stdout),
		cfg.LogLevel,
	)
	shipperCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(logging.EncoderConfig()),
		zapcore.AddSync(shipper),
		cfg.BetterStackMinLevel,
	)

	zapLogger := zap.New(
		zapcore.NewTee(stdoutCore, shipperCore),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)

	logger := logging.FromZap(zapLogger)
	logger.Info("betterstack enabled",
		"endpoint", endpoint,
		"min_level", cfg.BetterStackMinLevel.String(),
		"workers", cfg.BetterStackWorkers,
		"service_name", cfg.ServiceName,
		"environment", cfg.AppEnv,
	)

	return logger, func(ctx context.Context) error {
		drainCtx := ctx
		if drainCtx == nil {
			drainCtx = context.Background()
		}
		if _, hasDeadline := drainCtx.Deadline(); !hasDeadline {
			withTimeout, cancel := context.WithTimeout(drainCtx, 5*time.Second)
			defer cancel()
			drainCtx = withTimeout
		}
		if err := shipper.Close(drainCtx); err != nil {
			return errors.Wrap(err, "drain betterstack queue")
		}
		if err := logger.Sync(); err != nil && !isIgnorableLoggerSyncError(err) {
			return err
		}
		return nil
	}, nil
}

func normalizeShipperEndpoint(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return value
	}
	return "https://" + value
}

// logShipper queues encoded log entries and posts them from a bounded
// worker pool so log volume never blocks request handling.
type logShipper struct {
	endpoint  string
	token     string
	timeout   time.Duration
	client    *fasthttp.Client
	queue     chan *bytebufferpool.ByteBuffer
	pool      *ants.Pool
	dispatch  *conc.WaitGroup
	inflight  sync.WaitGroup
	queueMu   sync.RWMutex
	closeOnce sync.Once
	closed    atomic.Bool
	dropped   atomic.Uint64
}

func newLogShipper(endpoint, token string, timeout time.Duration, workers int) (*logShipper, error) {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if workers <= 0 {
		workers = 2
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, errors.Wrap(err, "create worker pool")
	}

	s := &logShipper{
		endpoint: endpoint,
		token:    token,
		timeout:  timeout,
		client: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		queue:    make(chan *bytebufferpool.ByteBuffer, 1024),
		pool:     pool,
		dispatch: conc.NewWaitGroup(),
	}
	s.dispatch.Go(s.run)

	return s, nil
}

func (s *logShipper) Write(p []byte) (int, error) {
	payload := bytes.TrimSpace(p)
	if len(payload) == 0 {
		return len(p), nil
	}

	s.queueMu.RLock()
	defer s.queueMu.RUnlock()
	if s.closed.Load() {
		return len(p), nil
	}

	// Copy payload because zap reuses internal buffers after Write returns.
	buf := bytebufferpool.Get()
	_, _ = buf.Write(payload)

	select {
	case s.queue <- buf:
	default:
		bytebufferpool.Put(buf)
		dropped := s.dropped.Add(1)
		if dropped == 1 || dropped%100 == 0 {
			fmt.Fprintf(os.Stderr, "log shipper queue full; dropped logs=%d\n", dropped)
		}
	}

	return len(p), nil
}

func (s *logShipper) run() {
	for buf := range s.queue {
		buf := buf
		s.inflight.Add(1)
		if err := s.pool.Submit(func() {
			defer s.inflight.Done()
			s.send(buf)
		}); err != nil {
			s.inflight.Done()
			bytebufferpool.Put(buf)
			fmt.Fprintf(os.Stderr, "log shipper: %v\n", errors.Wrap(err, "submit send task"))
		}
	}
}

func (s *logShipper) send(buf *bytebufferpool.ByteBuffer) {
	defer bytebufferpool.Put(buf)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	req.SetBody(buf.B)

	if err := s.client.DoTimeout(req, resp, s.timeout); err != nil {
		fmt.Fprintf(os.Stderr, "log shipper: %v\n", errors.Wrap(err, "send log entry"))
		return
	}

	if code := resp.StatusCode(); code >= fasthttp.StatusMultipleChoices {
		fmt.Fprintf(os.Stderr, "log shipper got non-2xx status=%d\n", code)
	}
}

func (s *logShipper) Close(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s.closeOnce.Do(func() {
		s.queueMu.Lock()
		s.closed.Store(true)
		close(s.queue)
		s.queueMu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		s.dispatch.Wait()
		s.inflight.Wait()
		s.pool.Release()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "drain queue")
	}
}

func (s *logShipper) Sync() error {
	return nil
}

func isIgnorableLoggerSyncError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "bad file descriptor") || strings.Contains(msg, "invalid argument")
}
