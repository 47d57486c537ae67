package fbref

import (
	"context"
	"io"
	"math/rand"
	"net"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"golang.org/x/time/rate"

	"github.com/MironKaigorodcev/ETLfootball/internal/platform/logging"
)

const defaultBaseURL = "https://fbref.com"

var errBlocked = crerr.New("blocked by origin")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string

	// Randomized human-cadence gap between requests, and a longer
	// "reading pause" every LongPauseEvery requests.
	MinDelay       time.Duration
	MaxDelay       time.Duration
	LongPauseEvery int
	LongPauseMin   time.Duration
	LongPauseMax   time.Duration

	// User-Agent rotates every RotateUAEvery requests and on every retry.
	RotateUAEvery int

	MaxRetries     int
	RetryBaseDelay time.Duration
	Timeout        time.Duration

	Logger *logging.Logger

	// Seeded in tests for deterministic delays.
	Rand *rand.Rand
	// Sleep is a test seam; defaults to a context-aware timer wait.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Client fetches pages from a sports-reference origin one at a time,
// spacing requests out and backing off when the origin blocks. It is not
// safe for concurrent use; the whole point is to serialize access.
type Client struct {
	httpClient *http.Client
	baseURL    string

	minDelay       time.Duration
	maxDelay       time.Duration
	longPauseEvery int
	longPauseMin   time.Duration
	longPauseMax   time.Duration
	rotateUAEvery  int
	maxRetries     int
	retryBaseDelay time.Duration

	limiter *rate.Limiter
	logger  *logging.Logger
	rng     *rand.Rand
	sleep   func(ctx context.Context, d time.Duration) error

	lastRequest  time.Time
	requestCount int
	userAgent    string
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 30 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	sleep := cfg.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	rotateUAEvery := cfg.RotateUAEvery
	if rotateUAEvery < 1 {
		rotateUAEvery = 3
	}
	longPauseEvery := cfg.LongPauseEvery
	if longPauseEvery < 1 {
		longPauseEvery = 5
	}

	// Floor limiter under the randomized gaps: even a zero-delay
	// configuration cannot admit more than one request per interval.
	floor := cfg.MinDelay
	if floor <= 0 {
		floor = 100 * time.Millisecond
	}

	c := &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		minDelay:       cfg.MinDelay,
		maxDelay:       cfg.MaxDelay,
		longPauseEvery: longPauseEvery,
		longPauseMin:   cfg.LongPauseMin,
		longPauseMax:   cfg.LongPauseMax,
		rotateUAEvery:  rotateUAEvery,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		retryBaseDelay: cfg.RetryBaseDelay,
		limiter:        rate.NewLimiter(rate.Every(floor), 1),
		logger:         logger,
		rng:            rng,
		sleep:          sleep,
	}
	c.rotateIdentity()

	return c
}

// Get fetches one page. ok is false when the page could not be retrieved
// after the configured retries; the caller is expected to skip that target
// and move on. A non-nil error is returned only when the context ends.
func (c *Client) Get(ctx context.Context, path string) (html string, ok bool, err error) {
	fullURL := c.absoluteURL(path)

	if err := c.waitTurn(ctx); err != nil {
		return "", false, err
	}
	if c.requestCount > 0 && c.requestCount%c.rotateUAEvery == 0 {
		c.rotateIdentity()
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.rotateIdentity()
		}

		body, status, reqErr := c.doRequest(ctx, fullURL)
		switch {
		case reqErr != nil:
			if ctx.Err() != nil {
				return "", false, ctx.Err()
			}
			if !isTimeout(reqErr) {
				c.logger.WarnContext(ctx, "request failed", "url", fullURL, "error", reqErr)
				return "", false, nil
			}
			// Timeouts retry immediately, without backoff growth.
			lastErr = reqErr
			c.logger.WarnContext(ctx, "request timed out", "url", fullURL, "attempt", attempt+1)
		case status == http.StatusForbidden:
			lastErr = crerr.Wrapf(errBlocked, "status %d", status)
			if attempt < c.maxRetries {
				wait := c.blockedBackoff(attempt)
				c.logger.WarnContext(ctx, "blocked by origin, backing off",
					"url", fullURL, "attempt", attempt+1, "wait", wait)
				if err := c.sleep(ctx, wait); err != nil {
					return "", false, err
				}
			}
		case status != http.StatusOK:
			c.logger.WarnContext(ctx, "unexpected status", "url", fullURL, "status", status)
			return "", false, nil
		default:
			c.lastRequest = time.Now()
			c.requestCount++
			c.logger.DebugContext(ctx, "page fetched", "url", fullURL, "bytes", len(body))
			return body, true, nil
		}
	}

	c.logger.ErrorContext(ctx, "retries exhausted", "url", fullURL, "error", lastErr)
	return "", false, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return "", 0, err
	}
	c.applyHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return "", 0, err
	}
	return string(body), resp.StatusCode, nil
}

// waitTurn enforces the human-cadence gap. The pause subtracts whatever
// wall-clock time already elapsed since the last successful request, so
// slow parsing between fetches is not punished twice.
func (c *Client) waitTurn(ctx context.Context) error {
	delay := c.randomBetween(c.minDelay, c.maxDelay)
	if c.requestCount > 0 && c.requestCount%c.longPauseEvery == 0 {
		delay = c.randomBetween(c.longPauseMin, c.longPauseMax)
		c.logger.DebugContext(ctx, "taking a reading pause", "pause", delay)
	}

	if !c.lastRequest.IsZero() {
		if elapsed := time.Since(c.lastRequest); elapsed < delay {
			if err := c.sleep(ctx, delay-elapsed); err != nil {
				return err
			}
		}
	}

	return c.limiter.Wait(ctx)
}

// blockedBackoff grows exponentially with the attempt number plus jitter.
// The jitter is bounded by half the base delay so consecutive waits are
// strictly increasing.
func (c *Client) blockedBackoff(attempt int) time.Duration {
	base := c.retryBaseDelay
	if base <= 0 {
		base = time.Second
	}
	wait := base << uint(attempt)
	jitter := time.Duration(c.rng.Int63n(int64(base/2) + 1))
	return wait + jitter
}

func (c *Client) randomBetween(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(c.rng.Int63n(int64(max-min)))
}

func (c *Client) absoluteURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func isTimeout(err error) bool {
	if crerr.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return crerr.As(err, &netErr) && netErr.Timeout()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
