package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/yeisme/busvault/pkg/configs"
	nlog "github.com/yeisme/busvault/pkg/log"
)

// maxBodyBytes 单页面响应体上限，防御异常超大页面.
const maxBodyBytes = 8 << 20

// Fetcher 站点无关的页面拉取器：统一 UA、限速、有界重试与熔断.
// 各 Source 共享一个实例，站点选择器逻辑不在此层.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	ua      string
	retries int
}

// NewFetcher 按抓取配置构建 Fetcher.
func NewFetcher(cfg *configs.ScraperConfig) *Fetcher {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "scraper-fetch",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// 连续 5 次失败后熔断，给目标站点喘息窗口
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			nlog.Logger().Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("fetch circuit breaker state changed")
		},
	})

	// 重试次数在换算成 uint 的 Attempts 前钳制，负值配置按不重试处理
	retries := cfg.Retries
	if retries < 0 {
		retries = 0
	}

	return &Fetcher{
		client:  &http.Client{Timeout: cfg.GetTimeoutDuration()},
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1),
		breaker: breaker,
		ua:      cfg.UserAgent,
		retries: retries,
	}
}

// Get 拉取一个页面并返回响应体.
// 经过限速器排队，失败按指数退避重试，重复失败触发熔断.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait aborted: %w", err)
	}

	body, err := retry.DoWithData(
		func() ([]byte, error) {
			out, err := f.breaker.Execute(func() (any, error) {
				return f.fetchOnce(ctx, url)
			})
			if err != nil {
				return nil, err
			}

			return out.([]byte), nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(f.retries)+1),
		retry.Delay(time.Second),
		retry.MaxJitter(time.Second),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			nlog.Logger().Warn().
				Err(err).
				Uint("attempt", n+1).
				Str("url", url).
				Msg("fetch attempt failed, retrying")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("fetch %s failed: %w", url, err)
	}

	return body, nil
}

// PostForm 以表单编码提交一个 POST 请求并返回响应体，限速与 Get 共用.
// 个别站点（图片列表等）只提供 AJAX 接口，走这里.
func (f *Fetcher) PostForm(ctx context.Context, url string, form neturl.Values) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait aborted: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", f.ua)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}

// fetchOnce 单次请求，非 2xx 视为失败.
func (f *Fetcher) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", f.ua)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}
