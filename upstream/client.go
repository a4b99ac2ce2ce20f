package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// NarrativePath 是上游生成叙述的接口路径。
const NarrativePath = "/api/ai/generate-narrative"

var (
	// ErrUnsuccessful 表示上游返回 success=false。
	ErrUnsuccessful = errors.New("上游叙述服务返回失败")
	// ErrEmptyNarrative 表示上游返回成功但叙述为空。
	ErrEmptyNarrative = errors.New("上游叙述为空")
)

// StatusError 表示上游返回了非 2xx 状态码。
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("上游叙述服务状态码 %d: %s", e.Code, e.Body)
}

// Options 配置上游客户端。
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Attempts   uint
	RetryDelay time.Duration
	// RPS <= 0 表示不限流。
	RPS        float64
	Burst      int
	HTTPClient *http.Client
	Logger     logrus.FieldLogger
}

// Client 调用上游 AI 叙述服务，带重试与限流。
type Client struct {
	baseURL string
	opts    Options
	http    *http.Client
	limiter *rate.Limiter
	log     logrus.FieldLogger
}

// New 创建客户端，BaseURL 不能为空。
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("上游地址不能为空")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	// retry-go 中 0 次表示无限重试
	if opts.Attempts == 0 {
		opts.Attempts = 3
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 500 * time.Millisecond
	}
	limit := rate.Inf
	if opts.RPS > 0 {
		limit = rate.Limit(opts.RPS)
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Client{
		baseURL: base,
		opts:    opts,
		http:    httpClient,
		limiter: rate.NewLimiter(limit, opts.Burst),
		log:     log,
	}, nil
}

// FetchNarrative 请求上游生成叙述。网络错误与 5xx 会重试，4xx、success=false 与空叙述不重试。
func (c *Client) FetchNarrative(ctx context.Context, patient Patient, visits []Visit) (string, error) {
	body, err := json.Marshal(narrativeRequest{Patient: patient, Visits: visits})
	if err != nil {
		return "", fmt.Errorf("序列化叙述请求失败: %w", err)
	}

	var (
		narrative string
		lastErr   error
	)
	err = retry.Do(
		func() error {
			if err := c.limiter.Wait(ctx); err != nil {
				lastErr = err
				return retry.Unrecoverable(err)
			}
			narrative, lastErr = c.post(ctx, body)
			if lastErr == nil {
				return nil
			}
			var se *StatusError
			if errors.As(lastErr, &se) && se.Code < 500 {
				return retry.Unrecoverable(lastErr)
			}
			if errors.Is(lastErr, ErrUnsuccessful) || errors.Is(lastErr, ErrEmptyNarrative) {
				return retry.Unrecoverable(lastErr)
			}
			return lastErr
		},
		retry.Context(ctx),
		retry.Attempts(c.opts.Attempts),
		retry.Delay(c.opts.RetryDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.log.WithFields(logrus.Fields{"attempt": n + 1, "error": err}).Warn("上游叙述请求失败，准备重试")
		}),
	)
	if err != nil {
		if lastErr == nil || ctx.Err() != nil {
			lastErr = err
		}
		return "", lastErr
	}
	return narrative, nil
}

func (c *Client) post(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+NarrativePath, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("请求上游叙述服务失败: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("读取上游响应失败: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var out narrativeResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("解析上游响应失败: %w", err)
	}
	if !out.Success {
		if out.Error != "" {
			return "", fmt.Errorf("%w: %s", ErrUnsuccessful, out.Error)
		}
		return "", ErrUnsuccessful
	}
	if strings.TrimSpace(out.Narrative) == "" {
		return "", ErrEmptyNarrative
	}
	return out.Narrative, nil
}
