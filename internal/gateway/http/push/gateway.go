package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"marketplace/internal/entities"
	retrierconfig "marketplace/pkg/retrier"
	"marketplace/pkg/retrier/backoff_adapter"
)

const (
	serviceName = "push-service"
	methodPush  = "PushToUser"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 3 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
	maxRetries      = 3
)

type pushRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url,omitempty"`
}

type pushResponse struct {
	Delivered int `json:"delivered"`
}

// Gateway клиент внешнего push сервиса: POST {base}/users/{id}/push -> {"delivered": n}.
type Gateway struct {
	baseURL string
	client  httpClient
	retrier retrier
}

func New(baseURL string, client httpClient) *Gateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		MaxRetries:      maxRetries,
		ShouldRetry:     isRetryable,
	}

	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		retrier: backoff_adapter.New(retryConfig),
	}
}

// PushToUser без настроенного сервиса ничего не отправляет и не считает это ошибкой.
func (g *Gateway) PushToUser(ctx context.Context, userID int64, message entities.PushMessage) (int, error) {
	if g.baseURL == "" {
		return 0, nil
	}

	body, err := json.Marshal(pushRequest{
		Title: message.Title,
		Body:  message.Body,
		URL:   message.URL,
	})
	if err != nil {
		return 0, fmt.Errorf("marshal push request: %w", err)
	}

	endpoint := g.baseURL + "/users/" + strconv.FormatInt(userID, 10) + "/push"

	var resp pushResponse
	err = g.executeWithMetrics(ctx, methodPush, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		httpResp, err := g.client.Do(req)
		if err != nil {
			return err
		}
		defer func() {
			_, _ = io.Copy(io.Discard, httpResp.Body)
			_ = httpResp.Body.Close()
		}()

		if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
			return &statusError{code: httpResp.StatusCode}
		}

		resp = pushResponse{}
		if httpResp.StatusCode == http.StatusNoContent {
			return nil
		}
		return json.NewDecoder(httpResp.Body).Decode(&resp)
	})
	if err != nil {
		return 0, fmt.Errorf("gateway push, user %d: %w", userID, err)
	}

	return resp.Delivered, nil
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	var statusErr *statusError
	if errors.As(err, &statusErr) {
		switch statusErr.code {
		case http.StatusTooManyRequests,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// сетевые ошибки транспорта
	var syntaxErr *json.SyntaxError
	return !errors.As(err, &syntaxErr)
}

func (g *Gateway) executeWithMetrics(ctx context.Context, method string, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	status := statusLabel(err)
	GatewayRequestDuration.WithLabelValues(serviceName, method, status).Observe(time.Since(start).Seconds())

	if attempt > 1 {
		GatewayRetriesTotal.WithLabelValues(serviceName, method, status).Inc()
	}

	return err
}

func statusLabel(err error) string {
	if err == nil {
		return "OK"
	}
	var statusErr *statusError
	if errors.As(err, &statusErr) {
		return strconv.Itoa(statusErr.code)
	}
	return "TRANSPORT"
}
