package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"scout-client/internal/config"
	"scout-client/internal/constants"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

type Request struct {
	Method       string
	Endpoint     string
	Body         any
	Query        url.Values
	RequiresAuth bool
}

// Transport issues single requests against the API base URL. It knows
// nothing about sessions; the token to attach is passed per call.
type Transport struct {
	baseURL string
	client  *fasthttp.Client
	logger  zerolog.Logger
}

func NewTransport(cfg *config.Config, logger zerolog.Logger) *Transport {
	return &Transport{
		baseURL: cfg.APIBase,
		client: &fasthttp.Client{
			MaxConnsPerHost:     32,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger: logger,
	}
}

// Do sends req with token as bearer credential (when non-empty) and
// decodes a 2xx body into out.
func (t *Transport) Do(ctx context.Context, r Request, token string, out any) error {
	if err := ctx.Err(); err != nil {
		return &Error{Kind: KindNetwork, Err: err}
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	method := r.Method
	if method == "" {
		method = fasthttp.MethodGet
	}

	req.SetRequestURI(t.url(r.Endpoint, r.Query))
	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")
	req.Header.Set("Accept", "application/json")
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if r.Body != nil {
		body, err := json.Marshal(r.Body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		req.SetBody(body)
	}

	start := time.Now()
	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = t.client.DoDeadline(req, resp, deadline)
	} else {
		err = t.client.Do(req, resp)
	}
	if err != nil {
		t.logger.Warn().Err(err).Str("method", method).Str("endpoint", r.Endpoint).Str("request_id", requestID).Msg("request failed")
		return &Error{Kind: KindNetwork, Err: err}
	}

	status := resp.StatusCode()
	t.logger.Debug().
		Str("method", method).
		Str("endpoint", r.Endpoint).
		Str("request_id", requestID).
		Int("status", status).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("request completed")

	if status < 200 || status > 299 {
		return newStatusError(status, resp.Body())
	}

	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (t *Transport) url(endpoint string, query url.Values) string {
	u := t.baseURL + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}
