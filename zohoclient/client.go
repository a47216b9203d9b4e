package zohoclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/zohobooks/appctx"
	"bitbucket.org/mmdatafocus/zohobooks/config"
	"github.com/bsm/redislock"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	authorizationScheme = "Zoho-oauthtoken"
	correlationHeader   = "X-Correlation-Id"
)

var tracer = otel.Tracer("bitbucket.org/mmdatafocus/zohobooks/zohoclient")

// Client sends authenticated requests to one Zoho Books organization.
// It is safe for concurrent use.
type Client struct {
	baseURL string
	orgId   string
	http    *http.Client
	tokens  oauth2.TokenSource
	limiter *rate.Limiter
	logger  *logrus.Logger
	metrics *metrics
}

// Request is one API call. Path is relative to the API base url ("contacts/123").
// Body, when set, is sent as JSON.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

type options struct {
	httpClient *http.Client
	tokens     oauth2.TokenSource
	scopes     []string
	rdb        *redis.Client
	locker     *redislock.Client
	registerer prometheus.Registerer
	logger     *logrus.Logger
}

type Option func(*options)

func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithTokenSource replaces the client credentials grant.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(o *options) { o.tokens = ts }
}

func WithScopes(scopes ...string) Option {
	return func(o *options) { o.scopes = scopes }
}

// WithRedis shares the access token with other processes of the same organization.
func WithRedis(rdb *redis.Client, locker *redislock.Client) Option {
	return func(o *options) {
		o.rdb = rdb
		o.locker = locker
	}
}

func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

func WithLogger(logger *logrus.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// FromOAuth builds a client for cfg and fetches the first access token, so
// that wrong credentials fail here rather than on the first call.
func FromOAuth(ctx context.Context, cfg config.ZohoConfig, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := New(ctx, cfg, opts...)
	tok, err := c.tokens.Token()
	if err != nil {
		config.LogError(c.logger, "zohoclient", "FromOAuth", "Error fetching access token", cfg.OrgId, err)
		return nil, fmt.Errorf("zoho oauth: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, ErrEmptyToken
	}
	return c, nil
}

// New builds a client without contacting the accounts server. Tokens are
// fetched lazily on the first request.
func New(ctx context.Context, cfg config.ZohoConfig, opts ...Option) *Client {
	o := options{registerer: prometheus.DefaultRegisterer}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if o.logger == nil {
		o.logger = config.GetLogger()
	}

	baseURL := cfg.APIBaseURL
	if baseURL == "" {
		baseURL = config.DefaultAPIBaseURL
	}
	if cfg.AccountsURL == "" {
		cfg.AccountsURL = config.DefaultAccountsURL
	}
	perMin := cfg.RateLimitPerMin
	if perMin <= 0 {
		perMin = config.DefaultRateLimitPerMin
	}

	tokens := o.tokens
	if tokens == nil {
		tokenCtx := context.WithValue(ctx, oauth2.HTTPClient, o.httpClient)
		tokens = oauthConfig(cfg, o.scopes).TokenSource(tokenCtx)
		if o.rdb != nil && o.locker != nil {
			tokens = NewRedisTokenSource(o.rdb, o.locker, cfg.OrgId, tokens)
		}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		orgId:   cfg.OrgId,
		http:    o.httpClient,
		tokens:  oauth2.ReuseTokenSource(nil, tokens),
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), perMin),
		logger:  o.logger,
		metrics: newMetrics(o.registerer),
	}
}

type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Do sends req and decodes the response body into out, which may be nil.
// A rejected request returns *APIError; there are no retries.
func (c *Client) Do(ctx context.Context, req Request, out any) (err error) {
	if c.tokens == nil {
		return ErrNoTokenSource
	}
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	resource := resourceOf(req.Path)
	correlationId, ok := appctx.GetCorrelationId(ctx)
	if !ok {
		correlationId = uuid.NewString()
	}

	ctx, span := tracer.Start(ctx, fmt.Sprintf("zoho %s %s", req.Method, resource),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("zoho.resource", resource),
			attribute.String("zoho.correlation_id", correlationId),
		))
	started := time.Now()
	status := 0
	defer func() {
		c.metrics.observe(resource, req.Method, status, started)
		if status > 0 {
			span.SetAttributes(attribute.Int("http.status_code", status))
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.logger.WithFields(logrus.Fields{
				"module":         "zohoclient",
				"funcName":       "Do",
				"method":         req.Method,
				"path":           req.Path,
				"status":         status,
				"correlation_id": correlationId,
			}).Error(err.Error())
		}
		span.End()
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	httpReq, err := c.newRequest(ctx, req, correlationId)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", resource, err)
	}

	var env envelope
	envErr := json.Unmarshal(body, &env)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
		if envErr == nil && env.Message != "" {
			apiErr.Code = env.Code
			apiErr.Message = env.Message
		}
		return apiErr
	}
	if envErr != nil {
		return fmt.Errorf("decode %s response: %w", resource, envErr)
	}
	if env.Code != 0 {
		return &APIError{StatusCode: resp.StatusCode, Code: env.Code, Message: env.Message}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", resource, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, req Request, correlationId string) (*http.Request, error) {
	query := url.Values{}
	for k, v := range req.Query {
		query[k] = v
	}
	orgId := c.orgId
	if v, ok := appctx.GetOrganizationId(ctx); ok {
		orgId = v
	}
	query.Set("organization_id", orgId)
	endpoint := c.baseURL + "/" + strings.TrimLeft(req.Path, "/") + "?" + query.Encode()

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", resourceOf(req.Path), err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, endpoint, body)
	if err != nil {
		return nil, err
	}

	tok, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("zoho oauth: %w", err)
	}
	httpReq.Header.Set("Authorization", authorizationScheme+" "+tok.AccessToken)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(correlationHeader, correlationId)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	return httpReq, nil
}
