package zohoclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/zohobooks/appctx"
	"bitbucket.org/mmdatafocus/zohobooks/bookstest"
	"bitbucket.org/mmdatafocus/zohobooks/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"golang.org/x/oauth2"
)

func TestFromOAuthFetchesTokenOnce(t *testing.T) {
	srv := bookstest.NewServer()
	defer srv.Close()

	c, err := FromOAuth(context.Background(), srv.Config(), WithRegisterer(prometheus.NewRegistry()))
	if err != nil {
		t.Fatalf("FromOAuth: %v", err)
	}
	if srv.TokenRequests() != 1 {
		t.Fatalf("token requests after FromOAuth = %d", srv.TokenRequests())
	}

	for i := 0; i < 3; i++ {
		if err := c.Do(context.Background(), Request{Path: "contacts"}, nil); err != nil {
			t.Fatalf("Do: %v", err)
		}
	}
	if srv.TokenRequests() != 1 {
		t.Fatalf("token requests = %d, want 1", srv.TokenRequests())
	}

	last := srv.LastRequest()
	if !strings.HasPrefix(last.Header.Get("Authorization"), "Zoho-oauthtoken 1000.") {
		t.Fatalf("authorization = %q", last.Header.Get("Authorization"))
	}
	if last.Query["organization_id"][0] != bookstest.OrgId {
		t.Fatalf("organization_id = %v", last.Query["organization_id"])
	}
	if last.Header.Get(correlationHeader) == "" {
		t.Fatalf("correlation id missing")
	}
}

func TestFromOAuthRejectsBadCredentials(t *testing.T) {
	srv := bookstest.NewServer()
	defer srv.Close()

	cfg := srv.Config()
	cfg.Client.Secret = "wrong"
	c, err := FromOAuth(context.Background(), cfg, WithRegisterer(prometheus.NewRegistry()))
	if c != nil || err == nil {
		t.Fatalf("expected error, got client %v", c)
	}
	var retrieveErr *oauth2.RetrieveError
	if !errors.As(err, &retrieveErr) {
		t.Fatalf("expected *oauth2.RetrieveError, got %T: %v", err, err)
	}

	cfg.OrgId = ""
	if _, err := FromOAuth(context.Background(), cfg); !errors.Is(err, config.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestDoUsesContextValues(t *testing.T) {
	srv := bookstest.NewServer()
	defer srv.Close()
	c, err := FromOAuth(context.Background(), srv.Config(), WithRegisterer(prometheus.NewRegistry()))
	if err != nil {
		t.Fatalf("FromOAuth: %v", err)
	}

	ctx := appctx.SetCorrelationId(context.Background(), "req-123")
	if err := c.Do(ctx, Request{Path: "contacts"}, nil); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if got := srv.LastRequest().Header.Get(correlationHeader); got != "req-123" {
		t.Fatalf("correlation id = %q", got)
	}

	ctx = appctx.SetOrganizationId(ctx, "999")
	err = c.Do(ctx, Request{Path: "contacts"}, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Code != 6041 {
		t.Fatalf("expected organization error, got %v", err)
	}
}

func newStaticClient(t *testing.T, handler http.HandlerFunc, reg prometheus.Registerer) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	cfg := config.ZohoConfig{OrgId: "1", APIBaseURL: ts.URL}
	return New(context.Background(), cfg,
		WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "static", Expiry: time.Now().Add(time.Hour)})),
		WithRegisterer(reg))
}

func TestDoErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantCode   int
		wantMsg    string
		wantDecode bool
	}{
		{name: "envelope error", status: http.StatusNotFound, body: `{"code":1002,"message":"Contact does not exist."}`, wantStatus: 404, wantCode: 1002, wantMsg: "Contact does not exist."},
		{name: "plain error body", status: http.StatusBadGateway, body: "bad gateway", wantStatus: 502, wantMsg: "bad gateway"},
		{name: "ok status with error code", status: http.StatusOK, body: `{"code":36004,"message":"Sales order number already exists."}`, wantStatus: 200, wantCode: 36004, wantMsg: "Sales order number already exists."},
		{name: "undecodable success", status: http.StatusOK, body: `<html>`, wantDecode: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newStaticClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}, prometheus.NewRegistry())

			err := c.Do(context.Background(), Request{Path: "contacts/1"}, nil)
			var apiErr *APIError
			if tt.wantDecode {
				if err == nil || errors.As(err, &apiErr) {
					t.Fatalf("expected decode error, got %v", err)
				}
				return
			}
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %v", err)
			}
			if apiErr.StatusCode != tt.wantStatus || apiErr.Code != tt.wantCode || apiErr.Message != tt.wantMsg {
				t.Fatalf("api error = %+v", apiErr)
			}
		})
	}
}

func TestDoSendsJSONAndDecodes(t *testing.T) {
	var mu sync.Mutex
	var gotMethod, gotType, gotBody, gotPath string
	c := newStaticClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Write([]byte(`{"code":0,"message":"success","contact":{"contact_id":"7"}}`))
	}, prometheus.NewRegistry())

	var out struct {
		Contact struct {
			ContactId string `json:"contact_id"`
		} `json:"contact"`
	}
	err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/contacts", Body: map[string]string{"contact_name": "A"}}, &out)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if gotMethod != http.MethodPost || gotType != "application/json" || gotPath != "/contacts" {
		t.Fatalf("request = %s %s %s", gotMethod, gotPath, gotType)
	}
	if gotBody != `{"contact_name":"A"}` {
		t.Fatalf("body = %s", gotBody)
	}
	if out.Contact.ContactId != "7" {
		t.Fatalf("decoded = %+v", out)
	}
}

func TestDoRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	var status atomic.Int32
	status.Store(http.StatusOK)
	c := newStaticClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
		w.Write([]byte(`{"code":0,"message":"success"}`))
	}, reg)

	_ = c.Do(context.Background(), Request{Path: "salesorders/1/status/void", Method: http.MethodPost}, nil)
	_ = c.Do(context.Background(), Request{Path: "salesorders"}, nil)
	status.Store(http.StatusUnauthorized)
	err := c.Do(context.Background(), Request{Path: "salesorders"}, nil)
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	if got := testutil.ToFloat64(c.metrics.requests.WithLabelValues("salesorders", "POST", "200")); got != 1 {
		t.Fatalf("POST 200 = %v", got)
	}
	if got := testutil.ToFloat64(c.metrics.requests.WithLabelValues("salesorders", "GET", "401")); got != 1 {
		t.Fatalf("GET 401 = %v", got)
	}
	if n := testutil.CollectAndCount(c.metrics.duration); n != 2 {
		t.Fatalf("duration series = %d, want 2", n)
	}

	// a second client on the same registry shares the collectors
	other := newStaticClient(t, func(w http.ResponseWriter, r *http.Request) {}, reg)
	if other.metrics.requests != c.metrics.requests {
		t.Fatalf("collectors not shared")
	}
}

func TestDoHonoursCancelledContext(t *testing.T) {
	c := newStaticClient(t, func(w http.ResponseWriter, r *http.Request) {}, prometheus.NewRegistry())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Do(ctx, Request{Path: "contacts"}, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRedisTokenSource(t *testing.T) {
	addr := os.Getenv("REDIS_ADDRESS")
	if os.Getenv("INTEGRATION_TESTS") == "" || addr == "" {
		t.Skip("set INTEGRATION_TESTS=1 and REDIS_ADDRESS to run")
	}
	rdb, locker, err := config.ConnectRedis(context.Background(), addr)
	if err != nil {
		t.Fatalf("ConnectRedis: %v", err)
	}
	defer rdb.Close()

	srv := bookstest.NewServer()
	defer srv.Close()
	cfg := srv.Config()
	rdb.Del(context.Background(), "zohobooks:token:"+cfg.OrgId)

	for i := 0; i < 2; i++ {
		if _, err := FromOAuth(context.Background(), cfg, WithRedis(rdb, locker), WithRegisterer(prometheus.NewRegistry())); err != nil {
			t.Fatalf("FromOAuth %d: %v", i, err)
		}
	}
	if srv.TokenRequests() != 1 {
		t.Fatalf("token requests = %d, want 1 shared through redis", srv.TokenRequests())
	}
}
