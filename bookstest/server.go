// Package bookstest runs an in-memory Zoho Books API and accounts server for tests.
//
// It issues client credentials tokens, checks the organization_id and the
// Zoho-oauthtoken header on every call, and keeps contacts, sales orders and
// invoices in maps. Request bodies are bound with the same binding tags the
// client validates with, so a request the client would let through is
// accepted and one it should have stopped is answered with HTTP 400.
package bookstest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"time"

	"bitbucket.org/mmdatafocus/zohobooks/config"
	"bitbucket.org/mmdatafocus/zohobooks/models"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	OrgId        = "10234695"
	ClientId     = "1000.TESTCLIENT"
	ClientSecret = "bookstest-secret"

	APIPrefix = "/books/v3"

	codeNotAuthorized = 57
	codeInvalidOrg    = 6041
	codeNotFound      = 1002
	codeInvalidInput  = 4
)

func init() {
	gin.SetMode(gin.TestMode)
	binding.Validator = modelValidator{}
}

// modelValidator lets gin bind with the validator the models package uses.
type modelValidator struct{}

func (modelValidator) ValidateStruct(obj any) error {
	if obj == nil {
		return nil
	}
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	return models.Validator().Struct(obj)
}

func (modelValidator) Engine() any {
	return models.Validator()
}

type failure struct {
	status  int
	code    int
	message string
}

// RecordedRequest is what the server saw of the last API call.
type RecordedRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Header http.Header
	Body   []byte
}

type Server struct {
	*httptest.Server

	mu            sync.Mutex
	seq           int64
	tokens        map[string]bool
	tokenRequests int
	apiRequests   int
	failNext      *failure
	last          RecordedRequest

	contacts    map[string]models.Contact
	salesOrders map[string]models.SalesOrder
	invoices    map[string]models.Invoice
}

func NewServer() *Server {
	s := &Server{
		seq:         460000000000000,
		tokens:      map[string]bool{},
		contacts:    map[string]models.Contact{},
		salesOrders: map[string]models.SalesOrder{},
		invoices:    map[string]models.Invoice{},
	}
	s.Server = httptest.NewServer(s.router())
	return s
}

// Config points a client at this server with valid credentials.
func (s *Server) Config() config.ZohoConfig {
	return config.ZohoConfig{
		OrgId: OrgId,
		Client: config.ZohoClientCredentials{
			Id:     ClientId,
			Secret: ClientSecret,
		},
		APIBaseURL:      s.URL + APIPrefix,
		AccountsURL:     s.URL,
		RateLimitPerMin: 6000,
	}
}

// FailNext makes the next API call (not token requests) fail with the given
// status and Zoho error envelope.
func (s *Server) FailNext(status, code int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = &failure{status: status, code: code, message: message}
}

func (s *Server) TokenRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokenRequests
}

func (s *Server) APIRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apiRequests
}

func (s *Server) LastRequest() RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// PutContact stores c as is, assigning an id when it has none.
func (s *Server) PutContact(c models.Contact) models.Contact {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ContactId == "" {
		c.ContactId = s.nextId()
	}
	s.contacts[c.ContactId] = c
	return c
}

func (s *Server) PutSalesOrder(so models.SalesOrder) models.SalesOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	if so.SalesOrderId == "" {
		so.SalesOrderId = s.nextId()
	}
	s.salesOrders[so.SalesOrderId] = so
	return so
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/oauth/v2/token", s.TokenHandler())

	api := r.Group(APIPrefix, s.record(), s.authorize(), s.failures())

	api.POST("/contacts", s.CreateContactHandler())
	api.GET("/contacts", s.ListContactsHandler())
	api.GET("/contacts/:id", s.GetContactHandler())
	api.PUT("/contacts/:id", s.UpdateContactHandler())
	api.DELETE("/contacts/:id", s.DeleteContactHandler())

	api.POST("/salesorders", s.CreateSalesOrderHandler())
	api.GET("/salesorders", s.ListSalesOrdersHandler())
	api.GET("/salesorders/:id", s.GetSalesOrderHandler())
	api.PUT("/salesorders/:id", s.UpdateSalesOrderHandler())
	api.DELETE("/salesorders/:id", s.DeleteSalesOrderHandler())
	api.POST("/salesorders/:id/status/:status", s.SalesOrderStatusHandler())

	api.POST("/invoices", s.CreateInvoiceHandler())
	api.GET("/invoices", s.ListInvoicesHandler())
	api.GET("/invoices/:id", s.GetInvoiceHandler())

	return r
}

// TokenHandler implements the client credentials grant of accounts.zoho.com.
func (s *Server) TokenHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.tokenRequests++

		if c.PostForm("grant_type") != "client_credentials" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported_grant_type"})
			return
		}
		if c.PostForm("client_id") != ClientId || c.PostForm("client_secret") != ClientSecret {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_client"})
			return
		}
		if c.PostForm("soid") != "ZohoBooks."+OrgId {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_soid"})
			return
		}

		token := fmt.Sprintf("1000.%d.bookstest", s.tokenRequests)
		s.tokens[token] = true
		c.JSON(http.StatusOK, gin.H{
			"access_token": token,
			"scope":        c.PostForm("scope"),
			"api_domain":   "https://www.zohoapis.com",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}
}

func (s *Server) record() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body []byte
		if c.Request.Body != nil {
			b, err := c.GetRawData()
			if err == nil {
				body = b
				c.Request.Body = readCloser(b)
			}
		}
		s.mu.Lock()
		s.apiRequests++
		s.last = RecordedRequest{
			Method: c.Request.Method,
			Path:   strings.TrimPrefix(c.Request.URL.Path, APIPrefix),
			Query:  c.Request.URL.Query(),
			Header: c.Request.Header.Clone(),
			Body:   body,
		}
		s.mu.Unlock()
		c.Next()
	}
}

func (s *Server) authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, token, _ := strings.Cut(c.GetHeader("Authorization"), " ")
		s.mu.Lock()
		valid := scheme == "Zoho-oauthtoken" && s.tokens[token]
		s.mu.Unlock()
		if !valid {
			abortWithError(c, http.StatusUnauthorized, codeNotAuthorized, "You are not authorized to perform this operation")
			return
		}
		if c.Query("organization_id") != OrgId {
			abortWithError(c, http.StatusBadRequest, codeInvalidOrg, "This user is not associated with the CompanyID/CompanyName:"+c.Query("organization_id")+".")
			return
		}
		c.Next()
	}
}

func (s *Server) failures() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		f := s.failNext
		s.failNext = nil
		s.mu.Unlock()
		if f != nil {
			abortWithError(c, f.status, f.code, f.message)
			return
		}
		c.Next()
	}
}

func abortWithError(c *gin.Context, status, code int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"code": code, "message": message})
}

func respond(c *gin.Context, status int, message string, key string, value any) {
	body := gin.H{"code": 0, "message": message}
	if key != "" {
		body[key] = value
	}
	c.JSON(status, body)
}

func pageContext(c *gin.Context, n int) gin.H {
	return gin.H{
		"page":           1,
		"per_page":       200,
		"has_more_page":  false,
		"report_name":    c.FullPath(),
		"applied_filter": c.DefaultQuery("filter_by", "Status.All"),
		"count":          n,
	}
}

// nextId must be called with s.mu held.
func (s *Server) nextId() string {
	s.seq++
	return fmt.Sprintf("%d", s.seq)
}

func now() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05-0700")
}

func readCloser(b []byte) io.ReadCloser {
	return io.NopCloser(bytes.NewReader(b))
}

// convert copies src into dst through JSON, so request views become entities.
func convert(src, dst any) error {
	b, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}
