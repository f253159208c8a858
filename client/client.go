// Package client is the HTTP client of the shift API, one service per
// resource.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"railshift/cache"
	"railshift/models"
	"railshift/storage"
)

// ErrNotFound is wrapped by the APIError of a 404 response.
var ErrNotFound = errors.New("client: not found")

// APIError is returned for every non-2xx response.
type APIError struct {
	Status  int
	Message string
	Errors  map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("client: status %d", e.Status)
	}
	return fmt.Sprintf("client: status %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Token   string
	logger  *zap.Logger

	locomotiveCache *cache.TTL[models.Page[models.Locomotive]]

	Reasons     *Resource[models.Reason]
	Locations   *Resource[models.Location]
	Orders      *Resource[models.Order]
	Products    *Resource[models.Product]
	Customers   *Resource[models.Customer]
	Roles       *Resource[models.Role]
	Employees   *EmployeeService
	Wagons      *WagonService
	Locomotives *LocomotiveService
	Shifts      *ShiftService
	USNShifts   *USNShiftService
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.HTTP = h } }

// WithToken sends the token as a bearer Authorization header.
func WithToken(token string) Option { return func(c *Client) { c.Token = token } }

func WithLogger(l *zap.Logger) Option { return func(c *Client) { c.logger = l } }

// WithLocomotiveCache replaces the default locomotive list cache.
func WithLocomotiveCache(tc *cache.TTL[models.Page[models.Locomotive]]) Option {
	return func(c *Client) { c.locomotiveCache = tc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.locomotiveCache == nil {
		c.locomotiveCache = cache.New[models.Page[models.Locomotive]](cache.DefaultTTL)
	}

	c.Reasons = &Resource[models.Reason]{c: c, path: "/reason"}
	c.Locations = &Resource[models.Location]{c: c, path: "/locations"}
	c.Orders = &Resource[models.Order]{c: c, path: "/orders"}
	c.Products = &Resource[models.Product]{c: c, path: "/products"}
	c.Customers = &Resource[models.Customer]{c: c, path: "/customers"}
	c.Roles = &Resource[models.Role]{c: c, path: "/roles"}
	c.Employees = &EmployeeService{Resource[models.Employee]{c: c, path: "/employees"}}
	c.Wagons = &WagonService{Resource[models.Wagon]{c: c, path: "/wagons"}}
	c.Locomotives = &LocomotiveService{Resource: Resource[models.Locomotive]{c: c, path: "/locomotives"}, cache: c.locomotiveCache}
	c.Shifts = &ShiftService{Resource[models.Shift]{c: c, path: "/shifts"}}
	c.USNShifts = &USNShiftService{Resource[models.USNShift]{c: c, path: "/usn-shifts"}}
	return c
}

// DocumentURL turns a stored document path into an absolute preview link.
func (c *Client) DocumentURL(path string) string {
	return storage.DocumentURL(c.BaseURL, path)
}

// Values encodes a list query the way list endpoints read it.
func Values(q models.ListQuery) url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	for k, val := range q.Filters {
		if val != "" {
			v.Set(k, val)
		}
	}
	return v
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Request, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	return req, nil
}

// send executes req and returns the body of a 2xx response.
func (c *Client) send(req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("client: read %s: %w", req.URL.Path, err)
	}
	c.logger.Debug("api call",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var env envelope
		if json.Unmarshal(body, &env) == nil {
			apiErr.Message = env.Message
			apiErr.Errors = env.Errors
		} else {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		return nil, apiErr
	}
	return body, nil
}

// call sends a request and decodes the response. Envelope responses are
// unwrapped into out when unwrap is set.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, in, out any, unwrap bool) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: encode %s: %w", path, err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	req, err := c.newRequest(ctx, method, path, query, body, contentType)
	if err != nil {
		return err
	}
	return c.decode(req, out, unwrap)
}

func (c *Client) decode(req *http.Request, out any, unwrap bool) error {
	raw, err := c.send(req)
	if err != nil || out == nil {
		return err
	}
	if unwrap {
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return fmt.Errorf("client: decode %s: %w", req.URL.Path, err)
		}
		raw = env.Data
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("client: decode %s: %w", req.URL.Path, err)
	}
	return nil
}
