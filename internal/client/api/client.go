package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/ledgerkeeper/internal/common"
)

const maxErrorBody = 4 << 10

type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient returns a client for the server at baseURL, for example
// "http://127.0.0.1:3000". A scheme-less address gets "http://".
func NewClient(baseURL string, timeout time.Duration) *Client {
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) LoggedIn() bool { return c.Token() != "" }

func (c *Client) Register(ctx context.Context, name, email string, password []byte) error {
	body := map[string]string{"name": name, "email": email, "password": string(password)}
	_, err := c.do(ctx, http.MethodPost, "/users/register/", false, body, nil)
	return err
}

// Login authenticates and keeps the returned token for later calls.
func (c *Client) Login(ctx context.Context, email string, password []byte) error {
	var out struct {
		JWTToken string `json:"jwtToken"`
	}
	body := map[string]string{"email": email, "password": string(password)}
	if _, err := c.do(ctx, http.MethodPost, "/users/login/", false, body, &out); err != nil {
		return err
	}
	if out.JWTToken == "" {
		return errors.New("login response carries no token")
	}
	c.SetToken(out.JWTToken)
	return nil
}

// CreateTransaction returns the id of the new transaction, taken from the
// Location header.
func (c *Client) CreateTransaction(ctx context.Context, in TransactionInput) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/transactions/", true, in, nil)
	if err != nil {
		return "", err
	}
	return path.Base(strings.TrimRight(resp.Header.Get("Location"), "/")), nil
}

func (c *Client) ListTransactions(ctx context.Context) ([]Transaction, error) {
	var out []Transaction
	if _, err := c.do(ctx, http.MethodGet, "/transactions/", true, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTransaction(ctx context.Context, id string) (*Transaction, error) {
	var out Transaction
	if _, err := c.do(ctx, http.MethodGet, transactionPath(id), true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, id string, in TransactionInput) error {
	_, err := c.do(ctx, http.MethodPut, transactionPath(id), true, in, nil)
	return err
}

func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, transactionPath(id), true, nil, nil)
	return err
}

func (c *Client) Summary(ctx context.Context) (*Summary, error) {
	var out Summary
	if _, err := c.do(ctx, http.MethodGet, "/dashboard/summary/", true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Export(ctx context.Context) (*ExportResult, error) {
	var out ExportResult
	if _, err := c.do(ctx, http.MethodPost, "/transactions/export/", true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportHistory lists the caller's recent exports, newest first.
func (c *Client) ExportHistory(ctx context.Context) ([]ExportRecord, error) {
	var out []ExportRecord
	if _, err := c.do(ctx, http.MethodGet, "/transactions/exports/", true, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Ping checks server health.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/healthz", false, nil, nil)
	return err
}

func transactionPath(id string) string {
	return "/transactions/" + url.PathEscape(id) + "/"
}

// do sends in as JSON (when non-nil) and decodes a 2xx body into out (when
// non-nil). The response body is always closed.
func (c *Client) do(ctx context.Context, method, p string, authorized bool, in, out any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+p, body)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		token := c.Token()
		if token == "" {
			return nil, ErrNotLoggedIn
		}
		req.Header.Set("Authorization", common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return resp, statusError(resp.StatusCode, strings.TrimSpace(string(b)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp, nil
}

func statusError(code int, msg string) error {
	e := &StatusError{Code: code, Message: msg}
	switch code {
	case http.StatusUnauthorized:
		e.wrapped = ErrUnauthorized
	case http.StatusNotFound:
		e.wrapped = common.ErrorNotFound
	case http.StatusServiceUnavailable:
		e.wrapped = ErrUnavailable
	}
	return e
}
