// Package httpx exposes the ledger over HTTP: a stdlib ServeMux with method
// patterns behind request-id, access-log, metrics and CORS middleware.
package httpx

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/ledgerkeeper/internal/logging"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/models"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	healthCheckTimeout = 2 * time.Second
	maxBodyBytes       = 1 << 20
)

type UserService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type LedgerService interface {
	Create(ctx context.Context, ownerID string, f models.TransactionFields) (*models.Transaction, error)
	List(ctx context.Context, ownerID string) ([]*models.Transaction, error)
	Get(ctx context.Context, ownerID, id string) (*models.Transaction, error)
	Update(ctx context.Context, ownerID, id string, f models.TransactionFields) error
	Delete(ctx context.Context, ownerID, id string) error
	Summarize(ctx context.Context, ownerID string) (*models.Summary, error)
}

type Exporter interface {
	Export(ctx context.Context, ownerID string) (*services.ExportResult, error)
	History(ctx context.Context, ownerID string) ([]*models.Export, error)
}

type TokenValidator interface {
	Validate(token string) (string, error)
}

// Deps are the collaborators of a Router. Health may be nil.
type Deps struct {
	Logger   logging.Logger
	Users    UserService
	Ledger   LedgerService
	Exporter Exporter
	Tokens   TokenValidator
	Health   func(context.Context) error
	Registry *prometheus.Registry
}

// Router wires HTTP endpoints to services.
type Router struct {
	mux      *http.ServeMux
	handler  http.Handler
	logger   logging.Logger
	users    UserService
	ledger   LedgerService
	exporter Exporter
	tokens   TokenValidator
	health   func(context.Context) error
	metrics  *metrics
}

// NewRouter assembles routes and middleware.
func NewRouter(d Deps) *Router {
	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	r := &Router{
		mux:      http.NewServeMux(),
		logger:   d.Logger.With("module", "http"),
		users:    d.Users,
		ledger:   d.Ledger,
		exporter: d.Exporter,
		tokens:   d.Tokens,
		health:   d.Health,
		metrics:  newMetrics(reg),
	}
	r.register(reg)

	r.handler = r.withRequestID(r.withAccessLog(r.withMetrics(withCORS(r.mux))))
	return r
}

// ServeHTTP runs the middleware chain and then the mux.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

func (r *Router) register(reg *prometheus.Registry) {
	r.mux.HandleFunc("GET /healthz", r.handleHealthz)
	r.mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.handleBoth("POST /users/register/{$}", r.handleRegister)
	r.handleBoth("POST /users/login/{$}", r.handleLogin)

	r.handleBoth("POST /transactions/{$}", r.requireAuth(r.handleCreateTransaction))
	r.handleBoth("GET /transactions/{$}", r.requireAuth(r.handleListTransactions))
	r.handleBoth("POST /transactions/export/{$}", r.requireAuth(r.handleExport))
	r.handleBoth("GET /transactions/exports/{$}", r.requireAuth(r.handleExportHistory))
	r.handleBoth("GET /transactions/{id}/{$}", r.requireAuth(r.handleGetTransaction))
	r.handleBoth("PUT /transactions/{id}/{$}", r.requireAuth(r.handleUpdateTransaction))
	r.handleBoth("DELETE /transactions/{id}/{$}", r.requireAuth(r.handleDeleteTransaction))

	r.handleBoth("GET /dashboard/summary/{$}", r.requireAuth(r.handleSummary))
}

// handleBoth serves pattern, which ends in "/{$}", and the same path without
// the trailing slash, so slash-less POSTs are not redirected.
func (r *Router) handleBoth(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
	r.mux.HandleFunc(strings.TrimSuffix(pattern, "/{$}"), h)
}

func (r *Router) handleHealthz(w http.ResponseWriter, req *http.Request) {
	if r.health != nil {
		ctx, cancel := context.WithTimeout(req.Context(), healthCheckTimeout)
		defer cancel()
		if err := r.health(ctx); err != nil {
			r.logger.Warn(ctx, "health check failed", "error", err)
			writeText(w, http.StatusServiceUnavailable, "Unavailable")
			return
		}
	}
	writeText(w, http.StatusOK, "OK")
}
