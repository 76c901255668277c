// Package httpapi exposes the chat and catalog HTTP endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/neusearch/neusearch/internal/domain"
	"github.com/neusearch/neusearch/internal/domain/product"
	healthuc "github.com/neusearch/neusearch/internal/usecase/health"
	recommenduc "github.com/neusearch/neusearch/internal/usecase/recommend"
)

const healthMessage = "Neusearch Backend Ready"

// Chatter answers a single chat query.
type Chatter interface {
	Chat(ctx context.Context, query string) (recommenduc.Reply, error)
}

// ProductLister lists stored products.
type ProductLister interface {
	List(ctx context.Context, limit int) ([]product.Product, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the public HTTP API.
type Server struct {
	chat          Chatter
	catalog       ProductLister
	health        HealthChecker
	listLimit     int
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. listLimit caps GET /products.
func NewServer(chat Chatter, catalog ProductLister, health HealthChecker, listLimit int, logger *zap.Logger) *Server {
	s := &Server{
		chat:      chat,
		catalog:   catalog,
		health:    health,
		listLimit: listLimit,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmbeddingProvider, http.StatusBadRequest, codeEmbeddingError),
		sentinelHandler(domain.ErrInvalidProduct, http.StatusBadRequest, codeValidationFailed),
	}
	return s
}

// Routes registers all endpoints on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.healthCheck)
	r.Get("/products", s.listProducts)
	r.Post("/chat", s.chatEndpoint)
	r.Get("/metrics", s.metrics)
}

// chatResponse is the POST /chat payload. RecommendedProducts carries
// product views only; the embedding type never appears here.
type chatResponse struct {
	Response            string         `json:"response"`
	RecommendedProducts []product.View `json:"recommended_products"`
}

// chatEndpoint handles POST /chat?query=...
func (s *Server) chatEndpoint(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query parameter is required")
		return
	}

	reply, err := s.chat.Chat(r.Context(), query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Response:            reply.Response,
		RecommendedProducts: product.Views(reply.Products),
	})
}

// listProducts handles GET /products.
func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.List(r.Context(), s.listLimit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product.Views(products))
}

// healthCheck handles GET /health. It always answers 200; degradation
// shows up in the status field, not the HTTP code.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  string(report.Status),
		"message": healthMessage,
	})
}

// metrics handles GET /metrics.
func (s *Server) metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// Error response codes.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeEmbeddingError   = "embedding_error"
	codeInternalError    = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmbeddingProvider,
		domain.ErrGenerationProvider,
		domain.ErrInvalidProduct,
		domain.ErrProductNotFound,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
