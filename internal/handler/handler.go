// Package handler is the HTTP adapter over the order service and view
// builders. Handlers decode requests, call the service, and encode
// view-models; no rendering or workflow logic lives here.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/storefront-admin/internal/domain/cart"
	"github.com/xenking/storefront-admin/internal/domain/order"
	"github.com/xenking/storefront-admin/internal/payment"
)

// Handler serves the admin order API.
type Handler struct {
	orders  *order.Service
	cart    cart.Repository
	gateway payment.Config
}

// NewHandler constructs a Handler with the required dependencies.
func NewHandler(orders *order.Service, cart cart.Repository, gateway payment.Config) *Handler {
	return &Handler{
		orders:  orders,
		cart:    cart,
		gateway: gateway,
	}
}

// Routes registers all admin API endpoints on a new mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/orders", h.listOrders)
	mux.HandleFunc("GET /api/orders/stats", h.orderStats)
	mux.HandleFunc("GET /api/orders/{id}", h.orderDetail)
	mux.HandleFunc("GET /api/orders/{id}/receipt", h.orderReceipt)
	mux.HandleFunc("POST /api/orders/{id}/advance", h.advanceOrder)
	mux.HandleFunc("GET /api/cart/count", h.cartCount)
	mux.HandleFunc("GET /api/payment/config", h.paymentConfig)
	return mux
}

// errorResponse is the JSON error envelope shared by all endpoints.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zctx.From(r.Context()).Error("encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	respondJSON(w, r, status, errorResponse{Code: status, Message: msg})
}

// pathID parses the {id} path segment. A non-numeric id is handled like a
// missing record.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}
