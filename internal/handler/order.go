package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/storefront-admin/internal/domain/order"
	"github.com/xenking/storefront-admin/internal/view"
)

// listResponse is the payload for the order grid.
type listResponse struct {
	Orders []view.Card `json:"orders"`
	// Total is the unfiltered order count.
	Total  int          `json:"total"`
	Filter order.Filter `json:"filter"`
	// EmptyMessage is non-empty when there is nothing to show; it reads
	// differently for an empty store and an empty filter result.
	EmptyMessage string `json:"empty_message,omitempty"`
}

// statsResponse carries the dashboard counters.
type statsResponse struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Packed    int `json:"packed"`
	Shipped   int `json:"shipped"`
	Delivered int `json:"delivered"`
}

// advanceRequest is the body of a status transition request. Confirm is the
// explicit user confirmation; false aborts with no effect.
type advanceRequest struct {
	Confirm bool `json:"confirm"`
}

// advanceResponse is the outcome of a status transition request.
type advanceResponse struct {
	OrderID  int64        `json:"order_id"`
	From     order.Status `json:"from"`
	To       order.Status `json:"to"`
	Advanced bool         `json:"advanced"`
	// Message is the transient notification text for the admin UI.
	Message string `json:"message,omitempty"`
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	filter := order.Filter(r.URL.Query().Get("status"))
	if filter == "" {
		filter = order.FilterAll
	}

	listing, err := h.orders.List(r.Context(), filter)
	if err != nil {
		if errors.Is(err, order.ErrInvalidFilter) {
			respondError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		h.internalError(w, r, err, "list orders")
		return
	}

	respondJSON(w, r, http.StatusOK, listResponse{
		Orders:       view.NewCards(listing.Orders),
		Total:        listing.Total,
		Filter:       listing.Filter,
		EmptyMessage: view.EmptyState(*listing),
	})
}

func (h *Handler) orderStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.orders.Statistics(r.Context())
	if err != nil {
		h.internalError(w, r, err, "order statistics")
		return
	}

	respondJSON(w, r, http.StatusOK, statsResponse{
		Total:     stats.Total,
		Pending:   stats.ByStatus[order.StatusPending],
		Packed:    stats.ByStatus[order.StatusPacked],
		Shipped:   stats.ByStatus[order.StatusShipped],
		Delivered: stats.ByStatus[order.StatusDelivered],
	})
}

func (h *Handler) orderDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, r, http.StatusNotFound, "order not found")
		return
	}

	d, err := h.orders.Detail(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "order not found")
			return
		}
		h.internalError(w, r, err, "order detail")
		return
	}

	respondJSON(w, r, http.StatusOK, view.NewDetail(*d))
}

func (h *Handler) orderReceipt(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, r, http.StatusNotFound, "order not found")
		return
	}

	d, err := h.orders.Detail(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "order not found")
			return
		}
		h.internalError(w, r, err, "order receipt")
		return
	}

	receipt := view.NewReceipt(*d, h.gateway.StoreName)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.RenderReceipt(w, receipt); err != nil {
		zctx.From(r.Context()).Error("render receipt", zap.Error(err))
	}
}

func (h *Handler) advanceOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, r, http.StatusNotFound, "order not found")
		return
	}

	var req advanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	// The request-scoped confirmer carries the admin's answer to the
	// "Mark this order as X?" prompt shown by the client.
	confirm := order.ConfirmerFunc(func(context.Context, string) (bool, error) {
		return req.Confirm, nil
	})

	tr, err := h.orders.Advance(r.Context(), id, confirm)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrNotFound):
			respondError(w, r, http.StatusNotFound, "order not found")
		case errors.Is(err, order.ErrTerminalStatus):
			respondError(w, r, http.StatusConflict, "order is already delivered")
		default:
			zctx.From(r.Context()).Error("advance order", zap.Int64("order_id", id), zap.Error(err))
			respondError(w, r, http.StatusBadGateway, "Failed to update order status")
		}
		return
	}

	resp := advanceResponse{
		OrderID:  tr.OrderID,
		From:     tr.From,
		To:       tr.To,
		Advanced: tr.Advanced,
	}
	if tr.Advanced {
		resp.Message = fmt.Sprintf("Order marked as %s!", tr.To.Label())
	}
	respondJSON(w, r, http.StatusOK, resp)
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error, op string) {
	zctx.From(r.Context()).Error(op, zap.Error(err))
	respondError(w, r, http.StatusInternalServerError, "internal error")
}
