package handler

import "net/http"

// cartCountResponse carries the nav badge count.
type cartCountResponse struct {
	Count int `json:"count"`
}

func (h *Handler) cartCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.cart.ItemCount(r.Context())
	if err != nil {
		h.internalError(w, r, err, "cart count")
		return
	}
	respondJSON(w, r, http.StatusOK, cartCountResponse{Count: count})
}

func (h *Handler) paymentConfig(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, h.gateway.Public())
}
