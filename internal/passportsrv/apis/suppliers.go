package apis

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openpassport/dppsrv/internal/common/httpx"
)

func (h *Handler) listSuppliers(r *http.Request) (*httpx.Response, error) {
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   h.suppliers.List(),
	}, nil
}

func (h *Handler) getSupplier(r *http.Request) (*httpx.Response, error) {
	id := chi.URLParam(r, "supplierId")
	if id == "" {
		return nil, httpx.ErrInvalidRequest("empty supplier id")
	}
	s, err := h.suppliers.Get(id)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   s,
	}, nil
}
