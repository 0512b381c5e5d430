package apis

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openpassport/dppsrv/internal/common/httpx"
	"github.com/openpassport/dppsrv/internal/passportsrv/graph"
)

func (h *Handler) getPassportGraph(r *http.Request) (*httpx.Response, error) {
	id := chi.URLParam(r, "passportId")
	if id == "" {
		return nil, httpx.ErrInvalidPassportId()
	}
	rec, err := h.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   graph.Derive(rec, h.suppliers),
	}, nil
}
