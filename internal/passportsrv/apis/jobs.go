package apis

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openpassport/dppsrv/internal/common/httpx"
)

func (h *Handler) getImportJob(r *http.Request) (*httpx.Response, error) {
	id := chi.URLParam(r, "jobId")
	if id == "" {
		return nil, httpx.ErrInvalidJobId()
	}
	job, err := h.jobs.Poll(id)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   job,
	}, nil
}
