package apis

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openpassport/dppsrv/internal/common/httpx"
	"github.com/openpassport/dppsrv/internal/passportsrv/passport"
)

func (h *Handler) createPassport(r *http.Request) (*httpx.Response, error) {
	if r.Body == nil {
		return nil, httpx.ErrInvalidRequest()
	}
	req, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, httpx.ErrUnableToReadRequest()
	}
	var rec passport.DigitalProductPassport
	if err := json.Unmarshal(req, &rec); err != nil {
		return nil, httpx.ErrUnableToParseReqData()
	}
	created, aerr := h.store.Create(r.Context(), &rec)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{
		StatusCode: http.StatusCreated,
		Location:   "/passports/" + created.ID,
		Response:   created,
	}, nil
}

func (h *Handler) getPassport(r *http.Request) (*httpx.Response, error) {
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
		Response:   rec,
	}, nil
}

func (h *Handler) updatePassport(r *http.Request) (*httpx.Response, error) {
	id := chi.URLParam(r, "passportId")
	if id == "" {
		return nil, httpx.ErrInvalidPassportId()
	}
	if r.Body == nil {
		return nil, httpx.ErrInvalidRequest()
	}
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, httpx.ErrUnableToReadRequest()
	}
	rec, aerr := h.store.Update(r.Context(), id, payload)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   rec,
	}, nil
}

type archiveRsp struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (h *Handler) archivePassport(r *http.Request) (*httpx.Response, error) {
	id := chi.URLParam(r, "passportId")
	if id == "" {
		return nil, httpx.ErrInvalidPassportId()
	}
	rec, err := h.store.Archive(id)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response: &archiveRsp{
			ID:      rec.ID,
			Message: "Passport " + rec.ID + " archived",
		},
	}, nil
}
