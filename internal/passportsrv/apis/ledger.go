package apis

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openpassport/dppsrv/internal/common/httpx"
	"github.com/openpassport/dppsrv/internal/passportsrv/ledger"
)

func (h *Handler) anchorPassport(r *http.Request) (*httpx.Response, error) {
	id := chi.URLParam(r, "passportId")
	if id == "" {
		return nil, httpx.ErrInvalidPassportId()
	}
	req := &ledger.AnchorRequest{}
	if err := httpx.GetRequestData(r, req); err != nil {
		return nil, err
	}
	rec, aerr := h.ledger.Anchor(r.Context(), id, req)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   rec,
	}, nil
}

func (h *Handler) mintToken(r *http.Request) (*httpx.Response, error) {
	id := chi.URLParam(r, "passportId")
	if id == "" {
		return nil, httpx.ErrInvalidPassportId()
	}
	req := &ledger.MintRequest{}
	if err := httpx.GetRequestData(r, req); err != nil {
		return nil, err
	}
	result, aerr := h.ledger.Mint(r.Context(), id, req)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{
		StatusCode: http.StatusCreated,
		Response:   result,
	}, nil
}

func (h *Handler) transferToken(r *http.Request) (*httpx.Response, error) {
	tokenID := chi.URLParam(r, "tokenId")
	if tokenID == "" {
		return nil, httpx.ErrInvalidTokenId()
	}
	req := &ledger.TransferRequest{}
	if err := httpx.GetRequestData(r, req); err != nil {
		return nil, err
	}
	result, aerr := h.ledger.DaoTransfer(r.Context(), tokenID, req)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   result,
	}, nil
}

func (h *Handler) updateTokenMetadata(r *http.Request) (*httpx.Response, error) {
	tokenID := chi.URLParam(r, "tokenId")
	if tokenID == "" {
		return nil, httpx.ErrInvalidTokenId()
	}
	req := &ledger.MetadataUpdateRequest{}
	if err := httpx.GetRequestData(r, req); err != nil {
		return nil, err
	}
	result, aerr := h.ledger.UpdateMetadata(r.Context(), tokenID, req)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   result,
	}, nil
}
