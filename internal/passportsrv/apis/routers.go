package apis

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openpassport/dppsrv/internal/common/httpx"
)

// Router mounts the versioned API surface on r.
func Router(r chi.Router, h *Handler) {
	handlers := []httpx.ResponseHandlerParam{
		{
			Method:  http.MethodPost,
			Path:    "/passports",
			Handler: h.createPassport,
		},
		{
			Method:  http.MethodGet,
			Path:    "/passports/{passportId}",
			Handler: h.getPassport,
		},
		{
			Method:  http.MethodPatch,
			Path:    "/passports/{passportId}",
			Handler: h.updatePassport,
		},
		{
			Method:  http.MethodDelete,
			Path:    "/passports/{passportId}",
			Handler: h.archivePassport,
		},
		{
			Method:  http.MethodGet,
			Path:    "/passports/{passportId}/graph",
			Handler: h.getPassportGraph,
		},
		{
			Method:  http.MethodPost,
			Path:    "/passports/{passportId}/anchor",
			Handler: h.anchorPassport,
		},
		{
			Method:  http.MethodPost,
			Path:    "/passports/{passportId}/token",
			Handler: h.mintToken,
		},
		{
			Method:  http.MethodPost,
			Path:    "/tokens/{tokenId}/transfer",
			Handler: h.transferToken,
		},
		{
			Method:  http.MethodPost,
			Path:    "/tokens/{tokenId}/metadata",
			Handler: h.updateTokenMetadata,
		},
		{
			Method:  http.MethodGet,
			Path:    "/stats/countries",
			Handler: h.countryStats,
		},
		{
			Method:  http.MethodGet,
			Path:    "/stats/categories",
			Handler: h.categoryStats,
		},
		{
			Method:  http.MethodGet,
			Path:    "/stats/compliance",
			Handler: h.complianceStats,
		},
		{
			Method:  http.MethodGet,
			Path:    "/suppliers",
			Handler: h.listSuppliers,
		},
		{
			Method:  http.MethodGet,
			Path:    "/suppliers/{supplierId}",
			Handler: h.getSupplier,
		},
		{
			Method:  http.MethodGet,
			Path:    "/import-jobs/{jobId}",
			Handler: h.getImportJob,
		},
	}
	for _, handler := range handlers {
		r.Method(handler.Method, handler.Path, httpx.WrapHttpRsp(handler.Handler))
	}
}
