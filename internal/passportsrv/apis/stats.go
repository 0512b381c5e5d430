package apis

import (
	"net/http"

	"github.com/openpassport/dppsrv/internal/common/httpx"
	"github.com/openpassport/dppsrv/internal/passportsrv/stats"
)

// countryStats scans every record, archived ones included.
func (h *Handler) countryStats(r *http.Request) (*httpx.Response, error) {
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   stats.Countries(h.store.All()),
	}, nil
}

func (h *Handler) categoryStats(r *http.Request) (*httpx.Response, error) {
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   stats.Categories(h.store.Active()),
	}, nil
}

func (h *Handler) complianceStats(r *http.Request) (*httpx.Response, error) {
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   stats.ComplianceStatuses(h.store.Active()),
	}, nil
}
