package apis

import (
	"github.com/openpassport/dppsrv/internal/passportsrv/importjob"
	"github.com/openpassport/dppsrv/internal/passportsrv/ledger"
	"github.com/openpassport/dppsrv/internal/passportsrv/passport"
	"github.com/openpassport/dppsrv/internal/passportsrv/supplier"
)

// Handler bundles the collaborators behind the HTTP surface.
type Handler struct {
	store     *passport.Store
	suppliers *supplier.Registry
	ledger    *ledger.Service
	jobs      *importjob.Tracker
}

func NewHandler(store *passport.Store, suppliers *supplier.Registry, ldg *ledger.Service, jobs *importjob.Tracker) *Handler {
	return &Handler{
		store:     store,
		suppliers: suppliers,
		ledger:    ldg,
		jobs:      jobs,
	}
}
