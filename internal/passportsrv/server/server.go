package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/openpassport/dppsrv/internal/common/httpx"
	"github.com/openpassport/dppsrv/internal/common/logtrace"
	commonmiddleware "github.com/openpassport/dppsrv/internal/common/middleware"
	"github.com/openpassport/dppsrv/internal/passportsrv/apis"
	"github.com/openpassport/dppsrv/internal/passportsrv/auth"
	"github.com/openpassport/dppsrv/internal/passportsrv/config"
	"github.com/openpassport/dppsrv/internal/passportsrv/importjob"
	"github.com/openpassport/dppsrv/internal/passportsrv/ledger"
	"github.com/openpassport/dppsrv/internal/passportsrv/passport"
	"github.com/openpassport/dppsrv/internal/passportsrv/seed"
	"github.com/openpassport/dppsrv/internal/passportsrv/supplier"
)

type PassportServer struct {
	Router    *chi.Mux
	store     *passport.Store
	suppliers *supplier.Registry
	ledger    *ledger.Service
	jobs      *importjob.Tracker
}

func CreateNewServer() (*PassportServer, error) {
	store := passport.NewStore()
	registry := supplier.NewRegistry()
	s := &PassportServer{
		Router:    chi.NewRouter(),
		store:     store,
		suppliers: registry,
		ledger:    ledger.NewService(store, config.Config().Ledger),
		jobs:      importjob.NewTracker(),
	}
	return s, nil
}

// LoadSeedData populates the stores from the configured seed file.
func (s *PassportServer) LoadSeedData(ctx context.Context, path string) error {
	ds, err := seed.LoadFile(path)
	if err != nil {
		return err
	}
	ds.Apply(ctx, s.store, s.suppliers, s.jobs)
	return nil
}

func (s *PassportServer) MountHandlers() {
	s.Router.Use(commonmiddleware.RequestLogger)
	s.Router.Use(commonmiddleware.PanicHandler)
	if config.Config().HandleCORS {
		s.Router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "X-API-Key"},
			MaxAge:         300,
		}))
	}
	s.Router.Route("/v1", func(r chi.Router) {
		r.Use(auth.APIKeyGuard)
		apis.Router(r, apis.NewHandler(s.store, s.suppliers, s.ledger, s.jobs))
	})
	s.Router.Get("/version", s.getVersion)
	if logtrace.IsTraceEnabled() {
		fmt.Println("Routes in passport router")
		walkFunc := func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
			fmt.Printf("%s %s\n", method, route)
			return nil
		}
		if err := chi.Walk(s.Router, walkFunc); err != nil {
			fmt.Printf("Logging err: %s\n", err.Error())
		}
	}
}

type GetVersionRsp struct {
	ServerVersion string `json:"serverVersion"`
	ApiVersion    string `json:"apiVersion"`
}

func (s *PassportServer) getVersion(w http.ResponseWriter, r *http.Request) {
	log.Ctx(r.Context()).Debug().Msg("GetVersion")
	rsp := &GetVersionRsp{
		ServerVersion: "DPP Passport Server: 0.1.0",
		ApiVersion:    "v1",
	}
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, rsp)
}
