// Package auth is the authentication collaborator: a single pass/fail guard
// invoked before every operation. Key provisioning and rotation live outside
// this service; the guard only compares against the configured key set.
package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/openpassport/dppsrv/internal/common/httpx"
	"github.com/openpassport/dppsrv/internal/passportsrv/config"
)

const apiKeyHeader = "X-API-Key"

// APIKeyGuard rejects requests that do not carry a configured API key. With
// no keys configured the guard is a pass-through, which keeps local
// development friction-free.
func APIKeyGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys := config.Config().APIKeys
		if len(keys) == 0 {
			next.ServeHTTP(w, r)
			return
		}
		supplied := r.Header.Get(apiKeyHeader)
		for _, key := range keys {
			if subtle.ConstantTimeCompare([]byte(supplied), []byte(key)) == 1 {
				next.ServeHTTP(w, r)
				return
			}
		}
		log.Ctx(r.Context()).Warn().Msg("request rejected: invalid or missing API key")
		httpx.ErrUnAuthorized("invalid or missing API key").Send(w)
	})
}
