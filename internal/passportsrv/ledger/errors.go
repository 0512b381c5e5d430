package ledger

import (
	"net/http"

	"github.com/openpassport/dppsrv/internal/common/apperrors"
)

var (
	ErrLedger apperrors.Error = apperrors.New("error in processing ledger operation").SetStatusCode(http.StatusInternalServerError)
	// ErrLedgerNotConfigured deliberately carries no endpoint detail; the
	// missing configuration is logged server-side instead.
	ErrLedgerNotConfigured  apperrors.Error = ErrLedger.New("ledger integration is not configured").SetStatusCode(http.StatusInternalServerError)
	ErrDispatchFailed       apperrors.Error = ErrLedger.New("ledger dispatch failed").SetStatusCode(http.StatusBadGateway)
	ErrPlatformRequired     apperrors.Error = ErrLedger.New("platform is required").SetStatusCode(http.StatusBadRequest)
	ErrInvalidMintRequest   apperrors.Error = ErrLedger.New("invalid mint request").SetExpandError(true).SetStatusCode(http.StatusBadRequest)
	ErrInvalidOwnerAddress  apperrors.Error = ErrLedger.New("invalid owner address").SetStatusCode(http.StatusBadRequest)
	ErrMetadataURIRequired  apperrors.Error = ErrLedger.New("metadataUri is required").SetStatusCode(http.StatusBadRequest)
	ErrUnableToGenerateHash apperrors.Error = ErrLedger.New("unable to generate transaction hash").SetStatusCode(http.StatusInternalServerError)
)
