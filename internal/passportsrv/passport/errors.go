package passport

import (
	"net/http"

	"github.com/openpassport/dppsrv/internal/common/apperrors"
)

var (
	ErrPassport         apperrors.Error = apperrors.New("error in processing passport").SetStatusCode(http.StatusInternalServerError)
	ErrPassportNotFound apperrors.Error = ErrPassport.New("passport not found").SetStatusCode(http.StatusNotFound)
	ErrAlreadyExists    apperrors.Error = ErrPassport.New("passport already exists").SetStatusCode(http.StatusConflict)
	ErrInvalidPassport  apperrors.Error = ErrPassport.New("invalid passport").SetExpandError(true).SetStatusCode(http.StatusBadRequest)
	ErrInvalidPayload   apperrors.Error = ErrPassport.New("invalid update payload").SetExpandError(true).SetStatusCode(http.StatusBadRequest)
)
