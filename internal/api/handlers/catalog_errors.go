package handlers

import (
	"errors"
	"net/http"

	"github.com/turnate/booking-engine/internal/service/catalog"
)

const (
	msgInvalidBusinessCode = "El código del negocio no es válido."
	msgBusinessNotFound    = "No encontramos el negocio."
	msgSessionExpired      = "La sesión expiró, volvé a iniciar sesión."
	msgBackendFailure      = "No pudimos consultar los datos del negocio. Intentá de nuevo en unos minutos."
)

// RespondCatalogError переводит ошибки сервиса каталога в HTTP ответ
func RespondCatalogError(w http.ResponseWriter, err error, invalidInputMessage string) {
	switch {
	case errors.Is(err, catalog.ErrInvalidInput):
		if invalidInputMessage == "" {
			invalidInputMessage = msgInvalidBusinessCode
		}
		RespondBadRequest(w, invalidInputMessage)
	case errors.Is(err, catalog.ErrBusinessNotFound):
		RespondNotFound(w, msgBusinessNotFound)
	case errors.Is(err, catalog.ErrSessionExpired):
		RespondUnauthorized(w, msgSessionExpired)
	default:
		RespondBadGateway(w, msgBackendFailure)
	}
}
