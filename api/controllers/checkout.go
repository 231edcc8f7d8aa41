package controllers

import (
	"net/http"

	"github.com/classmart/classmart-backend/api/middleware"
	"github.com/classmart/classmart-backend/api/responses"
	"github.com/classmart/classmart-backend/api/validators"
	checkoutsvc "github.com/classmart/classmart-backend/internal/checkout"
	pkgerrors "github.com/classmart/classmart-backend/pkg/errors"
	"github.com/classmart/classmart-backend/pkg/logger"
)

// Checkout handles POST /api/checkout. Users buy their own cart; staff may
// check out on behalf of another user.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		authUserID := middleware.UserIDFromContext(r.Context())
		if authUserID == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		var payload checkoutsvc.CheckoutInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if payload.UsuarioID != authUserID && !middleware.IsStaffFromContext(r.Context()) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "cannot check out another user's cart"))
			return
		}

		result, err := svc.Checkout(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
