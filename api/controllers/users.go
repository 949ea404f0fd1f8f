package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/crewbaseapp/crewbase-backend/api/middleware"
	"github.com/crewbaseapp/crewbase-backend/api/responses"
	"github.com/crewbaseapp/crewbase-backend/api/validators"
	internalusers "github.com/crewbaseapp/crewbase-backend/internal/users"
	pkgerrors "github.com/crewbaseapp/crewbase-backend/pkg/errors"
	"github.com/crewbaseapp/crewbase-backend/pkg/logger"
)

type inviteUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Role      string `json:"role"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

// AdminInviteUser provisions an identity and profile for a new user and
// returns the credential setup link.
func AdminInviteUser(svc internalusers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		var req inviteUserRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Invite(r.Context(), middleware.UserIDFromContext(r.Context()), internalusers.InviteUserInput{
			Email:     req.Email,
			Role:      req.Role,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// AdminDeleteUser removes a user's identity and profile documents. The
// optional email query parameter also clears the invite record.
func AdminDeleteUser(svc internalusers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		uid := strings.TrimSpace(chi.URLParam(r, "userId"))
		if uid == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "user id is required"))
			return
		}

		result, err := svc.Delete(r.Context(), middleware.UserIDFromContext(r.Context()), internalusers.DeleteUserInput{
			UID:   uid,
			Email: r.URL.Query().Get("email"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
