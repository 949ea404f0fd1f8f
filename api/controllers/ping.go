package controllers

import (
	"net/http"

	"github.com/crewbaseapp/crewbase-backend/api/middleware"
	"github.com/crewbaseapp/crewbase-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func PrivatePing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "private", "status": "ok"}
		if uid := middleware.UserIDFromContext(r.Context()); uid != "" {
			payload["uid"] = uid
		}
		responses.WriteSuccess(w, payload)
	}
}
