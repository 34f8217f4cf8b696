package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/threadboard/threadboard/shared/domain"
	"github.com/threadboard/threadboard/shared/errors"
	mw "github.com/threadboard/threadboard/shared/middleware"
)

// parseIdParam reads a uuid path parameter.
func parseIdParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &errors.ErrorWithStatusCode{Message: fmt.Sprintf("invalid %s id", name), StatusCode: http.StatusBadRequest}
	}
	return id, nil
}

// currentUser returns the authenticated caller or writes a 401.
func currentUser(w http.ResponseWriter, r *http.Request) *domain.User {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}
	return user
}
