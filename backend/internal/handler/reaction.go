package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/threadboard/threadboard/shared/api"
	"github.com/threadboard/threadboard/shared/domain"
	"github.com/threadboard/threadboard/shared/errors"
	"github.com/threadboard/threadboard/shared/middleware/metrics"
	"github.com/threadboard/threadboard/shared/utils"
)

// React handles PATCH /{entity}/{id}/{reaction} for threads and comments.
func (h *Handler) React(kind domain.EntityKind) http.HandlerFunc {
	param := string(kind)
	return func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(w, r)
		if user == nil {
			return
		}
		id, err := parseIdParam(r, param)
		if err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
		reaction, err := domain.ParseReactionKind(chi.URLParam(r, "reaction"))
		if err != nil {
			utils.WriteErrorAndStatusCode(w, &errors.ErrorWithStatusCode{Message: err.Error(), StatusCode: http.StatusBadRequest})
			return
		}

		entity, err := h.engagement.React(r.Context(), domain.EntityRef{Kind: kind, Id: id}, user.Id, reaction)
		if err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
		metrics.RecordReaction(param, reaction.String())

		switch e := entity.(type) {
		case *domain.Thread:
			resp := api.NewThreadResponse(*e)
			resp.SetViewer(user)
			writeJSON(w, http.StatusOK, resp)
		case *domain.Comment:
			resp := api.NewCommentResponse(*e)
			resp.SetViewer(user)
			writeJSON(w, http.StatusOK, resp)
		default:
			writeJSON(w, http.StatusOK, entity)
		}
	}
}
