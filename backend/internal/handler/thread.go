package handler

import (
	"net/http"

	"github.com/threadboard/threadboard/shared/api"
	"github.com/threadboard/threadboard/shared/domain"
	mw "github.com/threadboard/threadboard/shared/middleware"
	"github.com/threadboard/threadboard/shared/utils"
)

func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}

	var body api.CreateThreadRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	thread, err := h.thread.Create(r.Context(), domain.ThreadCreationData{AuthorId: user.Id, Title: body.Title, Content: body.Content})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	resp := api.NewThreadResponse(thread)
	resp.SetViewer(user)
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) ListThreads(w http.ResponseWriter, r *http.Request) {
	views, err := h.thread.List(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	viewer := mw.GetUserFromContext(r)
	resp := api.ThreadListResponse{Threads: make([]api.ThreadResponse, len(views))}
	for i, v := range views {
		resp.Threads[i] = api.NewThreadViewResponse(v)
		resp.Threads[i].SetViewer(viewer)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIdParam(r, "thread")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	view, err := h.thread.Get(r.Context(), threadId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	resp := api.NewThreadViewResponse(view)
	resp.SetViewer(mw.GetUserFromContext(r))
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) EditThread(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}
	threadId, err := parseIdParam(r, "thread")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body api.EditContentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	thread, err := h.engagement.EditThread(r.Context(), threadId, user.Id, body.Content)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	resp := api.NewThreadResponse(thread)
	resp.SetViewer(user)
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}
	threadId, err := parseIdParam(r, "thread")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.engagement.DeleteThread(r.Context(), threadId, user.Id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
