package handler

import (
	"net/http"

	"github.com/threadboard/threadboard/shared/api"
	"github.com/threadboard/threadboard/shared/domain"
	mw "github.com/threadboard/threadboard/shared/middleware"
	"github.com/threadboard/threadboard/shared/middleware/metrics"
	"github.com/threadboard/threadboard/shared/utils"
)

func (h *Handler) PostComment(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}
	threadId, err := parseIdParam(r, "thread")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body api.CreateCommentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	comment, err := h.engagement.PostComment(r.Context(), domain.CommentCreationData{
		ThreadId: threadId,
		AuthorId: user.Id,
		ParentId: body.ParentId,
		Content:  body.Content,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	metrics.RecordComment("post")

	resp := api.NewCommentResponse(comment)
	resp.SetViewer(user)
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) EditComment(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}
	commentId, err := parseIdParam(r, "comment")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body api.EditContentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	comment, err := h.engagement.EditComment(r.Context(), commentId, user.Id, body.Content)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	metrics.RecordComment("edit")

	resp := api.NewCommentResponse(comment)
	resp.SetViewer(user)
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}
	commentId, err := parseIdParam(r, "comment")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.engagement.DeleteComment(r.Context(), commentId, user.Id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	metrics.RecordComment("delete")

	w.WriteHeader(http.StatusNoContent)
}

// GetComments lists a thread's comments flat, in creation order.
func (h *Handler) GetComments(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIdParam(r, "thread")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	views, err := h.thread.Comments(r.Context(), threadId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	viewer := mw.GetUserFromContext(r)
	resp := api.CommentListResponse{Comments: make([]api.CommentResponse, len(views))}
	for i, v := range views {
		resp.Comments[i] = api.NewCommentViewResponse(v)
		resp.Comments[i].SetViewer(viewer)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetCommentTree(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIdParam(r, "thread")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	tree, err := h.engagement.CommentTree(r.Context(), threadId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.NewCommentTreeResponse(threadId, tree, mw.GetUserFromContext(r)))
}
