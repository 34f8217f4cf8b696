package api

import "github.com/threadboard/threadboard/shared/domain"

// Request DTOs

type CreateThreadRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type EditContentRequest struct {
	Content string `json:"content" validate:"required"`
}

// Response DTOs

// ThreadResponse wraps a thread with its public counters
type ThreadResponse struct {
	domain.Thread
	Author       *domain.UserSummary `json:"author,omitempty"`
	LikeCount    int                 `json:"like_count"`
	DislikeCount int                 `json:"dislike_count"`
	MyReaction   string              `json:"my_reaction,omitempty"`
}

func NewThreadResponse(t domain.Thread) ThreadResponse {
	return ThreadResponse{Thread: t, LikeCount: t.LikeCount(), DislikeCount: t.DislikeCount()}
}

func NewThreadViewResponse(v domain.ThreadView) ThreadResponse {
	resp := NewThreadResponse(v.Thread)
	resp.Author = &v.Author
	return resp
}

// SetViewer fills in the viewer's own reaction; nil means anonymous.
func (r *ThreadResponse) SetViewer(viewer *domain.User) {
	r.MyReaction = myReaction(r.ReactionSet, viewer)
}

type ThreadListResponse struct {
	Threads []ThreadResponse `json:"threads"`
}
