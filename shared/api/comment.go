package api

import (
	"iter"

	"github.com/google/uuid"

	"github.com/threadboard/threadboard/shared/domain"
)

// Request DTOs

type CreateCommentRequest struct {
	Content  string     `json:"content" validate:"required"`
	ParentId *uuid.UUID `json:"parent_id,omitempty"`
}

// Response DTOs

// CommentResponse wraps a comment with its public counters
type CommentResponse struct {
	domain.Comment
	Author       *domain.UserSummary `json:"author,omitempty"`
	LikeCount    int                 `json:"like_count"`
	DislikeCount int                 `json:"dislike_count"`
	MyReaction   string              `json:"my_reaction,omitempty"`
}

func NewCommentResponse(c domain.Comment) CommentResponse {
	return CommentResponse{Comment: c, LikeCount: c.LikeCount(), DislikeCount: c.DislikeCount()}
}

func NewCommentViewResponse(v domain.CommentView) CommentResponse {
	resp := NewCommentResponse(v.Comment)
	resp.Author = &v.Author
	return resp
}

// SetViewer fills in the viewer's own reaction; nil means anonymous.
func (r *CommentResponse) SetViewer(viewer *domain.User) {
	r.MyReaction = myReaction(r.ReactionSet, viewer)
}

type CommentListResponse struct {
	Comments []CommentResponse `json:"comments"`
}

// CommentTreeNode is a comment with its counters and nested replies
type CommentTreeNode struct {
	CommentResponse
	Replies []CommentTreeNode `json:"replies"`
}

func newCommentTreeNode(node *domain.CommentNode, viewer *domain.User) CommentTreeNode {
	out := CommentTreeNode{CommentResponse: NewCommentResponse(node.Comment), Replies: []CommentTreeNode{}}
	out.SetViewer(viewer)
	for child := range node.Children() {
		out.Replies = append(out.Replies, newCommentTreeNode(child, viewer))
	}
	return out
}

// CommentTreeResponse is the nested display tree of a thread
type CommentTreeResponse struct {
	ThreadId domain.ThreadId   `json:"thread_id"`
	Count    int               `json:"count"`
	Roots    []CommentTreeNode `json:"roots"`
}

func NewCommentTreeResponse(threadId domain.ThreadId, tree iter.Seq[*domain.CommentNode], viewer *domain.User) CommentTreeResponse {
	resp := CommentTreeResponse{ThreadId: threadId, Roots: []CommentTreeNode{}}
	for _, root := range domain.Forest(tree) {
		resp.Count += root.Size()
		resp.Roots = append(resp.Roots, newCommentTreeNode(root, viewer))
	}
	return resp
}

func myReaction(set domain.ReactionSet, viewer *domain.User) string {
	if viewer == nil {
		return ""
	}
	if kind, ok := set.Reaction(viewer.Id); ok {
		return kind.String()
	}
	return ""
}
