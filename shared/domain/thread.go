package domain

import (
	"slices"
	"time"
)

// to iterate thru layers: handler -> service -> storage
type ThreadCreationData struct {
	AuthorId UserId
	Title    ThreadTitle
	Content  Content
}

type Thread struct {
	Id        ThreadId    `json:"id"`
	AuthorId  UserId      `json:"author_id"`
	Title     ThreadTitle `json:"title"`
	Content   Content     `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
	Edited    bool        `json:"edited"`
	ReactionSet
	CommentIds []CommentId `json:"comment_ids"`
}

func (t *Thread) Reactions() *ReactionSet {
	return &t.ReactionSet
}

func (t *Thread) Owner() UserId {
	return t.AuthorId
}

// AppendComment records a comment id in creation order.
func (t *Thread) AppendComment(id CommentId) {
	t.CommentIds = append(t.CommentIds, id)
}

// DropComment forgets a comment id. Reports whether it was present.
func (t *Thread) DropComment(id CommentId) bool {
	idx := slices.Index(t.CommentIds, id)
	if idx < 0 {
		return false
	}
	t.CommentIds = slices.Delete(t.CommentIds, idx, idx+1)
	return true
}

// ThreadView is a thread as served to readers, with its author resolved.
type ThreadView struct {
	Thread
	Author UserSummary `json:"author"`
}
