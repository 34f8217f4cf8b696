package domain

import "time"

// to iterate thru layers: handler -> service -> storage
type CommentCreationData struct {
	ThreadId ThreadId
	AuthorId UserId
	ParentId *CommentId
	Content  Content
}

type Comment struct {
	Id        CommentId  `json:"id"`
	ThreadId  ThreadId   `json:"thread_id"`
	AuthorId  UserId     `json:"author_id"`
	ParentId  *CommentId `json:"parent_id"`
	Content   Content    `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	Edited    bool       `json:"edited"`
	ReactionSet
}

func (c *Comment) Reactions() *ReactionSet {
	return &c.ReactionSet
}

func (c *Comment) Owner() UserId {
	return c.AuthorId
}

func (c *Comment) IsRoot() bool {
	return c.ParentId == nil
}

type CommentView struct {
	Comment
	Author UserSummary `json:"author"`
}
