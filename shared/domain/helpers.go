package domain

import (
	"fmt"
	"time"
)

// for debug
func (c *Comment) String() string {
	parent := "-"
	if c.ParentId != nil {
		parent = c.ParentId.String()
	}
	return fmt.Sprintf("[id:%s, thread:%s, author:%s, parent:%s, created:%s, likes:%d, dislikes:%d]",
		c.Id, c.ThreadId, c.AuthorId, parent, c.CreatedAt.Format(time.StampMilli), c.LikeCount(), c.DislikeCount())
}

func (t *Thread) String() string {
	return fmt.Sprintf("[id:%s, title:%s, author:%s, comments:%d, likes:%d, dislikes:%d]",
		t.Id, t.Title, t.AuthorId, len(t.CommentIds), t.LikeCount(), t.DislikeCount())
}
