package domain

import "github.com/google/uuid"

type (
	Email    = string
	Password = string
	UserId   = uuid.UUID
	UserName = string

	ThreadId    = uuid.UUID
	ThreadTitle = string

	CommentId = uuid.UUID
	Content   = string
)
