package domain

import "time"

type User struct {
	Id        UserId    `json:"id"`
	Name      UserName  `json:"name"`
	Email     Email     `json:"email,omitempty"`
	PassHash  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// UserSummary is what other users get to see about an author.
type UserSummary struct {
	Id   UserId   `json:"id"`
	Name UserName `json:"name"`
}
