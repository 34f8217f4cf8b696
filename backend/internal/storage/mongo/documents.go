package mongo

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/threadboard/threadboard/shared/domain"
)

// ids are stored as strings so documents stay readable in the shell

type userDocument struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	EmailLower   string    `bson:"emailLower"`
	PasswordHash string    `bson:"passwordHash"`
	CreatedAt    time.Time `bson:"createdAt"`
}

type threadDocument struct {
	ID         string    `bson:"_id"`
	AuthorID   string    `bson:"authorId"`
	Title      string    `bson:"title"`
	Content    string    `bson:"content"`
	CreatedAt  time.Time `bson:"createdAt"`
	Edited     bool      `bson:"edited"`
	Likes      []string  `bson:"likes"`
	Dislikes   []string  `bson:"dislikes"`
	CommentIDs []string  `bson:"commentIds"`
}

type commentDocument struct {
	ID        string    `bson:"_id"`
	ThreadID  string    `bson:"threadId"`
	AuthorID  string    `bson:"authorId"`
	ParentID  *string   `bson:"parentId,omitempty"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"createdAt"`
	Edited    bool      `bson:"edited"`
	Likes     []string  `bson:"likes"`
	Dislikes  []string  `bson:"dislikes"`
}

func toUserDocument(u domain.User) userDocument {
	return userDocument{
		ID:           u.Id.String(),
		Name:         u.Name,
		Email:        u.Email,
		EmailLower:   strings.ToLower(u.Email),
		PasswordHash: u.PassHash,
		CreatedAt:    u.CreatedAt,
	}
}

func (d userDocument) toDomain() (domain.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.User{}, fmt.Errorf("invalid user id %q: %w", d.ID, err)
	}
	return domain.User{
		Id:        id,
		Name:      d.Name,
		Email:     d.Email,
		PassHash:  d.PasswordHash,
		CreatedAt: d.CreatedAt.UTC(),
	}, nil
}

func toThreadDocument(t domain.Thread) threadDocument {
	commentIDs := make([]string, len(t.CommentIds))
	for i, id := range t.CommentIds {
		commentIDs[i] = id.String()
	}
	return threadDocument{
		ID:         t.Id.String(),
		AuthorID:   t.AuthorId.String(),
		Title:      t.Title,
		Content:    t.Content,
		CreatedAt:  t.CreatedAt,
		Edited:     t.Edited,
		Likes:      t.Likes.Strings(),
		Dislikes:   t.Dislikes.Strings(),
		CommentIDs: commentIDs,
	}
}

func (d threadDocument) toDomain() (domain.Thread, error) {
	var (
		t   domain.Thread
		err error
	)
	if t.Id, err = uuid.Parse(d.ID); err != nil {
		return domain.Thread{}, fmt.Errorf("invalid thread id %q: %w", d.ID, err)
	}
	if t.AuthorId, err = uuid.Parse(d.AuthorID); err != nil {
		return domain.Thread{}, fmt.Errorf("invalid author id %q: %w", d.AuthorID, err)
	}
	if t.Likes, err = domain.VoterSetFromStrings(d.Likes); err != nil {
		return domain.Thread{}, err
	}
	if t.Dislikes, err = domain.VoterSetFromStrings(d.Dislikes); err != nil {
		return domain.Thread{}, err
	}
	t.CommentIds = make([]domain.CommentId, len(d.CommentIDs))
	for i, raw := range d.CommentIDs {
		if t.CommentIds[i], err = uuid.Parse(raw); err != nil {
			return domain.Thread{}, fmt.Errorf("invalid comment id %q: %w", raw, err)
		}
	}
	t.Title = d.Title
	t.Content = d.Content
	t.CreatedAt = d.CreatedAt.UTC()
	t.Edited = d.Edited
	return t, nil
}

func toCommentDocument(c domain.Comment) commentDocument {
	doc := commentDocument{
		ID:        c.Id.String(),
		ThreadID:  c.ThreadId.String(),
		AuthorID:  c.AuthorId.String(),
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		Edited:    c.Edited,
		Likes:     c.Likes.Strings(),
		Dislikes:  c.Dislikes.Strings(),
	}
	if c.ParentId != nil {
		parent := c.ParentId.String()
		doc.ParentID = &parent
	}
	return doc
}

func (d commentDocument) toDomain() (domain.Comment, error) {
	var (
		c   domain.Comment
		err error
	)
	if c.Id, err = uuid.Parse(d.ID); err != nil {
		return domain.Comment{}, fmt.Errorf("invalid comment id %q: %w", d.ID, err)
	}
	if c.ThreadId, err = uuid.Parse(d.ThreadID); err != nil {
		return domain.Comment{}, fmt.Errorf("invalid thread id %q: %w", d.ThreadID, err)
	}
	if c.AuthorId, err = uuid.Parse(d.AuthorID); err != nil {
		return domain.Comment{}, fmt.Errorf("invalid author id %q: %w", d.AuthorID, err)
	}
	if d.ParentID != nil {
		parent, err := uuid.Parse(*d.ParentID)
		if err != nil {
			return domain.Comment{}, fmt.Errorf("invalid parent id %q: %w", *d.ParentID, err)
		}
		c.ParentId = &parent
	}
	if c.Likes, err = domain.VoterSetFromStrings(d.Likes); err != nil {
		return domain.Comment{}, err
	}
	if c.Dislikes, err = domain.VoterSetFromStrings(d.Dislikes); err != nil {
		return domain.Comment{}, err
	}
	c.Content = d.Content
	c.CreatedAt = d.CreatedAt.UTC()
	c.Edited = d.Edited
	return c, nil
}
