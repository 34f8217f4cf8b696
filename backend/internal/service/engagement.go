package service

import (
	"context"
	"fmt"
	"iter"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/threadboard/threadboard/shared/domain"
	"github.com/threadboard/threadboard/shared/errors"
)

type EngagementService interface {
	React(ctx context.Context, ref domain.EntityRef, voter domain.UserId, kind domain.ReactionKind) (domain.Reactable, error)
	ReactToThread(ctx context.Context, id domain.ThreadId, voter domain.UserId, kind domain.ReactionKind) (domain.Thread, error)
	ReactToComment(ctx context.Context, id domain.CommentId, voter domain.UserId, kind domain.ReactionKind) (domain.Comment, error)
	PostComment(ctx context.Context, data domain.CommentCreationData) (domain.Comment, error)
	EditComment(ctx context.Context, id domain.CommentId, actor domain.UserId, content domain.Content) (domain.Comment, error)
	DeleteComment(ctx context.Context, id domain.CommentId, actor domain.UserId) error
	EditThread(ctx context.Context, id domain.ThreadId, actor domain.UserId, content domain.Content) (domain.Thread, error)
	DeleteThread(ctx context.Context, id domain.ThreadId, actor domain.UserId) error
	CommentTree(ctx context.Context, threadId domain.ThreadId) (iter.Seq[*domain.CommentNode], error)
}

// EngagementStorage is the record store the engagement rules run against.
// Missing records are reported with errors.ErrNotFound.
type EngagementStorage interface {
	GetThread(ctx context.Context, id domain.ThreadId) (domain.Thread, error)
	PutThread(ctx context.Context, thread domain.Thread) error
	DeleteThread(ctx context.Context, id domain.ThreadId) error
	GetComment(ctx context.Context, id domain.CommentId) (domain.Comment, error)
	PutComment(ctx context.Context, comment domain.Comment) error
	DeleteComment(ctx context.Context, id domain.CommentId) error
	CommentsByThread(ctx context.Context, threadId domain.ThreadId) ([]domain.Comment, error)
	UserExists(ctx context.Context, id domain.UserId) (bool, error)
}

type ContentValidator interface {
	Title(title domain.ThreadTitle) error
	Content(content domain.Content) error
	Sanitize(text string) string
}

// Engagement applies reactions, comment tree and ownership rules and is
// the only writer of threads and comments. Each call does one read and one
// write per entity; concurrent writers race with last-writer-wins.
type Engagement struct {
	storage   EngagementStorage
	validator ContentValidator
	clock     clockwork.Clock
	newId     func() uuid.UUID
}

func NewEngagement(storage EngagementStorage, validator ContentValidator, clock clockwork.Clock) *Engagement {
	return &Engagement{
		storage:   storage,
		validator: validator,
		clock:     clock,
		newId:     uuid.New,
	}
}

func (e *Engagement) React(ctx context.Context, ref domain.EntityRef, voter domain.UserId, kind domain.ReactionKind) (domain.Reactable, error) {
	switch ref.Kind {
	case domain.EntityThread:
		thread, err := e.ReactToThread(ctx, ref.Id, voter, kind)
		if err != nil {
			return nil, err
		}
		return &thread, nil
	case domain.EntityComment:
		comment, err := e.ReactToComment(ctx, ref.Id, voter, kind)
		if err != nil {
			return nil, err
		}
		return &comment, nil
	default:
		return nil, &errors.ErrorWithStatusCode{Message: fmt.Sprintf("Unknown entity kind %q", ref.Kind), StatusCode: http.StatusBadRequest}
	}
}

func (e *Engagement) ReactToThread(ctx context.Context, id domain.ThreadId, voter domain.UserId, kind domain.ReactionKind) (domain.Thread, error) {
	thread, err := e.storage.GetThread(ctx, id)
	if err != nil {
		return domain.Thread{}, errors.StoreFailure(err)
	}
	// repeated reaction changes nothing, skip the write
	if domain.ApplyReaction(&thread, voter, kind) {
		if err := e.storage.PutThread(ctx, thread); err != nil {
			return domain.Thread{}, errors.StoreFailure(err)
		}
	}
	return thread, nil
}

func (e *Engagement) ReactToComment(ctx context.Context, id domain.CommentId, voter domain.UserId, kind domain.ReactionKind) (domain.Comment, error) {
	comment, err := e.storage.GetComment(ctx, id)
	if err != nil {
		return domain.Comment{}, errors.StoreFailure(err)
	}
	if domain.ApplyReaction(&comment, voter, kind) {
		if err := e.storage.PutComment(ctx, comment); err != nil {
			return domain.Comment{}, errors.StoreFailure(err)
		}
	}
	return comment, nil
}

// PostComment attaches a new comment to a thread, optionally as a reply.
// The comment is written before the thread's comment index; if the index
// write fails the comment is removed again.
func (e *Engagement) PostComment(ctx context.Context, data domain.CommentCreationData) (domain.Comment, error) {
	data.Content = e.validator.Sanitize(data.Content)
	if err := e.validator.Content(data.Content); err != nil {
		return domain.Comment{}, err
	}

	exists, err := e.storage.UserExists(ctx, data.AuthorId)
	if err != nil {
		return domain.Comment{}, errors.StoreFailure(err)
	}
	if !exists {
		return domain.Comment{}, errors.NotFound("user")
	}

	thread, err := e.storage.GetThread(ctx, data.ThreadId)
	if err != nil {
		return domain.Comment{}, errors.StoreFailure(err)
	}

	var parent *domain.Comment
	if data.ParentId != nil {
		found, err := e.storage.GetComment(ctx, *data.ParentId)
		switch {
		case err == nil:
			parent = &found
		case !errors.IsNotFound(err):
			return domain.Comment{}, errors.StoreFailure(err)
		}
	}

	comment, err := domain.AttachComment(&thread, data, parent, e.newId(), e.clock.Now().UTC())
	if err != nil {
		return domain.Comment{}, err
	}

	if err := e.storage.PutComment(ctx, comment); err != nil {
		return domain.Comment{}, errors.StoreFailure(err)
	}
	if err := e.storage.PutThread(ctx, thread); err != nil {
		// best effort, the original error is what the caller needs
		_ = e.storage.DeleteComment(ctx, comment.Id)
		return domain.Comment{}, errors.StoreFailure(err)
	}
	return comment, nil
}

func (e *Engagement) EditComment(ctx context.Context, id domain.CommentId, actor domain.UserId, content domain.Content) (domain.Comment, error) {
	content = e.validator.Sanitize(content)
	if err := e.validator.Content(content); err != nil {
		return domain.Comment{}, err
	}

	comment, err := e.storage.GetComment(ctx, id)
	if err != nil {
		return domain.Comment{}, errors.StoreFailure(err)
	}
	if err := domain.AuthorizeOwner(actor, &comment); err != nil {
		return domain.Comment{}, err
	}

	comment.Content = content
	comment.Edited = true
	if err := e.storage.PutComment(ctx, comment); err != nil {
		return domain.Comment{}, errors.StoreFailure(err)
	}
	return comment, nil
}

// DeleteComment removes exactly one comment. Replies stay in place and are
// shown at the top level from then on.
func (e *Engagement) DeleteComment(ctx context.Context, id domain.CommentId, actor domain.UserId) error {
	comment, err := e.storage.GetComment(ctx, id)
	if err != nil {
		return errors.StoreFailure(err)
	}
	if err := domain.AuthorizeOwner(actor, &comment); err != nil {
		return err
	}

	if err := e.storage.DeleteComment(ctx, id); err != nil {
		return errors.StoreFailure(err)
	}

	thread, err := e.storage.GetThread(ctx, comment.ThreadId)
	if errors.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return errors.StoreFailure(err)
	}
	if thread.DropComment(id) {
		if err := e.storage.PutThread(ctx, thread); err != nil {
			return errors.StoreFailure(err)
		}
	}
	return nil
}

func (e *Engagement) EditThread(ctx context.Context, id domain.ThreadId, actor domain.UserId, content domain.Content) (domain.Thread, error) {
	content = e.validator.Sanitize(content)
	if err := e.validator.Content(content); err != nil {
		return domain.Thread{}, err
	}

	thread, err := e.storage.GetThread(ctx, id)
	if err != nil {
		return domain.Thread{}, errors.StoreFailure(err)
	}
	if err := domain.AuthorizeOwner(actor, &thread); err != nil {
		return domain.Thread{}, err
	}

	thread.Content = content
	thread.Edited = true
	if err := e.storage.PutThread(ctx, thread); err != nil {
		return domain.Thread{}, errors.StoreFailure(err)
	}
	return thread, nil
}

// DeleteThread removes the thread record only, its comments are left behind.
func (e *Engagement) DeleteThread(ctx context.Context, id domain.ThreadId, actor domain.UserId) error {
	thread, err := e.storage.GetThread(ctx, id)
	if err != nil {
		return errors.StoreFailure(err)
	}
	if err := domain.AuthorizeOwner(actor, &thread); err != nil {
		return err
	}
	if err := e.storage.DeleteThread(ctx, id); err != nil {
		return errors.StoreFailure(err)
	}
	return nil
}

func (e *Engagement) CommentTree(ctx context.Context, threadId domain.ThreadId) (iter.Seq[*domain.CommentNode], error) {
	if _, err := e.storage.GetThread(ctx, threadId); err != nil {
		return nil, errors.StoreFailure(err)
	}
	comments, err := e.storage.CommentsByThread(ctx, threadId)
	if err != nil {
		return nil, errors.StoreFailure(err)
	}
	return domain.BuildTree(comments), nil
}
