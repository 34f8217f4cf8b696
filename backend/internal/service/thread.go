package service

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/threadboard/threadboard/shared/domain"
	"github.com/threadboard/threadboard/shared/errors"
)

// shown for authors whose account no longer resolves
const unknownAuthorName = "[deleted]"

type ThreadService interface {
	Create(ctx context.Context, data domain.ThreadCreationData) (domain.Thread, error)
	Get(ctx context.Context, id domain.ThreadId) (domain.ThreadView, error)
	List(ctx context.Context) ([]domain.ThreadView, error)
	Comments(ctx context.Context, id domain.ThreadId) ([]domain.CommentView, error)
}

type Thread struct {
	storage   ThreadStorage
	validator ContentValidator
	clock     clockwork.Clock
	newId     func() uuid.UUID
}

type ThreadStorage interface {
	GetThread(ctx context.Context, id domain.ThreadId) (domain.Thread, error)
	PutThread(ctx context.Context, thread domain.Thread) error
	ListThreads(ctx context.Context) ([]domain.Thread, error)
	CommentsByThread(ctx context.Context, threadId domain.ThreadId) ([]domain.Comment, error)
	UserExists(ctx context.Context, id domain.UserId) (bool, error)
	UsersByIds(ctx context.Context, ids []domain.UserId) (map[domain.UserId]domain.User, error)
}

func NewThread(storage ThreadStorage, validator ContentValidator, clock clockwork.Clock) ThreadService {
	return &Thread{storage: storage, validator: validator, clock: clock, newId: uuid.New}
}

func (s *Thread) Create(ctx context.Context, data domain.ThreadCreationData) (domain.Thread, error) {
	data.Title = s.validator.Sanitize(data.Title)
	data.Content = s.validator.Sanitize(data.Content)
	if err := s.validator.Title(data.Title); err != nil {
		return domain.Thread{}, err
	}
	if err := s.validator.Content(data.Content); err != nil {
		return domain.Thread{}, err
	}

	exists, err := s.storage.UserExists(ctx, data.AuthorId)
	if err != nil {
		return domain.Thread{}, errors.StoreFailure(err)
	}
	if !exists {
		return domain.Thread{}, errors.NotFound("user")
	}

	thread := domain.Thread{
		Id:          s.newId(),
		AuthorId:    data.AuthorId,
		Title:       data.Title,
		Content:     data.Content,
		CreatedAt:   s.clock.Now().UTC(),
		ReactionSet: domain.NewReactionSet(),
		CommentIds:  []domain.CommentId{},
	}
	if err := s.storage.PutThread(ctx, thread); err != nil {
		return domain.Thread{}, errors.StoreFailure(err)
	}
	return thread, nil
}

func (s *Thread) Get(ctx context.Context, id domain.ThreadId) (domain.ThreadView, error) {
	thread, err := s.storage.GetThread(ctx, id)
	if err != nil {
		return domain.ThreadView{}, errors.StoreFailure(err)
	}
	authors, err := s.storage.UsersByIds(ctx, []domain.UserId{thread.AuthorId})
	if err != nil {
		return domain.ThreadView{}, errors.StoreFailure(err)
	}
	return domain.ThreadView{Thread: thread, Author: summary(authors, thread.AuthorId)}, nil
}

// List returns every thread, newest first.
func (s *Thread) List(ctx context.Context) ([]domain.ThreadView, error) {
	threads, err := s.storage.ListThreads(ctx)
	if err != nil {
		return nil, errors.StoreFailure(err)
	}
	slices.SortStableFunc(threads, func(a, b domain.Thread) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	ids := make([]domain.UserId, 0, len(threads))
	for _, t := range threads {
		ids = append(ids, t.AuthorId)
	}
	authors, err := s.storage.UsersByIds(ctx, ids)
	if err != nil {
		return nil, errors.StoreFailure(err)
	}

	views := make([]domain.ThreadView, len(threads))
	for i, t := range threads {
		views[i] = domain.ThreadView{Thread: t, Author: summary(authors, t.AuthorId)}
	}
	return views, nil
}

// Comments returns the thread's comments as a flat list in creation order.
func (s *Thread) Comments(ctx context.Context, id domain.ThreadId) ([]domain.CommentView, error) {
	if _, err := s.storage.GetThread(ctx, id); err != nil {
		return nil, errors.StoreFailure(err)
	}
	comments, err := s.storage.CommentsByThread(ctx, id)
	if err != nil {
		return nil, errors.StoreFailure(err)
	}
	slices.SortStableFunc(comments, func(a, b domain.Comment) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	ids := make([]domain.UserId, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.AuthorId)
	}
	authors, err := s.storage.UsersByIds(ctx, ids)
	if err != nil {
		return nil, errors.StoreFailure(err)
	}

	views := make([]domain.CommentView, len(comments))
	for i, c := range comments {
		views[i] = domain.CommentView{Comment: c, Author: summary(authors, c.AuthorId)}
	}
	return views, nil
}

func summary(users map[domain.UserId]domain.User, id domain.UserId) domain.UserSummary {
	if u, ok := users[id]; ok {
		return domain.UserSummary{Id: id, Name: u.Name}
	}
	return domain.UserSummary{Id: id, Name: unknownAuthorName}
}
