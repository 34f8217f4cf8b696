package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/threadboard/threadboard/shared/domain"
	internal_errors "github.com/threadboard/threadboard/shared/errors"
)

func (s *Storage) GetThread(ctx context.Context, id domain.ThreadId) (domain.Thread, error) {
	var doc threadDocument
	err := s.threads.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Thread{}, internal_errors.NotFound("thread")
	}
	if err != nil {
		return domain.Thread{}, fmt.Errorf("failed to find thread: %w", err)
	}
	return doc.toDomain()
}

func (s *Storage) PutThread(ctx context.Context, thread domain.Thread) error {
	doc := toThreadDocument(thread)
	if _, err := s.threads.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, upsert()); err != nil {
		return fmt.Errorf("failed to save thread: %w", err)
	}
	return nil
}

func (s *Storage) DeleteThread(ctx context.Context, id domain.ThreadId) error {
	res, err := s.threads.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("failed to delete thread: %w", err)
	}
	if res.DeletedCount == 0 {
		return internal_errors.NotFound("thread")
	}
	return nil
}

func (s *Storage) ListThreads(ctx context.Context) ([]domain.Thread, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.threads.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find threads: %w", err)
	}
	defer cursor.Close(ctx)

	threads := []domain.Thread{}
	for cursor.Next(ctx) {
		var doc threadDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode thread: %w", err)
		}
		thread, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		threads = append(threads, thread)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate threads: %w", err)
	}
	return threads, nil
}
