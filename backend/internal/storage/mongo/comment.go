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

func (s *Storage) GetComment(ctx context.Context, id domain.CommentId) (domain.Comment, error) {
	var doc commentDocument
	err := s.comments.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Comment{}, internal_errors.NotFound("comment")
	}
	if err != nil {
		return domain.Comment{}, fmt.Errorf("failed to find comment: %w", err)
	}
	return doc.toDomain()
}

func (s *Storage) PutComment(ctx context.Context, comment domain.Comment) error {
	doc := toCommentDocument(comment)
	if _, err := s.comments.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, upsert()); err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}
	return nil
}

func (s *Storage) DeleteComment(ctx context.Context, id domain.CommentId) error {
	res, err := s.comments.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if res.DeletedCount == 0 {
		return internal_errors.NotFound("comment")
	}
	return nil
}

func (s *Storage) CommentsByThread(ctx context.Context, threadId domain.ThreadId) ([]domain.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.comments.Find(ctx, bson.M{"threadId": threadId.String()}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}
	defer cursor.Close(ctx)

	comments := []domain.Comment{}
	for cursor.Next(ctx) {
		var doc commentDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode comment: %w", err)
		}
		comment, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}
	return comments, nil
}
