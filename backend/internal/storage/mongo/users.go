package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/threadboard/threadboard/shared/domain"
	internal_errors "github.com/threadboard/threadboard/shared/errors"
)

func (s *Storage) SaveUser(ctx context.Context, user domain.User) error {
	if _, err := s.users.InsertOne(ctx, toUserDocument(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("user %s: %w", user.Email, internal_errors.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *Storage) UserByEmail(ctx context.Context, email domain.Email) (domain.User, error) {
	var doc userDocument
	err := s.users.FindOne(ctx, bson.M{"emailLower": strings.ToLower(email)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.User{}, internal_errors.NotFound("user")
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to find user: %w", err)
	}
	return doc.toDomain()
}

func (s *Storage) UserExists(ctx context.Context, id domain.UserId) (bool, error) {
	n, err := s.users.CountDocuments(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	return n > 0, nil
}

func (s *Storage) UsersByIds(ctx context.Context, ids []domain.UserId) (map[domain.UserId]domain.User, error) {
	users := make(map[domain.UserId]domain.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}
	cursor, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": raw}})
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc userDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
		user, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		users[user.Id] = user
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}
