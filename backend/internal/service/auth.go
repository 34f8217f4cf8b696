package service

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"

	"github.com/threadboard/threadboard/shared/domain"
	"github.com/threadboard/threadboard/shared/errors"
	"github.com/threadboard/threadboard/shared/logger"
)

type AuthService interface {
	Register(ctx context.Context, data domain.RegistrationData) (domain.User, error)
	Login(ctx context.Context, creds domain.Credentials) (domain.User, string, error)
}

type Auth struct {
	storage   AuthStorage
	validator CredentialsValidator
	jwt       Jwt
	clock     clockwork.Clock
}

type AuthStorage interface {
	// SaveUser fails with errors.ErrAlreadyExists when the email is taken.
	SaveUser(ctx context.Context, user domain.User) error
	UserByEmail(ctx context.Context, email domain.Email) (domain.User, error)
}

type CredentialsValidator interface {
	Email(email domain.Email) error
	Password(password domain.Password) error
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

func NewAuth(storage AuthStorage, validator CredentialsValidator, jwt Jwt, clock clockwork.Clock) *Auth {
	return &Auth{
		storage:   storage,
		validator: validator,
		jwt:       jwt,
		clock:     clock,
	}
}

var errInvalidCredentials = &errors.ErrorWithStatusCode{Message: "Invalid credentials", StatusCode: http.StatusUnauthorized}

// Register creates an account. Emails are compared case-insensitively.
func (a *Auth) Register(ctx context.Context, data domain.RegistrationData) (domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(data.Email))
	name := strings.TrimSpace(data.Name)
	if name == "" {
		return domain.User{}, &errors.ErrorWithStatusCode{Message: "Name is empty", StatusCode: http.StatusBadRequest}
	}
	if err := a.validator.Email(email); err != nil {
		return domain.User{}, err
	}
	if err := a.validator.Password(data.Password); err != nil {
		return domain.User{}, err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.User{}, err
	}

	user := domain.User{
		Id:        uuid.New(),
		Name:      name,
		Email:     email,
		PassHash:  string(passHash),
		CreatedAt: a.clock.Now().UTC(),
	}
	if err := a.storage.SaveUser(ctx, user); err != nil {
		if stderrors.Is(err, errors.ErrAlreadyExists) {
			return domain.User{}, &errors.ErrorWithStatusCode{Message: "Email is already registered", StatusCode: http.StatusConflict}
		}
		return domain.User{}, errors.StoreFailure(err)
	}
	return user, nil
}

// Login checks credentials and returns the user with a fresh access token.
// Unknown email and wrong password are reported the same way.
func (a *Auth) Login(ctx context.Context, creds domain.Credentials) (domain.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if err := a.validator.Email(email); err != nil {
		return domain.User{}, "", err
	}

	user, err := a.storage.UserByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return domain.User{}, "", errInvalidCredentials
		}
		return domain.User{}, "", errors.StoreFailure(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(creds.Password)); err != nil {
		logger.Log.Info("password verification failed", "user_id", user.Id)
		return domain.User{}, "", errInvalidCredentials
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		logger.Log.Error("failed to create jwt token", "user_id", user.Id, "error", err)
		return domain.User{}, "", err
	}

	return user, token, nil
}
