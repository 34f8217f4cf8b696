package utils

import (
	"html"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"

	"github.com/threadboard/threadboard/shared/config"
	"github.com/threadboard/threadboard/shared/errors"
)

const minPasswordLen = 8

// bcrypt rejects longer input
const maxPasswordBytes = 72

// allowed non-alphanumeric password characters
const passwordSpecials = "@$!%*#?&"

// ContentValidator checks user supplied text against the configured limits.
type ContentValidator struct {
	maxTitleLen   int
	maxContentLen int
	policy        *bluemonday.Policy
}

func NewContentValidator(cfg *config.Public) *ContentValidator {
	return &ContentValidator{
		maxTitleLen:   cfg.MaxTitleLen,
		maxContentLen: cfg.MaxContentLen,
		policy:        bluemonday.StrictPolicy(),
	}
}

func (v *ContentValidator) Title(title string) error {
	if strings.TrimSpace(title) == "" {
		return &errors.ErrorWithStatusCode{Message: "Title is empty", StatusCode: http.StatusBadRequest}
	}
	if utf8.RuneCountInString(title) > v.maxTitleLen {
		return &errors.ErrorWithStatusCode{Message: "Title is too long", StatusCode: http.StatusBadRequest}
	}
	return nil
}

func (v *ContentValidator) Content(content string) error {
	if strings.TrimSpace(content) == "" {
		return &errors.ErrorWithStatusCode{Message: "Content is empty", StatusCode: http.StatusBadRequest}
	}
	if utf8.RuneCountInString(content) > v.maxContentLen {
		return &errors.ErrorWithStatusCode{Message: "Content is too long", StatusCode: http.StatusBadRequest}
	}
	return nil
}

// Sanitize strips every HTML tag. The policy escapes the remaining text for
// HTML output; that is undone so the stored value is the plain text the user
// typed.
func (v *ContentValidator) Sanitize(text string) string {
	return strings.TrimSpace(html.UnescapeString(v.policy.Sanitize(text)))
}

// CredentialsValidator checks registration input.
type CredentialsValidator struct {
	validate *validator.Validate
}

func NewCredentialsValidator() *CredentialsValidator {
	return &CredentialsValidator{validate: validator.New()}
}

func (v *CredentialsValidator) Email(email string) error {
	if err := v.validate.Var(email, "required,email"); err != nil {
		return &errors.ErrorWithStatusCode{Message: "Invalid email", StatusCode: http.StatusBadRequest}
	}
	return nil
}

// Password requires at least eight characters from letters, digits and
// @$!%*#?& with at least one of each class.
func (v *CredentialsValidator) Password(password string) error {
	if len(password) < minPasswordLen {
		return &errors.ErrorWithStatusCode{Message: "Password is too short", StatusCode: http.StatusBadRequest}
	}
	if len(password) > maxPasswordBytes {
		return &errors.ErrorWithStatusCode{Message: "Password is too long", StatusCode: http.StatusBadRequest}
	}
	var letter, digit, special bool
	for _, r := range password {
		switch {
		case r < unicode.MaxASCII && unicode.IsLetter(r):
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return &errors.ErrorWithStatusCode{Message: "Password contains unsupported characters", StatusCode: http.StatusBadRequest}
		}
	}
	if !letter || !digit || !special {
		return &errors.ErrorWithStatusCode{Message: "Password needs a letter, a digit and one of " + passwordSpecials, StatusCode: http.StatusBadRequest}
	}
	return nil
}
