package utils

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/threadboard/threadboard/shared/errors"
	"github.com/threadboard/threadboard/shared/logger"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// WriteErrorAndStatusCode maps err onto its HTTP status. Internal errors are
// logged and replaced with a generic message.
func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	status := errors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Log.Error("internal error", "error", err)
		http.Error(w, "Internal error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

func DecodeValidate(r io.ReadCloser, body any) error {
	if err := Decode(r, body); err != nil {
		return err
	}
	if err := validate.Struct(body); err != nil {
		logger.Log.Debug("request validation failed", "error", err)
		return &errors.ErrorWithStatusCode{Message: "Required fields missing", StatusCode: http.StatusBadRequest}
	}
	return nil
}

func Decode(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Debug("request body is not json", "error", err)
		return &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	return nil
}
