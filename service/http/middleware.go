package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	gorilla "github.com/gorilla/handlers"
	perrors "github.com/peer-network/peer-token/service/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func UseCors(h http.Handler) http.Handler {
	return gorilla.CORS(gorilla.AllowedOrigins([]string{"*"}))(h)
}

func UseLogging(out io.Writer, h http.Handler) http.Handler {
	return gorilla.CombinedLoggingHandler(out, h)
}

func UseCompress(h http.Handler) http.Handler {
	return gorilla.CompressHandler(h)
}

func UseJson(h http.Handler) http.Handler {
	// Only PUT, POST, and PATCH requests are considered.
	return gorilla.ContentTypeHandler(h, "application/json")
}

// requestError marks malformed requests (bad JSON, bad path params).
type requestError struct {
	err error
}

func (e *requestError) Error() string {
	return e.err.Error()
}

func (e *requestError) Unwrap() error {
	return e.err
}

func badRequest(err error) error {
	return &requestError{err}
}

// statusFor maps an error to an HTTP status and a short code.
func statusFor(err error) (int, string) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return http.StatusBadRequest, "BadRequest"
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound, "NotFound"
	}

	if e, ok := perrors.As(err); ok {
		switch e.Kind {
		case perrors.KindValidation, perrors.KindArithmetic:
			return http.StatusBadRequest, e.Name
		case perrors.KindAuthorization:
			return http.StatusForbidden, e.Name
		case perrors.KindState:
			return http.StatusConflict, e.Name
		case perrors.KindFunds:
			return http.StatusUnprocessableEntity, e.Name
		}
	}

	return http.StatusInternalServerError, "InternalError"
}

// handleError is a helper function for unified HTTP error handling.
func handleError(rw http.ResponseWriter, logger *log.Logger, err error) {
	status, code := statusFor(err)

	if logger != nil {
		entry := logger.WithError(err).WithField("status", status)
		if status >= http.StatusInternalServerError {
			entry.Error("Request failed")
		} else {
			entry.Debug("Request rejected")
		}
	}

	msg := err.Error()
	if status == http.StatusNotFound {
		msg = "record not found"
	}
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}

	handleJsonResponse(rw, status, ResError{Error: code, Message: msg})
}

// handleJsonResponse is a helper function for unified JSON response handling.
func handleJsonResponse(rw http.ResponseWriter, status int, res interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	json.NewEncoder(rw).Encode(res)
}

func checkNonEmptyBody(r *http.Request) error {
	if r.Body == nil || r.Body == http.NoBody {
		return badRequest(fmt.Errorf("empty body"))
	}
	return nil
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := checkNonEmptyBody(r); err != nil {
		return err
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest(err)
	}
	return nil
}
