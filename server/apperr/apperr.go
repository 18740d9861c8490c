// apperr carries the HTTP error taxonomy shared by all handlers. Every failed
// request terminates with a JSON body of the form {"message": ..., "data": ...}
// where data is optional detail (e.g. field-level validation errors).
package apperr

import (
	"net/http"

	Logger "github.com/ArjunKaliyath/socials/utils/log"
	"github.com/gin-gonic/gin"
)

type Error struct {
	Status  int
	Message string
	// Data holds optional structured detail surfaced to the client.
	Data interface{}
	// Cause is the underlying error, logged but never sent to the client.
	Cause error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Validation(message string, data interface{}) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Message: message, Data: data}
}

func Unauthenticated(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Internal wraps an unclassified failure. The cause is kept for logging; the
// client only ever sees the generic message.
func Internal(cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "Internal server error.", Cause: cause}
}

// Abort terminates the request with the error's status and JSON body. Any
// error without an explicit classification defaults to internal.
func Abort(c *gin.Context, err error) {
	appErr, ok := err.(*Error)
	if !ok {
		appErr = Internal(err)
	}

	if appErr.Status == http.StatusInternalServerError {
		Logger.Log.Errorf("internal error handling %s %s: %v", c.Request.Method, c.Request.URL.Path, appErr.Unwrap())
	}

	body := gin.H{"message": appErr.Message}
	if appErr.Data != nil {
		body["data"] = appErr.Data
	}
	c.AbortWithStatusJSON(appErr.Status, body)
}
