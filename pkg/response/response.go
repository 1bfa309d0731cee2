package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope every endpoint answers with.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// AppError carries the HTTP status a failure should be reported with.
type AppError struct {
	HTTPStatus int
	Code       int
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New builds an AppError whose application code mirrors the HTTP status.
func New(status int, msg string) *AppError {
	return &AppError{HTTPStatus: status, Code: status, Message: msg}
}

// Wrap keeps err as the cause while reporting msg to the client.
func Wrap(status int, err error) *AppError {
	return &AppError{HTTPStatus: status, Code: status, Message: err.Error(), Err: err}
}

func NewBadRequest(msg string) *AppError   { return New(http.StatusBadRequest, msg) }
func NewUnauthorized(msg string) *AppError { return New(http.StatusUnauthorized, msg) }
func NewForbidden(msg string) *AppError    { return New(http.StatusForbidden, msg) }
func NewNotFound(msg string) *AppError     { return New(http.StatusNotFound, msg) }
func NewServerError(msg string) *AppError  { return New(http.StatusInternalServerError, msg) }

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "ok", Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: 0, Message: "created", Data: data})
}

// Error reports err, honouring an *AppError anywhere in its chain.
// Anything else becomes a 500 with the error text.
func Error(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		Fail(c, appErr.HTTPStatus, appErr.Message)
		return
	}
	Fail(c, http.StatusInternalServerError, err.Error())
}

// Fail writes an error envelope and aborts the handler chain.
func Fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Response{Code: status, Message: msg})
}

func BadRequest(c *gin.Context, msg string)   { Fail(c, http.StatusBadRequest, msg) }
func Unauthorized(c *gin.Context, msg string) { Fail(c, http.StatusUnauthorized, msg) }
func Forbidden(c *gin.Context, msg string)    { Fail(c, http.StatusForbidden, msg) }
func NotFound(c *gin.Context, msg string)     { Fail(c, http.StatusNotFound, msg) }
func ServerError(c *gin.Context, msg string)  { Fail(c, http.StatusInternalServerError, msg) }
