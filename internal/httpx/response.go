// Package httpx defines the uniform response envelope. Every endpoint,
// success or failure, answers {code, message, data}; code mirrors the
// HTTP status and data is null when there is nothing to return.
package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func JSON(ctx *gin.Context, status int, message string, data interface{}) {
	ctx.JSON(status, Response{Code: status, Message: message, Data: data})
}

func OK(ctx *gin.Context, message string, data interface{}) {
	JSON(ctx, http.StatusOK, message, data)
}

func Created(ctx *gin.Context, message string, data interface{}) {
	JSON(ctx, http.StatusCreated, message, data)
}

// Message answers a success with no payload (data: null).
func Message(ctx *gin.Context, message string) {
	JSON(ctx, http.StatusOK, message, nil)
}

func Error(ctx *gin.Context, status int, message string) {
	JSON(ctx, status, message, nil)
}

// AbortError writes the error envelope and stops the handler chain.
func AbortError(ctx *gin.Context, status int, message string) {
	ctx.AbortWithStatusJSON(status, Response{Code: status, Message: message, Data: nil})
}

// BindMessage turns a binding failure into the message for the 400
// envelope, surfacing the first failing field rather than the whole
// validator dump.
func BindMessage(err error) string {
	var verrs validator.ValidationErrors

	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fieldMessage(verrs[0])
	}

	return "Invalid request body"
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min", "gte":
		return fe.Field() + " must be at least " + fe.Param()
	case "max", "lte":
		return fe.Field() + " must be at most " + fe.Param()
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	default:
		return "Invalid value for " + fe.Field()
	}
}
