package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"construction-pm/internal/domain"
	resp "construction-pm/internal/transport/http/response"
)

const (
	msgInvalidBody = "Invalid request body"
	msgEmptyBody   = "Request body is required"
	msgInvalidID   = "Invalid id"
)

var registerOnce sync.Once

// registerValidators adds the custom rules to gin's validator engine.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("ymd", func(fl validator.FieldLevel) bool {
			return domain.IsDate(fl.Field().String())
		})
	})
}

// numericString accepts either a JSON number or a JSON string and keeps the
// raw text, so `"7"` and `7` bind alike and `"seven"` fails the numeric rule.
type numericString string

func (n *numericString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = numericString(s)
		return nil
	}
	if string(b) == "null" {
		*n = ""
		return nil
	}
	*n = numericString(b)
	return nil
}

// bindMessage turns a binding error into the client message. Missing fields
// take priority over format errors; otherwise the first failing field in
// declaration order decides.
func bindMessage(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			if fe.Tag() == "required" {
				return domain.MsgFieldsRequired
			}
		}
		switch fe := ve[0]; fe.Tag() {
		case "numeric":
			return domain.MsgInvalidOwnerID
		case "ymd":
			return domain.MsgInvalidDate
		case "oneof":
			return domain.MsgInvalidStatus
		}
		return msgInvalidBody
	}
	if errors.Is(err, io.EOF) {
		return msgEmptyBody
	}
	return msgInvalidBody
}

// bind decodes and validates the JSON body, answering the client itself on
// failure.
func bind(c *gin.Context, req any) bool {
	registerValidators()
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, resp.Error(http.StatusRequestEntityTooLarge, ""))
		return false
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, resp.Error(http.StatusBadRequest, bindMessage(err)))
	return false
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, resp.Error(http.StatusBadRequest, msgInvalidID))
		return 0, false
	}
	return id, true
}

// writeError maps domain errors to status codes. Anything unrecognised is
// attached to the context for the access log and answered with a generic
// 500.
func writeError(c *gin.Context, err error, notFoundMsg string) {
	var ve *domain.ValidationError
	var ce *domain.ConflictError
	status, msg := http.StatusInternalServerError, ""
	switch {
	case errors.As(err, &ve):
		status, msg = http.StatusBadRequest, ve.Msg
	case errors.As(err, &ce):
		status, msg = http.StatusBadRequest, ce.Msg
	case errors.Is(err, domain.ErrUserExists):
		status, msg = http.StatusBadRequest, "User already exists"
	case errors.Is(err, domain.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, domain.ErrNotFound):
		status, msg = http.StatusNotFound, notFoundMsg
	case errors.Is(err, context.DeadlineExceeded):
		_ = c.Error(err)
		status = http.StatusGatewayTimeout
	default:
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, resp.Error(status, msg))
}
