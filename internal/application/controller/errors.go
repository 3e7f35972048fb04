package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"weather-search/internal/domain/model"
	"weather-search/pkg/log"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// errorStatus maps domain errors to HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c echo.Context, err error) error {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Errorw(err.Error(), "uri", c.Request().RequestURI)
		return c.JSON(status, ErrorResponse{Status: statusError, Message: http.StatusText(status)})
	}
	return c.JSON(status, ErrorResponse{Status: statusError, Message: err.Error()})
}

// RequestValidator plugs validator/v10 into echo, reporting failures as model.ValidationError
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *RequestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return &model.ValidationError{Field: "request", Reason: err.Error()}
	}

	reasons := make([]string, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		if fieldError.Param() != "" {
			reasons = append(reasons, fmt.Sprintf("%s must satisfy %s=%s", strings.ToLower(fieldError.Field()), fieldError.Tag(), fieldError.Param()))
		} else {
			reasons = append(reasons, fmt.Sprintf("%s is %s", strings.ToLower(fieldError.Field()), fieldError.Tag()))
		}
	}
	return &model.ValidationError{Field: "request", Reason: strings.Join(reasons, "; ")}
}

// bindAndValidate binds query parameters into dto and validates it
func bindAndValidate(c echo.Context, dto any) error {
	if err := c.Bind(dto); err != nil {
		return &model.ValidationError{Field: "request", Reason: "malformed parameters"}
	}
	return c.Validate(dto)
}
