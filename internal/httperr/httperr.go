package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ===============================
// HTTP writers
// ===============================

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// ===============================
// Business errors
// ===============================

// BusinessError identifica una regla de negocio violada por su código;
// los handlers lo traducen a una respuesta HTTP con mensaje legible.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func BusinessCode(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}
