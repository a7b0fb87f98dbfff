package api

import (
	"errors"
	"net/http"

	"github.com/alexanderramin/plangrid/internal/domain"
	"github.com/gin-gonic/gin"
)

// errBadRequest marks request decoding failures.
var errBadRequest = errors.New("invalid body")

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, domain.ErrFormat),
		errors.Is(err, domain.ErrInvalidConfig),
		errors.Is(err, domain.ErrInvalidProject),
		errors.Is(err, domain.ErrLastGroup),
		errors.Is(err, domain.ErrNameRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"ok": false, "error": err.Error()})
}
