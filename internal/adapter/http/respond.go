package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storekit/storefront-api/internal/usecase"
)

// Every API failure uses the same envelope.
func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

// failErr maps the usecase taxonomy onto status codes: bad references
// and validation problems are the caller's fault, everything else is a
// 500 with the message withheld.
func failErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, usecase.ErrInsufficientStock),
		errors.Is(err, usecase.ErrNotPurchasable),
		errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, usecase.ErrDuplicate):
		fail(c, http.StatusBadRequest, err.Error())
	default:
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, "internal error")
	}
}

// listEnvelope is the shared list response shape.
func listEnvelope(items any, total, page, limit int64) gin.H {
	if page < 1 {
		page = 1
	}
	pages := int64(0)
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return gin.H{
		"items":       items,
		"totalPages":  pages,
		"currentPage": page,
		"total":       total,
	}
}
