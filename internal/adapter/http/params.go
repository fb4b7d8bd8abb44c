package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const maxPageSize = 100

// pageParams parses page/limit with a per-collection default and a hard
// cap, so clients cannot request unbounded pages.
func pageParams(c *gin.Context, defaultLimit int64) (page, limit int64) {
	page, _ = strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.ParseInt(c.DefaultQuery("limit", ""), 10, 64)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func floatParam(c *gin.Context, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
