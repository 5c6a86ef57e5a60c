package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// ExtractIDParam extracts a positive integer id from the URL path.
func ExtractIDParam(c *gin.Context, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", param, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", param)
	}
	return id, nil
}

// ParseSince reads the optional RFC3339 "since" query parameter. A missing
// value means the beginning of time.
func ParseSince(c *gin.Context) (time.Time, error) {
	raw := c.Query("since")
	if raw == "" {
		return time.Time{}, nil
	}
	since, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid since: %w", err)
	}
	return since, nil
}
