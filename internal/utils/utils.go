package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetCountParam reads a bounded "count" query parameter for top-N listings.
func GetCountParam(c *gin.Context, defaultCount int) int {
	count, _ := strconv.Atoi(c.DefaultQuery("count", strconv.Itoa(defaultCount)))
	if count < 1 || count > 100 {
		count = defaultCount
	}
	return count
}
