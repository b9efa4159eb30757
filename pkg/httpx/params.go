package httpx

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// PageLimits — limit по умолчанию и потолок для списочного эндпоинта.
type PageLimits struct {
	Default int
	Max     int
}

// Page — окно выборки из query: ?limit=&offset=.
type Page struct {
	Limit  int
	Offset int
}

// ParsePage — limit всегда в [1, Max]; нечисловой limit даёт Default,
// нечисловой или отрицательный offset — 0.
func ParsePage(c *gin.Context, lim PageLimits) Page {
	page := Page{Limit: clamp(lim.Default, 1, lim.Max)}
	if raw, ok := c.GetQuery("limit"); ok {
		if v, err := strconv.Atoi(raw); err == nil {
			page.Limit = clamp(v, 1, lim.Max)
		}
	}
	if raw, ok := c.GetQuery("offset"); ok {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page.Offset = v
		}
	}
	return page
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
