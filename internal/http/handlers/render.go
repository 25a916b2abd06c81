package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/you/portfoliosvc/internal/http/middleware"
)

// render executes page with data plus the current session for the nav bar.
func render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["session"] = middleware.CurrentSession(c)
	c.HTML(status, page, data)
}
