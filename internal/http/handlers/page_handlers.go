package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageHandlers serves the static pages
type PageHandlers struct{}

func (h *PageHandlers) Home(c *gin.Context) {
	render(c, http.StatusOK, "home", nil)
}

func (h *PageHandlers) About(c *gin.Context) {
	render(c, http.StatusOK, "about", gin.H{"title": "About"})
}

// NotFound answers unmatched routes.
func (h *PageHandlers) NotFound(c *gin.Context) {
	render(c, http.StatusNotFound, "404", gin.H{"title": "Not found"})
}
