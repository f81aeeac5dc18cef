package api

import (
	"embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static
var staticFS embed.FS

// SetupStaticRoutes serves the embedded chat and admin pages.
func SetupStaticRoutes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		servePage(c, "static/chat.html")
	})
	r.GET("/admin", func(c *gin.Context) {
		servePage(c, "static/admin.html")
	})
}

func servePage(c *gin.Context, path string) {
	content, err := staticFS.ReadFile(path)
	if err != nil {
		c.String(http.StatusNotFound, "page not found")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", content)
}
