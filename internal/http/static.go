package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// StaticFallback serves the frontend directory for any route the API does not
// claim: index.html for the root, sibling files otherwise.
func StaticFallback(dir string) gin.HandlerFunc {
	root := filepath.Clean(dir)
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
			return
		}

		reqPath := c.Request.URL.Path
		if reqPath == "/" {
			reqPath = "/index.html"
		}

		full := filepath.Join(root, filepath.Clean("/"+reqPath))
		if rel, err := filepath.Rel(root, full); err != nil || strings.HasPrefix(rel, "..") {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
			return
		}
		if info, err := os.Stat(full); err != nil || info.IsDir() {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
			return
		}
		c.File(full)
	}
}
