package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mandeepmildura/irrigation-web-mvp/static"
)

// Dashboard serves the built-in control page.
func Dashboard(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", static.IndexHTML)
}
