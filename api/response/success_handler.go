package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Success bodies are the resource itself, without an envelope.

func HandleSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func HandleCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func HandleNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
