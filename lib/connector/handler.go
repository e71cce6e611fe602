package connector

import (
	"fmt"
	"net/http"

	"hackathon_system/lib/logger"

	"github.com/gin-gonic/gin"
)

// Response is the envelope of every API answer
type Response struct {
	OK       bool   `json:"ok"`
	Error    string `json:"error,omitempty"`
	Response any    `json:"response,omitempty"`
}

func RespOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, &Response{
		OK:       true,
		Response: data,
	})
}

func RespCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, &Response{
		OK:       true,
		Response: data,
	})
}

func RespErr(c *gin.Context, code int, errf string, values ...interface{}) {
	c.AbortWithStatusJSON(code, &Response{
		OK:    false,
		Error: fmt.Sprintf(errf, values...),
	})
}

// RespServerError logs the real error and hides it from the client
func RespServerError(c *gin.Context, format string, values ...interface{}) {
	logger.ErrorLevel(1, format, values...)
	c.AbortWithStatusJSON(http.StatusInternalServerError, &Response{
		OK:    false,
		Error: "internal error",
	})
}
