package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SuccessResponse is the envelope for successful responses.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// JSON writes a success envelope with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, SuccessResponse{Success: true, Data: payload})
}

// OK writes a 200 OK success envelope.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}

// Created writes a 201 Created success envelope.
func Created(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusCreated, payload)
}
