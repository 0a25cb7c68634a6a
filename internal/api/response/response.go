// Package response writes the JSON envelope shared by every API endpoint:
// {"ok":true,"data":...} on success and
// {"ok":false,"error":{"message":...,"meta":...}} on failure.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

type success struct {
	OK   bool        `json:"ok"`
	Data interface{} `json:"data"`
}

// ErrorBody is the error half of the envelope.
type ErrorBody struct {
	Message string      `json:"message"`
	Meta    interface{} `json:"meta,omitempty"`
}

type failure struct {
	OK    bool      `json:"ok"`
	Error ErrorBody `json:"error"`
}

// OK writes a 200 envelope.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, success{OK: true, Data: data})
}

// Created writes a 201 envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, success{OK: true, Data: data})
}

// Error writes a failure envelope with optional meta.
func Error(c *gin.Context, status int, message string, meta interface{}) {
	c.JSON(status, failure{Error: ErrorBody{Message: message, Meta: meta}})
}

// Abort writes a failure envelope and stops the handler chain.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, failure{Error: ErrorBody{Message: message}})
}

// Encode renders a success envelope for caching.
func Encode(data interface{}) ([]byte, error) {
	return json.Marshal(success{OK: true, Data: data})
}

// Raw writes a previously encoded success envelope.
func Raw(c *gin.Context, body []byte) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
