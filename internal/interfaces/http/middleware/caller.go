package middleware

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

const (
	// CallerHeader carries the EVM address the request acts as.
	CallerHeader = "X-Caller-Address"
	// CallerKey is the context key for the canonical caller address.
	CallerKey = "callerAddress"
)

// CallerMiddleware extracts and canonicalizes the caller address header.
// Every state-changing user operation is attributed to this address; reads
// that do not need an identity skip this middleware.
func CallerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(CallerHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "X-Caller-Address header is required",
			})
			return
		}
		if !common.IsHexAddress(raw) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "X-Caller-Address is not a valid address",
			})
			return
		}

		c.Set(CallerKey, common.HexToAddress(raw).Hex())
		c.Next()
	}
}

// GetCaller gets the canonical caller address from context
func GetCaller(c *gin.Context) (string, bool) {
	caller, exists := c.Get(CallerKey)
	if !exists {
		return "", false
	}
	return caller.(string), true
}
