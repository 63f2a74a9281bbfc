package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"wrld-names.backend/internal/domain/entities"
	"wrld-names.backend/internal/interfaces/http/response"
	"wrld-names.backend/internal/usecases"
)

// ResolverHandler serves cached record resolution
type ResolverHandler struct {
	resolver *usecases.ResolverUsecase
}

// NewResolverHandler creates a new resolver handler
func NewResolverHandler(resolver *usecases.ResolverUsecase) *ResolverHandler {
	return &ResolverHandler{resolver: resolver}
}

// ResolveAddress resolves a name to its default EVM address
// GET /api/v1/resolve/:name
func (h *ResolverHandler) ResolveAddress(c *gin.Context) {
	address, err := h.resolver.ResolveAddress(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"address": address})
}

// Resolve reads one typed record
// GET /api/v1/resolve/:name/:type/:key
func (h *ResolverHandler) Resolve(c *gin.Context) {
	typ, ok := entities.ParseRecordType(c.Param("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record type"})
		return
	}

	record, err := h.resolver.Resolve(c.Request.Context(), c.Param("name"), typ, c.Param("key"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, record)
}

// ListKeys returns the record keys of a type
// GET /api/v1/resolve/:name/:type
func (h *ResolverHandler) ListKeys(c *gin.Context) {
	typ, ok := entities.ParseRecordType(c.Param("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record type"})
		return
	}

	keys, err := h.resolver.ListKeys(c.Request.Context(), c.Param("name"), typ)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"keys": keys})
}
