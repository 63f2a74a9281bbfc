package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"wrld-names.backend/internal/domain/entities"
	"wrld-names.backend/internal/interfaces/http/middleware"
	"wrld-names.backend/internal/interfaces/http/response"
	"wrld-names.backend/internal/usecases"
	"wrld-names.backend/pkg/utils"
)

// NameHandler handles registry reads, record/entry writes and migration
type NameHandler struct {
	registry *usecases.RegistryUsecase
}

// NewNameHandler creates a new name handler
func NewNameHandler(registry *usecases.RegistryUsecase) *NameHandler {
	return &NameHandler{registry: registry}
}

// List returns a page of registrations
// GET /api/v1/names
func (h *NameHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	pagination := utils.GetPaginationParams(page, limit)

	names, total, err := h.registry.ListNames(c.Request.Context(), pagination)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"names":      names,
		"pagination": utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	})
}

// Get returns the full registration
// GET /api/v1/names/:name
func (h *NameHandler) Get(c *gin.Context) {
	info, err := h.registry.GetName(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, info)
}

// GetOwner returns the owner address
// GET /api/v1/names/:name/owner
func (h *NameHandler) GetOwner(c *gin.Context) {
	owner, err := h.registry.GetNameOwner(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"owner": owner})
}

// GetController returns the controller address
// GET /api/v1/names/:name/controller
func (h *NameHandler) GetController(c *gin.Context) {
	controller, err := h.registry.GetNameController(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"controller": controller})
}

// GetExpiration returns the expiry unix timestamp
// GET /api/v1/names/:name/expiration
func (h *NameHandler) GetExpiration(c *gin.Context) {
	expiresAt, err := h.registry.GetNameExpiration(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"expiresAt": expiresAt})
}

// GetTokenID returns the token ID bound to a name
// GET /api/v1/names/:name/token-id
func (h *NameHandler) GetTokenID(c *gin.Context) {
	tokenID, err := h.registry.GetNameTokenID(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tokenId": tokenID})
}

// GetTokenName returns the name a token ID is bound to
// GET /api/v1/tokens/:id/name
func (h *NameHandler) GetTokenName(c *gin.Context) {
	tokenID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token ID"})
		return
	}

	name, err := h.registry.GetTokenName(c.Request.Context(), tokenID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"name": name})
}

// GetTokenURI returns the rendered token metadata URI
// GET /api/v1/tokens/:id/uri
func (h *NameHandler) GetTokenURI(c *gin.Context) {
	tokenID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token ID"})
		return
	}

	uri, err := h.registry.TokenURI(c.Request.Context(), tokenID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"uri": uri})
}

// SetController reassigns a name's controller
// PUT /api/v1/names/:name/controller
func (h *NameHandler) SetController(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Caller address is required"})
		return
	}

	var input entities.SetControllerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.registry.SetController(c.Request.Context(), caller, c.Param("name"), input.Controller); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"controller": input.Controller})
}

// SetRecord upserts a typed record
// PUT /api/v1/names/:name/records/:type/:key
func (h *NameHandler) SetRecord(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Caller address is required"})
		return
	}

	typ, ok := entities.ParseRecordType(c.Param("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record type"})
		return
	}

	var input entities.SetRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err := h.registry.SetRecord(c.Request.Context(), caller, c.Param("name"), typ, c.Param("key"), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"key": c.Param("key"), "value": input.Value})
}

// GetRecord reads a typed record
// GET /api/v1/names/:name/records/:type/:key
func (h *NameHandler) GetRecord(c *gin.Context) {
	typ, ok := entities.ParseRecordType(c.Param("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record type"})
		return
	}

	record, err := h.registry.GetRecord(c.Request.Context(), c.Param("name"), typ, c.Param("key"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, record)
}

// ListRecordKeys returns the ordered key list of a record type
// GET /api/v1/names/:name/records/:type
func (h *NameHandler) ListRecordKeys(c *gin.Context) {
	typ, ok := entities.ParseRecordType(c.Param("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record type"})
		return
	}

	keys, err := h.registry.GetRecordsList(c.Request.Context(), c.Param("name"), typ)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"keys": keys})
}

// SetEntry upserts a caller-namespaced entry
// PUT /api/v1/names/:name/entries/:type/:key
func (h *NameHandler) SetEntry(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Caller address is required"})
		return
	}

	typ, ok := entities.ParseRecordType(c.Param("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record type"})
		return
	}

	var input entities.SetEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err := h.registry.SetEntry(c.Request.Context(), caller, c.Param("name"), typ, c.Param("key"), input.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"key": c.Param("key"), "value": input.Value})
}

// GetEntry reads an entry set by a specific address
// GET /api/v1/names/:name/entries/:type/:key?setter=0x..
func (h *NameHandler) GetEntry(c *gin.Context) {
	typ, ok := entities.ParseRecordType(c.Param("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record type"})
		return
	}

	setter := c.Query("setter")
	if setter == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "setter query parameter is required"})
		return
	}

	entry, err := h.registry.GetEntry(c.Request.Context(), setter, c.Param("name"), typ, c.Param("key"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, entry)
}

// Migrate forwards a migration request to the bound bridge
// POST /api/v1/names/:name/migrate
func (h *NameHandler) Migrate(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Caller address is required"})
		return
	}

	var input entities.MigrateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.registry.Migrate(c.Request.Context(), caller, c.Param("name"), input.Mode); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"migrated": c.Param("name")})
}
