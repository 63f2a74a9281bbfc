package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"wrld-names.backend/internal/domain/entities"
	"wrld-names.backend/internal/domain/repositories"
	"wrld-names.backend/internal/interfaces/http/middleware"
	"wrld-names.backend/internal/interfaces/http/response"
	"wrld-names.backend/internal/usecases"
)

// AdminHandler handles owner-only registry administration
type AdminHandler struct {
	registry *usecases.RegistryUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(registry *usecases.RegistryUsecase) *AdminHandler {
	return &AdminHandler{registry: registry}
}

// SetRegistrar toggles approval for a registrar address
// PUT /api/v1/admin/registrar (owner)
func (h *AdminHandler) SetRegistrar(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Caller address is required"})
		return
	}

	var input entities.SetRegistrarInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err := h.registry.SetApprovedRegistrar(c.Request.Context(), caller, input.Address, input.Approved)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"address": input.Address, "approved": input.Approved})
}

// SetResolver updates the resolver contract binding
// PUT /api/v1/admin/resolver (owner)
func (h *AdminHandler) SetResolver(c *gin.Context) {
	h.setBinding(c, repositories.SettingResolverContract)
}

// SetBridge updates the bridge contract binding
// PUT /api/v1/admin/bridge (owner)
func (h *AdminHandler) SetBridge(c *gin.Context) {
	h.setBinding(c, repositories.SettingBridgeContract)
}

// SetMetadata updates the metadata contract binding
// PUT /api/v1/admin/metadata (owner)
func (h *AdminHandler) SetMetadata(c *gin.Context) {
	h.setBinding(c, repositories.SettingMetadataContract)
}

func (h *AdminHandler) setBinding(c *gin.Context, settingKey string) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Caller address is required"})
		return
	}

	var input entities.SetAddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.registry.SetBinding(c.Request.Context(), caller, settingKey, input.Address); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"address": input.Address})
}

// SetAlternateResolver binds or clears a per-name alternate resolver.
// An empty address clears the binding.
// PUT /api/v1/names/:name/alternate-resolver (owner)
func (h *AdminHandler) SetAlternateResolver(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Caller address is required"})
		return
	}

	var input struct {
		Address string `json:"address"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err := h.registry.SetAlternateResolver(c.Request.Context(), caller, c.Param("name"), input.Address)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"name": c.Param("name"), "alternateResolver": input.Address})
}
