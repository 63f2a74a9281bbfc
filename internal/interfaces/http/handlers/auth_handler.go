package handlers

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"wrld-names.backend/internal/interfaces/http/response"
	"wrld-names.backend/pkg/crypto"
	"wrld-names.backend/pkg/jwt"
)

// AuthHandler issues owner bearer tokens
type AuthHandler struct {
	jwtService   *jwt.JWTService
	ownerAddress string
	secretHash   string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(jwtService *jwt.JWTService, ownerAddress, secretHash string) *AuthHandler {
	return &AuthHandler{
		jwtService:   jwtService,
		ownerAddress: common.HexToAddress(ownerAddress).Hex(),
		secretHash:   secretHash,
	}
}

type ownerTokenRequest struct {
	Address string `json:"address" binding:"required"`
	Secret  string `json:"secret" binding:"required"`
}

// OwnerToken exchanges the owner secret for a bearer token
// POST /api/v1/auth/owner-token
func (h *AuthHandler) OwnerToken(c *gin.Context) {
	var req ownerTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if h.secretHash == "" ||
		common.HexToAddress(req.Address).Hex() != h.ownerAddress ||
		!crypto.CheckSecret(req.Secret, h.secretHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid owner credentials"})
		return
	}

	token, err := h.jwtService.GenerateOwnerToken(h.ownerAddress)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token":   token,
		"address": h.ownerAddress,
	})
}
