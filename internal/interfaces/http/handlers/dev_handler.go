package handlers

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"wrld-names.backend/internal/domain/repositories"
	"wrld-names.backend/internal/interfaces/http/middleware"
	"wrld-names.backend/internal/interfaces/http/response"
)

// DevHandler exposes token and pass ledger operations for development
// environments. Routes are only mounted when the server env is development;
// production deployments with the on-chain token mode never see these.
type DevHandler struct {
	payment repositories.PaymentTokenLedger
	passes  repositories.PassLedger
}

// NewDevHandler creates a new dev handler
func NewDevHandler(payment repositories.PaymentTokenLedger, passes repositories.PassLedger) *DevHandler {
	return &DevHandler{payment: payment, passes: passes}
}

type mintTokenRequest struct {
	To     string `json:"to" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}

type approveTokenRequest struct {
	Spender string `json:"spender" binding:"required"`
	Amount  string `json:"amount" binding:"required"`
}

type mintPassRequest struct {
	To       string `json:"to" binding:"required"`
	PassType int64  `json:"passType"`
	Quantity int64  `json:"quantity" binding:"required"`
}

type transferPassRequest struct {
	From     string `json:"from" binding:"required"`
	To       string `json:"to" binding:"required"`
	PassType int64  `json:"passType"`
	Quantity int64  `json:"quantity" binding:"required"`
}

func parseAmount(s string) (*big.Int, bool) {
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok || amount.Sign() < 0 {
		return nil, false
	}
	return amount, true
}

// MintToken credits WRLD to an address
// POST /api/v1/dev/token/mint
func (h *DevHandler) MintToken(c *gin.Context) {
	var req mintTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	amount, ok := parseAmount(req.Amount)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}

	if err := h.payment.Mint(c.Request.Context(), req.To, amount); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"to": req.To, "amount": req.Amount})
}

// ApproveToken sets the caller's WRLD allowance for a spender
// POST /api/v1/dev/token/approve
func (h *DevHandler) ApproveToken(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Caller address is required"})
		return
	}

	var req approveTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	amount, ok := parseAmount(req.Amount)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}

	if err := h.payment.Approve(c.Request.Context(), caller, req.Spender, amount); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"spender": req.Spender, "amount": req.Amount})
}

// GetTokenBalance reads a WRLD balance
// GET /api/v1/dev/token/balance/:address
func (h *DevHandler) GetTokenBalance(c *gin.Context) {
	address := c.Param("address")
	if !common.IsHexAddress(address) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address"})
		return
	}

	balance, err := h.payment.BalanceOf(c.Request.Context(), address)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"address": address, "balance": balance.String()})
}

// MintPasses credits passes to a holder
// POST /api/v1/dev/passes/mint
func (h *DevHandler) MintPasses(c *gin.Context) {
	var req mintPassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.passes.Mint(c.Request.Context(), req.To, req.PassType, req.Quantity); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"to": req.To, "quantity": req.Quantity})
}

// TransferPasses moves passes between holders; the caller must be the sender
// POST /api/v1/dev/passes/transfer
func (h *DevHandler) TransferPasses(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Caller address is required"})
		return
	}

	var req transferPassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err := h.passes.SafeTransferFrom(c.Request.Context(), caller, req.From, req.To, req.PassType, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"from": req.From, "to": req.To, "quantity": req.Quantity})
}

// GetPassBalance reads a holder's pass balance
// GET /api/v1/dev/passes/balance/:address?passType=2
func (h *DevHandler) GetPassBalance(c *gin.Context) {
	address := c.Param("address")
	if !common.IsHexAddress(address) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address"})
		return
	}

	var query struct {
		PassType int64 `form:"passType"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid passType"})
		return
	}

	balance, err := h.passes.BalanceOf(c.Request.Context(), address, query.PassType)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"address": address, "balance": balance})
}
