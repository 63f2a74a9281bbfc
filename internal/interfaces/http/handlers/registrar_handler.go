package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"wrld-names.backend/internal/domain/entities"
	domainerrors "wrld-names.backend/internal/domain/errors"
	"wrld-names.backend/internal/interfaces/http/middleware"
	"wrld-names.backend/internal/interfaces/http/response"
	"wrld-names.backend/internal/usecases"
)

// RegistrarHandler handles registration, extension, pricing and withdrawal
type RegistrarHandler struct {
	registrar *usecases.RegistrarUsecase
}

// NewRegistrarHandler creates a new registrar handler
func NewRegistrarHandler(registrar *usecases.RegistrarUsecase) *RegistrarHandler {
	return &RegistrarHandler{registrar: registrar}
}

// Register performs a paid batch registration
// POST /api/v1/registrar/register
func (h *RegistrarHandler) Register(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Caller address is required"})
		return
	}

	var input entities.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.registrar.Register(c.Request.Context(), caller, &input); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"registered": input.Names})
}

// RegisterWithPass registers names by consuming passes
// POST /api/v1/registrar/register-with-pass
func (h *RegistrarHandler) RegisterWithPass(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Caller address is required"})
		return
	}

	var input entities.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// Pass registrations run for a fixed one-year term; an explicit years
	// array is accepted only when it says so.
	for _, y := range input.Years {
		if y != 1 {
			response.Error(c, domainerrors.ErrInvalidDuration)
			return
		}
	}

	if err := h.registrar.RegisterWithPass(c.Request.Context(), caller, input.Names); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"registered": input.Names})
}

// Extend extends existing registrations
// POST /api/v1/registrar/extend
func (h *RegistrarHandler) Extend(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Caller address is required"})
		return
	}

	var input entities.ExtendInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.registrar.ExtendRegistration(c.Request.Context(), caller, &input); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"extended": input.Names})
}

// Quote prices a prospective registration
// POST /api/v1/registrar/quote
func (h *RegistrarHandler) Quote(c *gin.Context) {
	var input entities.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	total, err := h.registrar.Quote(c.Request.Context(), input.Names, input.Years)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"total": total.String()})
}

// Status reports whether paid registration is open
// GET /api/v1/registrar/status
func (h *RegistrarHandler) Status(c *gin.Context) {
	enabled, err := h.registrar.RegistrationEnabled(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"registrationEnabled": enabled})
}

// GetPrices returns the annual price schedule
// GET /api/v1/registrar/prices
func (h *RegistrarHandler) GetPrices(c *gin.Context) {
	schedule, err := h.registrar.GetAnnualPrices(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"annual": schedule.Annual})
}

// Enable opens paid registration
// POST /api/v1/registrar/enable (owner)
func (h *RegistrarHandler) Enable(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Caller address is required"})
		return
	}

	if err := h.registrar.EnableRegistration(c.Request.Context(), caller); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"registrationEnabled": true})
}

// SetPrices replaces the annual price schedule
// PUT /api/v1/registrar/prices (owner)
func (h *RegistrarHandler) SetPrices(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Caller address is required"})
		return
	}

	var input entities.SetPricesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.registrar.SetAnnualWrldPrices(c.Request.Context(), caller, input.Prices); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"annual": input.Prices})
}

// SetPrice updates a single length bucket
// PUT /api/v1/registrar/prices/:bucket (owner)
func (h *RegistrarHandler) SetPrice(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Caller address is required"})
		return
	}

	bucket, err := strconv.Atoi(c.Param("bucket"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bucket"})
		return
	}

	var input struct {
		Price string `json:"price" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.registrar.SetAnnualWrldPrice(c.Request.Context(), caller, bucket, input.Price); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bucket": bucket, "price": input.Price})
}

// SetApprovedWithdrawer designates the fee withdrawal address
// PUT /api/v1/registrar/approved-withdrawer (owner)
func (h *RegistrarHandler) SetApprovedWithdrawer(c *gin.Context) {
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

	if err := h.registrar.SetApprovedWithdrawer(c.Request.Context(), caller, input.Address); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"approvedWithdrawer": input.Address})
}

// Withdraw moves the registrar's collected fees
// POST /api/v1/registrar/withdraw
func (h *RegistrarHandler) Withdraw(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Caller address is required"})
		return
	}

	var input entities.WithdrawInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.registrar.WithdrawWrld(c.Request.Context(), caller, input.To); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"withdrawnTo": input.To})
}
