package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agoralabs/agora/backend/internal/payments"
)

type PaymentHandler struct {
	provider payments.Provider
}

// CreatePaymentIntent asks the payment provider for a client secret. Amounts
// arrive in whole currency units and are converted to the smallest unit.
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	var input struct {
		Amount int64 `json:"amount"`
		User   struct {
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"user"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid amount"})
		return
	}

	secret, err := h.provider.CreateIntent(c.Request.Context(), input.Amount*100, input.User.Email, input.User.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
}
