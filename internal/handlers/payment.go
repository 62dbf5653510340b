package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct{}

// CreatePaymentIntent is a placeholder for a real gateway integration and
// always returns the same mock client secret.
func (h *PaymentHandler) CreatePaymentIntent(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message":      "Payment intent created (Mock)",
		"clientSecret": "mock_client_secret_123_456",
		"success":      true,
	})
}
