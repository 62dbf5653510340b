package handlers

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/uday8116/swift-basket/internal/models"
)

var validate = validator.New()

// Publisher is the slice of the kafka producer the handlers need. Tests swap in
// a recording fake so no broker is required.
type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event interface{}) error
}

// Mailer delivers order confirmations. Failures are logged, never returned to
// the client.
type Mailer interface {
	Send(to, subject, body string) error
}

// ProductIndex mirrors search.Client. A nil index disables search sync.
type ProductIndex interface {
	IndexProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id uint) error
	Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error)
}

func publish(c echo.Context, p Publisher, topic string, event map[string]any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, fmt.Sprint(event["userID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// parseFloat reports whether s is a usable numeric bound. A malformed value is
// dropped from the query instead of poisoning it, SQL has no NaN.
func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(400, "invalid id")
	}
	return uint(id), nil
}
