package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/uday8116/swift-basket/internal/middleware/auth"
	"github.com/uday8116/swift-basket/internal/models"
	"github.com/uday8116/swift-basket/internal/mykafka"
)

type OrderHandler struct {
	DB       *gorm.DB
	Producer Publisher
	Mailer   Mailer
}

type orderItemRequest struct {
	Product uint    `json:"product" validate:"required"`
	Name    string  `json:"name"`
	Image   string  `json:"image"`
	Price   float64 `json:"price"`
	Qty     int     `json:"qty" validate:"required,min=1"`
}

type placeOrderRequest struct {
	OrderItems      []orderItemRequest     `json:"orderItems" validate:"required,min=1,dive"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress" validate:"required"`
	PaymentMethod   string                 `json:"paymentMethod" validate:"required"`
	ItemsPrice      float64                `json:"itemsPrice"`
	TaxPrice        float64                `json:"taxPrice"`
	ShippingPrice   float64                `json:"shippingPrice"`
	TotalPrice      float64                `json:"totalPrice"`
}

// PlaceOrder checks stock for every line, persists the order with the
// client-supplied price breakdown, then decrements stock per line. The stock
// check and the decrements are separate read-modify-write steps with no
// transaction around them, so concurrent checkouts of the same product can
// still oversell. Confirmation email and the order event are best-effort.
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized")
	}

	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	for _, item := range req.OrderItems {
		var product models.Product
		if err := h.DB.First(&product, item.Product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Product not found: %s", item.Name))
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if product.CountInStock < item.Qty {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Product %s is out of stock", product.Name))
		}
	}

	items := make([]models.OrderItem, 0, len(req.OrderItems))
	for _, item := range req.OrderItems {
		items = append(items, models.OrderItem{
			ProductID: item.Product,
			Name:      item.Name,
			Image:     item.Image,
			Price:     item.Price,
			Qty:       item.Qty,
		})
	}

	order := models.Order{
		UserID:          userID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      req.ItemsPrice,
		TaxPrice:        req.TaxPrice,
		ShippingPrice:   req.ShippingPrice,
		TotalPrice:      req.TotalPrice,
	}

	if err := h.DB.Create(&order).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	for _, item := range order.Items {
		var product models.Product
		if err := h.DB.First(&product, item.ProductID).Error; err != nil {
			continue
		}
		product.CountInStock -= item.Qty
		if product.CountInStock < 0 {
			product.CountInStock = 0
		}
		if err := h.DB.Save(&product).Error; err != nil {
			c.Logger().Errorf("stock decrement error for product %d: %v", product.ID, err)
		}
	}

	h.sendConfirmation(c, userID, &order)
	publish(c, h.Producer, mykafka.TopicOrderEvents, map[string]any{
		"type":    "order_created",
		"userID":  userID,
		"orderID": order.ID,
		"total":   order.TotalPrice,
	})

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) sendConfirmation(c echo.Context, userID uint, order *models.Order) {
	if h.Mailer == nil {
		return
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		c.Logger().Errorf("order confirmation: load user %d: %v", userID, err)
		return
	}

	body := fmt.Sprintf(
		"Thank you for your order, %s! \n\nYour Order ID is %d.\nTotal Amount: Rs. %.2f\n\nWe will notify you when your items are shipped.\n\nHappy Shopping,\nSwift Basket Team",
		user.Name, order.ID, order.TotalPrice,
	)
	if err := h.Mailer.Send(user.Email, "Order Confirmation - Swift Basket", body); err != nil {
		c.Logger().Errorf("Email notification failed: %v", err)
	}
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var order models.Order
	if err := h.DB.Preload("Items").Preload("User").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Pay(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req models.PaymentResult
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var order models.Order
	if err := h.DB.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	now := time.Now()
	order.IsPaid = true
	order.PaidAt = &now
	order.PaymentResult = req

	if err := h.DB.Save(&order).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Deliver(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var order models.Order
	if err := h.DB.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	now := time.Now()
	order.IsDelivered = true
	order.DeliveredAt = &now

	if err := h.DB.Save(&order).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) MyOrders(c echo.Context) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized")
	}

	var orders []models.Order
	if err := h.DB.Preload("Items").Where("user_id = ?", userID).Find(&orders).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, orders)
}

// ListOrders returns every order for superAdmin. Retailers only see orders
// containing at least one of their own products.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	userID, _ := auth.UserID(c)

	q := h.DB.Preload("Items").Preload("User")
	if auth.Role(c) == models.RoleAdmin {
		q = q.Where(
			"id IN (SELECT DISTINCT order_id FROM order_items WHERE product_id IN (SELECT id FROM products WHERE user_id = ?))",
			userID,
		)
	}

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, orders)
}
