package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/uday8116/swift-basket/internal/models"
)

type HomeContentHandler struct {
	DB *gorm.DB
}

// ListHomeContent returns active items ordered for display, grouped by type
// for the storefront landing page.
func (h *HomeContentHandler) ListHomeContent(c echo.Context) error {
	q := h.DB.Where("is_active = ?", true)
	if t := c.QueryParam("type"); t != "" {
		q = q.Where("type = ?", t)
	}

	var content []models.HomeContent
	if err := q.Order("sort_order ASC, created_at DESC").Find(&content).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	brands := make([]models.HomeContent, 0)
	categories := make([]models.HomeContent, 0)
	for _, item := range content {
		switch item.Type {
		case models.HomeContentBrand:
			brands = append(brands, item)
		case models.HomeContentCategory:
			categories = append(categories, item)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"brands":     brands,
		"categories": categories,
		"all":        content,
	})
}

func (h *HomeContentHandler) GetHomeContent(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var content models.HomeContent
	if err := h.DB.First(&content, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Content not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, content)
}

type homeContentRequest struct {
	Type     string `json:"type" validate:"required,oneof=brand category"`
	Name     string `json:"name" validate:"required"`
	Image    string `json:"image"`
	Discount string `json:"discount"`
	Order    *int   `json:"order"`
	IsActive *bool  `json:"isActive"`
}

func (h *HomeContentHandler) CreateHomeContent(c echo.Context) error {
	var req homeContentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sortOrder := 0
	if req.Order != nil {
		sortOrder = *req.Order
	} else {
		var last models.HomeContent
		if err := h.DB.Where("type = ?", req.Type).Order("sort_order DESC").First(&last).Error; err == nil {
			sortOrder = last.SortOrder + 1
		}
	}

	content := models.HomeContent{
		Type:      req.Type,
		Name:      req.Name,
		Image:     req.Image,
		Discount:  req.Discount,
		SortOrder: sortOrder,
		IsActive:  true,
	}
	if req.Discount == "" {
		content.Discount = "UP TO 60% OFF"
	}
	if req.IsActive != nil {
		content.IsActive = *req.IsActive
	}

	if err := h.DB.Create(&content).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, content)
}

func (h *HomeContentHandler) UpdateHomeContent(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req struct {
		Type     string  `json:"type" validate:"omitempty,oneof=brand category"`
		Name     string  `json:"name"`
		Image    *string `json:"image"`
		Discount *string `json:"discount"`
		Order    *int    `json:"order"`
		IsActive *bool   `json:"isActive"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var content models.HomeContent
	if err := h.DB.First(&content, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Content not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Type != "" {
		content.Type = req.Type
	}
	if req.Name != "" {
		content.Name = req.Name
	}
	if req.Image != nil {
		content.Image = *req.Image
	}
	if req.Discount != nil {
		content.Discount = *req.Discount
	}
	if req.Order != nil {
		content.SortOrder = *req.Order
	}
	if req.IsActive != nil {
		content.IsActive = *req.IsActive
	}

	if err := h.DB.Save(&content).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, content)
}

func (h *HomeContentHandler) DeleteHomeContent(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	res := h.DB.Delete(&models.HomeContent{}, id)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Content not found")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Content removed"})
}

type reorderRequest struct {
	Items []struct {
		ID    uint `json:"id" validate:"required"`
		Order int  `json:"order"`
	} `json:"items" validate:"required,min=1,dive"`
}

func (h *HomeContentHandler) ReorderHomeContent(c echo.Context) error {
	var req reorderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Items array is required")
	}

	for _, item := range req.Items {
		if err := h.DB.Model(&models.HomeContent{}).
			Where("id = ?", item.ID).
			Update("sort_order", item.Order).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Reorder successful"})
}
