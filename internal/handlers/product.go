package handlers

import (
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"github.com/uday8116/swift-basket/internal/middleware/auth"
	"github.com/uday8116/swift-basket/internal/models"
	"github.com/uday8116/swift-basket/internal/mykafka"
)

const (
	catalogPageSize = 12

	filtersCacheKey = "product_filters"
	filtersCacheTTL = 10 * time.Minute
)

type ProductHandler struct {
	DB       *gorm.DB
	Producer Publisher
	Index    ProductIndex
	Cache    *gocache.Cache
}

func (h *ProductHandler) publishEvent(c echo.Context, event map[string]any) {
	publish(c, h.Producer, mykafka.TopicProductEvents, event)
}

// invalidateFilters drops the whole cache, not just the filters key. Coarse,
// but every write already pays a flush and the cache only holds filters today.
func (h *ProductHandler) invalidateFilters() {
	if h.Cache != nil {
		h.Cache.Flush()
	}
}

func (h *ProductHandler) syncIndex(c echo.Context, p *models.Product) {
	if h.Index == nil {
		return
	}
	if err := h.Index.IndexProduct(c.Request().Context(), p); err != nil {
		c.Logger().Errorf("search index error: %v", err)
	}
}

func (h *ProductHandler) dropFromIndex(c echo.Context, id uint) {
	if h.Index == nil {
		return
	}
	if err := h.Index.DeleteProduct(c.Request().Context(), id); err != nil {
		c.Logger().Errorf("search index error: %v", err)
	}
}

// escapeLike neutralizes LIKE metacharacters in user input. Queries using the
// result must carry an ESCAPE '\' clause.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func sortClause(s string) string {
	switch s {
	case "price_asc":
		return "price ASC"
	case "price_desc":
		return "price DESC"
	default:
		return "created_at DESC"
	}
}

// catalogFilter builds the listing filter from query parameters. The keyword
// is matched raw, the brand with metacharacters escaped, mirroring the public
// search contract. The admin dashboard scope narrows retailers to their own
// products; superAdmin and anonymous browsing see the full set.
func (h *ProductHandler) catalogFilter(c echo.Context) func(*gorm.DB) *gorm.DB {
	keyword := c.QueryParam("keyword")
	category := c.QueryParam("category")
	brand := c.QueryParam("brand")
	minPrice, hasMin := parseFloat(c.QueryParam("minPrice"))
	maxPrice, hasMax := parseFloat(c.QueryParam("maxPrice"))

	adminScope := false
	var ownerID uint
	if c.QueryParam("param") == "admin" {
		if uid, ok := auth.UserID(c); ok && auth.Role(c) == models.RoleAdmin {
			adminScope = true
			ownerID = uid
		}
	}

	return func(db *gorm.DB) *gorm.DB {
		if keyword != "" {
			db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(keyword)+"%")
		}
		if category != "" {
			db = db.Where("category = ?", category)
		}
		if brand != "" {
			db = db.Where(`LOWER(brand) LIKE ? ESCAPE '\'`, "%"+strings.ToLower(escapeLike(brand))+"%")
		}
		if hasMin {
			db = db.Where("price >= ?", minPrice)
		}
		if hasMax {
			db = db.Where("price <= ?", maxPrice)
		}
		if adminScope {
			db = db.Where("user_id = ?", ownerID)
		}
		return db
	}
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("pageNumber"), 1)
	if page < 1 {
		page = 1
	}

	filter := h.catalogFilter(c)

	var count int64
	if err := h.DB.Model(&models.Product{}).Scopes(filter).Count(&count).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var products []models.Product
	if err := h.DB.Model(&models.Product{}).
		Scopes(filter).
		Order(sortClause(c.QueryParam("sort"))).
		Limit(catalogPageSize).
		Offset(catalogPageSize * (page - 1)).
		Find(&products).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"products": products,
		"page":     page,
		"pages":    (count + catalogPageSize - 1) / catalogPageSize,
		"count":    count,
	})
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetFilters(c echo.Context) error {
	if h.Cache != nil {
		if cached, ok := h.Cache.Get(filtersCacheKey); ok {
			return c.JSON(http.StatusOK, cached)
		}
	}

	var categories, brands []string
	if err := h.DB.Model(&models.Product{}).Distinct().Pluck("category", &categories).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Model(&models.Product{}).Distinct().Pluck("brand", &brands).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	sort.Strings(categories)
	sort.Strings(brands)

	filters := echo.Map{"categories": categories, "brands": brands}
	if h.Cache != nil {
		h.Cache.Set(filtersCacheKey, filters, filtersCacheTTL)
	}

	return c.JSON(http.StatusOK, filters)
}

type productRequest struct {
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	Description   string   `json:"description"`
	Image         string   `json:"image"`
	Images        []string `json:"images"`
	Brand         string   `json:"brand"`
	Category      string   `json:"category"`
	CountInStock  int      `json:"countInStock"`
	OriginalPrice float64  `json:"originalPrice"`
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized")
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.Name == "" {
		req.Name = "Sample name"
	}
	if req.Image == "" {
		req.Image = "/images/sample.jpg"
	}
	if req.Brand == "" {
		req.Brand = "Sample brand"
	}
	if req.Category == "" {
		req.Category = "Sample category"
	}
	if req.Description == "" {
		req.Description = "Sample description"
	}
	if req.OriginalPrice == 0 {
		req.OriginalPrice = req.Price
	}
	if req.Images == nil {
		req.Images = []string{}
	}

	product := models.Product{
		UserID:        userID,
		Name:          req.Name,
		Image:         req.Image,
		Images:        req.Images,
		Brand:         req.Brand,
		Category:      req.Category,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		CountInStock:  req.CountInStock,
	}

	if err := h.DB.Create(&product).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.invalidateFilters()
	h.syncIndex(c, &product)
	h.publishEvent(c, map[string]any{
		"type":      "product_created",
		"userID":    userID,
		"productID": product.ID,
		"name":      product.Name,
	})

	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	userID, _ := auth.UserID(c)

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if auth.Role(c) != models.RoleSuperAdmin && product.UserID != userID {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized to update this product")
	}

	product.Name = req.Name
	product.Price = req.Price
	product.Description = req.Description
	product.Image = req.Image
	product.Brand = req.Brand
	product.Category = req.Category
	product.CountInStock = req.CountInStock
	if req.Images != nil {
		product.Images = req.Images
	} else {
		product.Images = []string{}
	}

	if err := h.DB.Save(&product).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.invalidateFilters()
	h.syncIndex(c, &product)
	h.publishEvent(c, map[string]any{
		"type":      "product_updated",
		"userID":    userID,
		"productID": product.ID,
		"name":      product.Name,
	})

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	userID, _ := auth.UserID(c)

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if auth.Role(c) != models.RoleSuperAdmin && product.UserID != userID {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized to delete this product")
	}

	if err := h.DB.Delete(&product).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.invalidateFilters()
	h.dropFromIndex(c, product.ID)
	h.publishEvent(c, map[string]any{
		"type":      "product_deleted",
		"userID":    userID,
		"productID": product.ID,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Product removed"})
}
