package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/model"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/database"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/logger"
)

// PartRequest defines the structure for part creation requests.
// Price is integer minor-currency units.
type PartRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Unit     string `json:"unit"`
	Supplier string `json:"supplier"`
	Price    int64  `json:"price"`
	Stock    int    `json:"stock"`
	MinStock int    `json:"min_stock"`
}

// partView wraps a part with its derived low-stock flag
type partView struct {
	model.Part
	LowStock bool `json:"low_stock"`
}

// ListParts handles retrieving all stock items with low-stock flags
func ListParts(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	var parts []model.Part
	result := database.GetDB().
		Where("organization_id = ?", sess.OrgID).
		Order("name ASC").
		Find(&parts)
	if result.Error != nil {
		log.Error("Failed to list parts", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve parts"})
	}

	items := make([]partView, 0, len(parts))
	for _, p := range parts {
		items = append(items, partView{Part: p, LowStock: p.LowStock()})
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "items": items})
}

// CreatePart handles adding a stock item
func CreatePart(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	var req PartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must not be negative"})
	}
	if req.Stock < 0 || req.MinStock < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "stock must not be negative"})
	}
	if req.Unit == "" {
		req.Unit = "Adet"
	}

	part := model.Part{
		OrganizationID: sess.OrgID,
		Name:           req.Name,
		Category:       req.Category,
		Unit:           req.Unit,
		Supplier:       req.Supplier,
		Price:          req.Price,
		Stock:          req.Stock,
		MinStock:       req.MinStock,
	}

	if result := database.GetDB().Create(&part); result.Error != nil {
		log.Error("Failed to create part", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create part"})
	}

	log.Info("Part created",
		zap.Uint("part_id", part.ID),
		zap.String("name", part.Name),
		zap.Int("stock", part.Stock))
	return c.JSON(http.StatusCreated, echo.Map{"ok": true, "item": part})
}

// UpdatePart handles partially updating a stock item
func UpdatePart(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)
	id, err := idParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var part model.Part
	result := database.GetDB().
		Where("id = ? AND organization_id = ?", id, sess.OrgID).
		First(&part)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "part not found"})
	}

	var req struct {
		Name     *string `json:"name"`
		Category *string `json:"category"`
		Unit     *string `json:"unit"`
		Supplier *string `json:"supplier"`
		Price    *int64  `json:"price"`
		Stock    *int    `json:"stock"`
		MinStock *int    `json:"min_stock"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		if *req.Name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name must not be empty"})
		}
		updates["name"] = *req.Name
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.Supplier != nil {
		updates["supplier"] = *req.Supplier
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must not be negative"})
		}
		updates["price"] = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "stock must not be negative"})
		}
		updates["stock"] = *req.Stock
	}
	if req.MinStock != nil {
		if *req.MinStock < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "min_stock must not be negative"})
		}
		updates["min_stock"] = *req.MinStock
	}

	if len(updates) > 0 {
		if result := database.GetDB().Model(&part).Updates(updates); result.Error != nil {
			log.Error("Failed to update part", zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update part"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "item": partView{Part: part, LowStock: part.LowStock()}})
}
