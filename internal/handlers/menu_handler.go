package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/restaurant-reservations/internal/audit"
	"github.com/BruksfildServices01/restaurant-reservations/internal/domain/menu"
	"github.com/BruksfildServices01/restaurant-reservations/internal/httperr"
	"github.com/BruksfildServices01/restaurant-reservations/internal/httpresp"
	"github.com/BruksfildServices01/restaurant-reservations/internal/imaging"
	"github.com/BruksfildServices01/restaurant-reservations/internal/middleware"
	"github.com/BruksfildServices01/restaurant-reservations/internal/models"
)

const (
	maxImageBytes       = 5 << 20
	defaultStoreTimeout = 3 * time.Second
)

// ImageStore keeps uploaded menu photos and returns their public URL.
type ImageStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

type MenuHandler struct {
	repo   menu.Repository
	images ImageStore
	audit  *audit.Dispatcher
	now    func() time.Time

	storeTimeout time.Duration
}

// NewMenuHandler accepts a nil images store; uploads then answer 503.
// storeTimeout bounds each menu store call.
func NewMenuHandler(
	repo menu.Repository,
	images ImageStore,
	audit *audit.Dispatcher,
	storeTimeout time.Duration,
) *MenuHandler {
	if storeTimeout <= 0 {
		storeTimeout = defaultStoreTimeout
	}
	return &MenuHandler{
		repo:         repo,
		images:       images,
		audit:        audit,
		now:          func() time.Time { return time.Now().UTC() },
		storeTimeout: storeTimeout,
	}
}

func (h *MenuHandler) storeContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.storeTimeout)
}

// --------- Requests ---------

type CreateMenuItemRequest struct {
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	Category        string           `json:"category"`
	Image           string           `json:"image"`
	IsVegetarian    bool             `json:"isVegetarian"`
	IsSpicy         bool             `json:"isSpicy"`
	IsAvailable     *bool            `json:"isAvailable"`
	PreparationTime *int             `json:"preparationTime"`
}

type UpdateMenuItemRequest struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	Category        *string          `json:"category"`
	Image           *string          `json:"image"`
	IsVegetarian    *bool            `json:"isVegetarian"`
	IsSpicy         *bool            `json:"isSpicy"`
	IsAvailable     *bool            `json:"isAvailable"`
	PreparationTime *int             `json:"preparationTime"`
}

func (r UpdateMenuItemRequest) apply(item *models.MenuItem) {
	if r.Name != nil {
		item.Name = *r.Name
	}
	if r.Description != nil {
		item.Description = *r.Description
	}
	if r.Price != nil {
		item.Price = *r.Price
	}
	if r.Category != nil {
		item.Category = *r.Category
	}
	if r.Image != nil {
		item.Image = *r.Image
	}
	if r.IsVegetarian != nil {
		item.IsVegetarian = *r.IsVegetarian
	}
	if r.IsSpicy != nil {
		item.IsSpicy = *r.IsSpicy
	}
	if r.IsAvailable != nil {
		item.IsAvailable = *r.IsAvailable
	}
	if r.PreparationTime != nil {
		item.PreparationTime = *r.PreparationTime
	}
}

// --------- Public ---------

func (h *MenuHandler) List(c *gin.Context) {
	var f menu.Filter

	if raw := strings.TrimSpace(c.Query("category")); raw != "" {
		cat, err := menu.ParseCategory(raw)
		if err != nil {
			writeError(c, err)
			return
		}
		f.Category = cat
	}

	switch strings.TrimSpace(c.Query("available")) {
	case "true":
		yes := true
		f.Available = &yes
	case "false":
		no := false
		f.Available = &no
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	items, err := h.repo.List(ctx, f)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Array(c, items)
}

func (h *MenuHandler) ListByCategory(c *gin.Context) {
	cat, err := menu.ParseCategory(c.Param("category"))
	if err != nil {
		writeError(c, err)
		return
	}

	available := true
	ctx, cancel := h.storeContext(c)
	defer cancel()

	items, err := h.repo.List(ctx, menu.Filter{
		Category:  cat,
		Available: &available,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Array(c, items)
}

func (h *MenuHandler) Get(c *gin.Context) {
	ctx, cancel := h.storeContext(c)
	defer cancel()

	item, err := h.repo.GetByID(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, item)
}

// --------- Staff ---------

func (h *MenuHandler) Create(c *gin.Context) {
	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c)
		return
	}
	if req.Price == nil {
		writeError(c, menu.ErrValidation("price"))
		return
	}

	now := h.now()
	item := models.MenuItem{
		ID:              uuid.NewString(),
		Name:            req.Name,
		Description:     req.Description,
		Price:           *req.Price,
		Category:        req.Category,
		Image:           req.Image,
		IsVegetarian:    req.IsVegetarian,
		IsSpicy:         req.IsSpicy,
		IsAvailable:     true,
		PreparationTime: menu.DefaultPreparationTime,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if req.PreparationTime != nil {
		item.PreparationTime = *req.PreparationTime
	}

	if err := menu.Validate(&item); err != nil {
		writeError(c, err)
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	if err := h.repo.Create(ctx, &item); err != nil {
		writeError(c, err)
		return
	}

	h.record(c, "menu_item_created", item.ID, nil)
	httpresp.Created(c, item)
}

func (h *MenuHandler) Update(c *gin.Context) {
	var req UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c)
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	item, err := h.repo.Update(ctx, c.Param("id"), func(item *models.MenuItem) error {
		req.apply(item)
		if err := menu.Validate(item); err != nil {
			return err
		}
		item.UpdatedAt = h.now()
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.record(c, "menu_item_updated", item.ID, nil)
	httpresp.OK(c, item)
}

func (h *MenuHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	ctx, cancel := h.storeContext(c)
	defer cancel()

	if err := h.repo.Delete(ctx, id); err != nil {
		writeError(c, err)
		return
	}

	h.record(c, "menu_item_deleted", id, nil)
	httpresp.Message(c, "Menu item deleted successfully")
}

func (h *MenuHandler) ToggleAvailability(c *gin.Context) {
	ctx, cancel := h.storeContext(c)
	defer cancel()

	item, err := h.repo.Update(ctx, c.Param("id"), func(item *models.MenuItem) error {
		item.IsAvailable = !item.IsAvailable
		item.UpdatedAt = h.now()
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.record(c, "menu_item_availability_toggled", item.ID, map[string]any{
		"isAvailable": item.IsAvailable,
	})
	httpresp.OK(c, item)
}

func (h *MenuHandler) UploadImage(c *gin.Context) {
	if h.images == nil {
		httperr.Unavailable(c, "image_storage_disabled", "Image storage is not configured")
		return
	}

	id := c.Param("id")
	lookupCtx, cancelLookup := h.storeContext(c)
	defer cancelLookup()

	if _, err := h.repo.GetByID(lookupCtx, id); err != nil {
		writeError(c, err)
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, menu.CodeValidation, "Missing image file")
		return
	}
	if fh.Size > maxImageBytes {
		httperr.Write(c, http.StatusRequestEntityTooLarge, "image_too_large", "Image must be at most 5MB")
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer f.Close()

	body, err := imaging.ToWebP(io.LimitReader(f, maxImageBytes))
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Image must be a JPEG, PNG or WebP file")
		return
	}

	key := fmt.Sprintf("menu/%s/%s.webp", id, uuid.NewString())
	url, err := h.images.Put(c.Request.Context(), key, body, imaging.ContentType)
	if err != nil {
		_ = c.Error(err)
		httperr.Write(c, http.StatusBadGateway, "image_upload_failed", "Could not store image")
		return
	}

	updateCtx, cancelUpdate := h.storeContext(c)
	defer cancelUpdate()

	item, err := h.repo.Update(updateCtx, id, func(item *models.MenuItem) error {
		item.Image = url
		item.UpdatedAt = h.now()
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.record(c, "menu_item_image_uploaded", item.ID, map[string]any{"key": key})
	httpresp.OK(c, item)
}

func (h *MenuHandler) record(c *gin.Context, action, id string, meta map[string]any) {
	h.audit.Dispatch(audit.Event{
		Actor:    middleware.AdminUsername(c),
		Action:   action,
		Entity:   "menu_item",
		EntityID: id,
		Metadata: meta,
	})
}
