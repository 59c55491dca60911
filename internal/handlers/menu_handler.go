package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"

	"seaside_restaurant/internal/models"
	"seaside_restaurant/internal/repository"
	"seaside_restaurant/internal/services"

	"github.com/gin-gonic/gin"
)

const unavailableMessage = "Item is currently unavailable"

type MenuHandler struct {
	menu services.MenuService
	resp responder
}

func NewMenuHandler(menu services.MenuService, log *slog.Logger) *MenuHandler {
	return &MenuHandler{menu: menu, resp: responder{log: log, withSuccess: true}}
}

func categoryName(item *models.MenuItem) interface{} {
	if item.Category == nil {
		return nil
	}
	return item.Category.Name
}

func priceOrNil(item *models.MenuItem) interface{} {
	if item.Price == nil || *item.Price == 0 {
		return nil
	}
	return *item.Price
}

func variationsOrEmpty(item *models.MenuItem) map[string]int64 {
	return item.Variations()
}

func scheduleOrNil(item *models.MenuItem) interface{} {
	if len(item.AvailabilitySchedule) == 0 {
		return nil
	}
	return item.AvailabilitySchedule
}

func markAvailability(data gin.H, item *models.MenuItem) gin.H {
	if !item.IsAvailable {
		data["availability_message"] = unavailableMessage
	}
	return data
}

// catalogItem is the shape shared by the customer-facing menu views.
func catalogItem(item *models.MenuItem) gin.H {
	return markAvailability(gin.H{
		"id":                    item.ID,
		"name":                  item.Name,
		"description":           item.Description,
		"category_id":           item.CategoryID,
		"category":              categoryName(item),
		"image":                 item.Image,
		"is_vegetarian":         item.IsVegetarian,
		"is_available":          item.IsAvailable,
		"pricing_type":          item.PricingType,
		"pricing":               services.BuildPricing(item, services.PricingDetailed),
		"availability_schedule": scheduleOrNil(item),
	}, item)
}

// listingItem is the flat shape of the menu management listings.
func listingItem(item *models.MenuItem) gin.H {
	return gin.H{
		"id":               item.ID,
		"name":             item.Name,
		"description":      item.Description,
		"price":            priceOrNil(item),
		"pricing_type":     item.PricingType,
		"price_variations": variationsOrEmpty(item),
		"is_available":     item.IsAvailable,
		"is_vegetarian":    item.IsVegetarian,
		"category_id":      item.CategoryID,
		"category_name":    categoryName(item),
		"image":            item.Image,
		"created_at":       isoTime(item.CreatedAt),
	}
}

func (h *MenuHandler) CompleteMenu(c *gin.Context) {
	sections, err := h.menu.CompleteMenu(c.Request.Context())
	if err != nil {
		h.resp.fail(c, err, "Failed to fetch menu data")
		return
	}

	categories := make([]gin.H, 0, len(sections))
	total := 0
	for _, section := range sections {
		items := make([]gin.H, 0, len(section.Items))
		for i := range section.Items {
			item := &section.Items[i]
			items = append(items, markAvailability(gin.H{
				"id":                    item.ID,
				"name":                  item.Name,
				"description":           item.Description,
				"category_id":           item.CategoryID,
				"category_name":         section.Category.Name,
				"image":                 item.Image,
				"is_vegetarian":         item.IsVegetarian,
				"is_available":          item.IsAvailable,
				"created_at":            isoTime(item.CreatedAt),
				"availability_schedule": scheduleOrNil(item),
				"pricing_type":          item.PricingType,
				"pricing":               services.BuildPricing(item, services.PricingCompact),
			}, item))
		}
		total += len(items)
		categories = append(categories, gin.H{
			"id":          section.Category.ID,
			"name":        section.Category.Name,
			"description": section.Category.Description,
			"items":       items,
			"items_count": len(items),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"categories":       categories,
		"total_categories": len(categories),
		"total_items":      total,
	})
}

func (h *MenuHandler) CategoryMenu(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("category"))

	var (
		items []models.MenuItem
		err   error
	)
	if raw == "" {
		items, err = h.menu.List(repository.MenuFilter{})
	} else if id, ok := parseQueryID(raw); ok {
		items, err = h.menu.ByCategory(id)
	}
	if err != nil {
		h.resp.fail(c, err, "Failed to fetch menu items")
		return
	}

	data := make([]gin.H, 0, len(items))
	for i := range items {
		data = append(data, catalogItem(&items[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"menu_items":  data,
		"total_items": len(data),
		"filters":     gin.H{"category_id": nullable(raw)},
	})
}

func (h *MenuHandler) MenuItem(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("item_id"))
	if raw == "" {
		h.resp.abort(c, http.StatusBadRequest, "item_id parameter is required")
		return
	}
	id, ok := parseQueryID(raw)
	if !ok {
		h.resp.abort(c, http.StatusNotFound, "Menu item not found")
		return
	}

	item, err := h.menu.Get(id)
	if err != nil {
		h.resp.fail(c, err, "Failed to fetch menu item")
		return
	}

	data := catalogItem(item)
	data["created_at"] = isoTime(item.CreatedAt)
	c.JSON(http.StatusOK, gin.H{"success": true, "menu_item": data})
}

func truthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

func (h *MenuHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"results":       []gin.H{},
			"total_results": 0,
			"query":         "",
			"message":       "Please enter a search term",
		})
		return
	}

	availableOnly := truthy(c.DefaultQuery("available", "true"))
	items, err := h.menu.Search(query, availableOnly)
	if err != nil {
		h.resp.fail(c, err, "Failed to search menu items")
		return
	}

	results := make([]gin.H, 0, len(items))
	for i := range items {
		result := catalogItem(&items[i])
		delete(result, "availability_schedule")
		result["match_type"] = "name"
		results = append(results, result)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"results":       results,
		"total_results": len(results),
		"query":         query,
		"filters":       gin.H{"available_only": availableOnly},
	})
}

// listingFilter reads the management listing query. A flag is on whenever
// its parameter is present and non-empty.
func listingFilter(c *gin.Context) repository.MenuFilter {
	filter := repository.MenuFilter{
		AvailableOnly:  c.Query("available_only") != "",
		VegetarianOnly: c.Query("vegetarian_only") != "",
	}
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		id, ok := parseQueryID(raw)
		if !ok {
			// An unparseable category matches nothing.
			id = math.MaxInt32
		}
		filter.CategoryID = id
	}
	return filter
}

func (h *MenuHandler) GetAll(c *gin.Context) {
	items, err := h.menu.List(listingFilter(c))
	if err != nil {
		h.resp.fail(c, err, "Failed to fetch menu items")
		return
	}

	data := make([]gin.H, 0, len(items))
	for i := range items {
		data = append(data, markAvailability(listingItem(&items[i]), &items[i]))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "total_items": len(data), "menu_items": data})
}

func (h *MenuHandler) AdminGetAll(c *gin.Context) {
	filter := listingFilter(c)
	filter.IncludeDeleted = true

	items, err := h.menu.List(filter)
	if err != nil {
		h.resp.fail(c, err, "Failed to fetch menu items")
		return
	}

	data := make([]gin.H, 0, len(items))
	for i := range items {
		item := listingItem(&items[i])
		item["status"] = items[i].Status
		data = append(data, item)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "total_items": len(data), "menu_items": data})
}

type createMenuItemRequest struct {
	Name                 string                 `json:"name"`
	Description          string                 `json:"description"`
	CategoryID           looseID                `json:"category_id"`
	PricingType          string                 `json:"pricing_type"`
	Image                string                 `json:"image"`
	Price                *float64               `json:"price"`
	PriceVariations      *map[string]float64    `json:"price_variations"`
	IsAvailable          *bool                  `json:"is_available"`
	IsVegetarian         bool                   `json:"is_vegetarian"`
	AvailabilitySchedule map[string]interface{} `json:"availability_schedule"`
}

func (h *MenuHandler) Create(c *gin.Context) {
	var req createMenuItemRequest
	if !h.resp.bind(c, &req, "Invalid JSON data") {
		return
	}

	input := services.MenuItemInput{
		Name:                 req.Name,
		Description:          req.Description,
		PricingType:          req.PricingType,
		Image:                req.Image,
		Price:                req.Price,
		HasPriceVariations:   req.PriceVariations != nil,
		IsAvailable:          req.IsAvailable,
		IsVegetarian:         req.IsVegetarian,
		AvailabilitySchedule: req.AvailabilitySchedule,
	}
	if req.PriceVariations != nil {
		input.PriceVariations = *req.PriceVariations
	}
	if req.CategoryID != "" {
		id, ok := req.CategoryID.Uint()
		if !ok {
			h.resp.abort(c, http.StatusBadRequest, "Category not found")
			return
		}
		input.CategoryID = id
	}

	item, err := h.menu.Create(c.Request.Context(), input)
	if err != nil {
		h.resp.fail(c, err, "Failed to create menu item")
		return
	}

	data := gin.H{
		"id":               item.ID,
		"name":             item.Name,
		"description":      item.Description,
		"pricing_type":     item.PricingType,
		"price_variations": variationsOrEmpty(item),
		"is_available":     item.IsAvailable,
		"is_vegetarian":    item.IsVegetarian,
		"category_id":      item.CategoryID,
		"category_name":    categoryName(item),
		"image":            item.Image,
		"created_at":       isoTime(item.CreatedAt),
	}
	if item.PricingType == models.PricingSingle && item.Price != nil {
		data["price"] = *item.Price
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Menu item created successfully",
		"menu_item": data,
	})
}

// jsonTruthy follows the loose truthiness the admin frontend relies on:
// false, 0, "", null, empty arrays and objects are false.
func jsonTruthy(raw json.RawMessage) bool {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case []interface{}:
		return len(t) > 0
	case map[string]interface{}:
		return len(t) > 0
	}
	return true
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

// itemID reads "item_id" from a decoded body, answering 400 when it is not a
// positive integer.
func (h *MenuHandler) itemID(c *gin.Context, body map[string]json.RawMessage) (uint, bool) {
	var raw looseID
	if v, ok := body["item_id"]; ok {
		if err := json.Unmarshal(v, &raw); err != nil {
			raw = ""
		}
	}
	id, ok := raw.Uint()
	if !ok {
		h.resp.abort(c, http.StatusBadRequest, "Invalid item ID. Must be a positive number.")
		return 0, false
	}
	return id, true
}

func decodePatch(body map[string]json.RawMessage) (services.MenuItemPatch, string) {
	var patch services.MenuItemPatch

	str := func(key string) (*string, bool) {
		raw, ok := body[key]
		if !ok {
			return nil, true
		}
		var s string
		if isNull(raw) {
			return &s, true
		}
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, false
		}
		return &s, true
	}

	var ok bool
	if patch.Name, ok = str("name"); !ok {
		return patch, "name must be a string"
	}
	if patch.Description, ok = str("description"); !ok {
		return patch, "description must be a string"
	}
	if patch.Image, ok = str("image"); !ok {
		return patch, "image must be a string"
	}
	if patch.PricingType, ok = str("pricing_type"); !ok {
		return patch, `pricing_type must be either "single" or "multiple"`
	}

	if raw, present := body["price"]; present {
		patch.SetPrice = true
		if !isNull(raw) {
			var n json.Number
			if err := json.Unmarshal(raw, &n); err != nil {
				var s string
				if err := json.Unmarshal(raw, &s); err != nil {
					return patch, "Invalid price format"
				}
				n = json.Number(strings.TrimSpace(s))
			}
			f, err := n.Float64()
			if err != nil {
				return patch, "Invalid price format"
			}
			patch.Price = &f
		}
	}

	for key, dest := range map[string]**bool{"is_available": &patch.IsAvailable, "is_vegetarian": &patch.IsVegetarian} {
		if raw, present := body[key]; present {
			v := jsonTruthy(raw)
			*dest = &v
		}
	}

	if raw, present := body["price_variations"]; present {
		patch.SetPriceVariations = true
		if !isNull(raw) {
			if err := json.Unmarshal(raw, &patch.PriceVariations); err != nil {
				return patch, "Price variations must be a non-empty object"
			}
		}
	}

	if raw, present := body["availability_schedule"]; present {
		patch.SetSchedule = true
		if !isNull(raw) {
			if err := json.Unmarshal(raw, &patch.AvailabilitySchedule); err != nil {
				return patch, "availability_schedule must be an object"
			}
		}
	}

	if raw, present := body["category_id"]; present {
		var id looseID
		_ = json.Unmarshal(raw, &id)
		n, ok := id.Uint()
		if !ok {
			return patch, "Invalid category ID provided"
		}
		patch.CategoryID = &n
	}

	return patch, ""
}

func (h *MenuHandler) Update(c *gin.Context) {
	var body map[string]json.RawMessage
	if !h.resp.bind(c, &body, "Invalid JSON data in request body") {
		return
	}

	id, ok := h.itemID(c, body)
	if !ok {
		return
	}
	if len(body) <= 1 {
		h.resp.abort(c, http.StatusBadRequest, "No fields provided for update")
		return
	}

	patch, problem := decodePatch(body)
	if problem != "" {
		h.resp.abort(c, http.StatusBadRequest, problem)
		return
	}

	item, updated, err := h.menu.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.resp.fail(c, err, "Database error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Menu item updated successfully",
		"item_id":        id,
		"updated_fields": updated,
		"menu_item": gin.H{
			"id":            item.ID,
			"name":          item.Name,
			"description":   item.Description,
			"price":         priceOrNil(item),
			"category":      categoryName(item),
			"is_available":  item.IsAvailable,
			"is_vegetarian": item.IsVegetarian,
			"image":         item.Image,
		},
	})
}

func (h *MenuHandler) Delete(c *gin.Context) {
	var body map[string]json.RawMessage
	if !h.resp.bind(c, &body, "Invalid JSON data in request body") {
		return
	}

	id, ok := h.itemID(c, body)
	if !ok {
		return
	}

	if err := h.menu.Delete(c.Request.Context(), id); err != nil {
		h.resp.fail(c, err, "Failed to delete menu item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Menu item with ID %d deleted successfully", id),
	})
}
