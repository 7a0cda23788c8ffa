package handler

import (
	"errors"
	"net/http"

	"github.com/Pesokrava/ecommerce_catalog/internal/delivery/http/request"
	"github.com/Pesokrava/ecommerce_catalog/internal/delivery/http/response"
	"github.com/Pesokrava/ecommerce_catalog/internal/domain"
	"github.com/Pesokrava/ecommerce_catalog/internal/pkg/logger"
	"github.com/Pesokrava/ecommerce_catalog/internal/usecase/catalog"
)

// CategoryHandler handles HTTP requests for categories
type CategoryHandler struct {
	service *catalog.Service
	logger  *logger.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(service *catalog.Service, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  log,
	}
}

// CreateCategoryRequest represents the request body for creating a category
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

// Create handles POST /api/v1/categories
// @Summary Create a new category
// @Tags Categories
// @Accept json
// @Produce json
// @Param category body CreateCategoryRequest true "Category details"
// @Success 201 {object} map[string]interface{} "Category created"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /categories [post]
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category := &domain.Category{
		Name: req.Name,
	}

	if err := h.service.CreateCategory(r.Context(), category); err != nil {
		h.handleError(w, err)
		return
	}

	response.Created(w, category)
}

// List handles GET /api/v1/categories
// @Summary List active categories
// @Tags Categories
// @Produce json
// @Success 200 {object} map[string]interface{} "List of categories"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /categories [get]
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, categories)
}

// Delete handles DELETE /api/v1/categories/:id
// @Summary Deactivate a category
// @Description Soft delete a category. Products under it stop being visible.
// @Tags Categories
// @Produce json
// @Param id path string true "Category ID (UUID)"
// @Success 200 {object} map[string]interface{} "Deactivated category"
// @Failure 400 {object} map[string]string "Invalid category ID"
// @Failure 404 {object} map[string]string "Category not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	category, err := h.service.DeactivateCategory(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, category)
}

func (h *CategoryHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, "Category not found or inactive")
	case errors.Is(err, domain.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, "Invalid input")
	default:
		h.logger.Error("Internal error in category handler", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
