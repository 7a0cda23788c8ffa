package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/Pesokrava/ecommerce_catalog/internal/delivery/http/middleware"
	"github.com/Pesokrava/ecommerce_catalog/internal/delivery/http/request"
	"github.com/Pesokrava/ecommerce_catalog/internal/delivery/http/response"
	"github.com/Pesokrava/ecommerce_catalog/internal/domain"
	"github.com/Pesokrava/ecommerce_catalog/internal/pkg/logger"
	"github.com/Pesokrava/ecommerce_catalog/internal/usecase/review"
)

// ReviewHandler handles HTTP requests for reviews
type ReviewHandler struct {
	service *review.Service
	logger  *logger.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(service *review.Service, log *logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  log,
	}
}

// CreateReviewRequest represents the request body for creating a review.
// The grade bound is enforced by the store, so out-of-range grades map to
// ConstraintViolation rather than a validation error.
type CreateReviewRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Comment   *string `json:"comment,omitempty"`
	Grade     int     `json:"grade"`
}

// List handles GET /api/v1/products/reviews
// @Summary List all active reviews
// @Tags Reviews
// @Produce json
// @Success 200 {object} map[string]interface{} "List of reviews"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /products/reviews [get]
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.List(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, reviews)
}

// ListByProduct handles GET /api/v1/products/:id/reviews
// @Summary List reviews for a product
// @Tags Reviews
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Success 200 {object} map[string]interface{} "List of reviews"
// @Failure 400 {object} map[string]string "Invalid product ID"
// @Failure 404 {object} map[string]string "Product not found or inactive"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /products/{id}/reviews [get]
func (h *ReviewHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	reviews, err := h.service.ListByProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "Product not found or inactive")
			return
		}
		h.handleError(w, err)
		return
	}

	response.Success(w, reviews)
}

// Create handles POST /api/v1/products/reviews
// @Summary Create a review
// @Description Create a review for an active product. Buyers only.
// The product's rating is recomputed atomically with the insert.
// @Tags Reviews
// @Accept json
// @Produce json
// @Param review body CreateReviewRequest true "Review details"
// @Success 201 {object} map[string]interface{} "Review created"
// @Failure 400 {object} map[string]string "Invalid body, inactive product, or non-buyer role"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /products/reviews [post]
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateReviewRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	rev := &domain.Review{
		ProductID: productID,
		Comment:   req.Comment,
		Grade:     req.Grade,
	}

	if err := h.service.Create(r.Context(), user, rev); err != nil {
		// The buyer gate is a business rule, not an authz failure: 400
		if errors.Is(err, domain.ErrForbidden) {
			response.Error(w, http.StatusBadRequest, "Only the buyer can create a review")
			return
		}
		h.handleError(w, err)
		return
	}

	response.Created(w, rev)
}

// Delete handles DELETE /api/v1/products/reviews/:id
// @Summary Delete a review
// @Description Soft delete a review and recompute the product's rating. Admins only.
// @Tags Reviews
// @Produce json
// @Param id path string true "Review ID (UUID)"
// @Success 200 {object} map[string]interface{} "Deactivated review"
// @Failure 400 {object} map[string]string "Invalid review ID"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "Review not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /products/reviews/{id} [delete]
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid review ID")
		return
	}

	rev, err := h.service.Delete(r.Context(), user, id)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			response.Error(w, http.StatusForbidden, "Admin access required")
			return
		}
		h.handleError(w, err)
		return
	}

	response.Success(w, rev)
}

// handleError maps service errors to HTTP responses
func (h *ReviewHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, "Review not found or inactive")
	case errors.Is(err, domain.ErrInvalidReference):
		response.Error(w, http.StatusBadRequest, "Product not found or inactive")
	case errors.Is(err, domain.ErrConstraintViolation):
		response.Error(w, http.StatusBadRequest, "Grade must be between 1 and 5")
	case errors.Is(err, domain.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, "Invalid input")
	default:
		h.logger.Error("Internal error in review handler", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
