package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Pesokrava/ecommerce_catalog/internal/delivery/http/middleware"
	"github.com/Pesokrava/ecommerce_catalog/internal/domain"
	"github.com/Pesokrava/ecommerce_catalog/internal/pkg/logger"
	"github.com/Pesokrava/ecommerce_catalog/internal/usecase/review"
)

func newReviewHandler() (*ReviewHandler, *MockReviewRepository) {
	reviews := new(MockReviewRepository)
	log := logger.New("test")
	service := review.NewService(reviews, noopPublisher{}, log)
	return NewReviewHandler(service, log), reviews
}

func reviewRouter(h *ReviewHandler) chi.Router {
	r := chi.NewRouter()
	r.Route("/products", func(r chi.Router) {
		r.Get("/reviews", h.List)
		r.Post("/reviews", h.Create)
		r.Delete("/reviews/{id}", h.Delete)
		r.Get("/{id}/reviews", h.ListByProduct)
	})
	return r
}

func asUser(req *http.Request, user *domain.User) *http.Request {
	return req.WithContext(middleware.WithUser(req.Context(), user))
}

func TestReviewHandler_Create_Success(t *testing.T) {
	h, reviews := newReviewHandler()

	reviews.On("Create", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(nil)

	payload := map[string]interface{}{
		"product_id": uuid.New().String(),
		"comment":    "Solid build quality",
		"grade":      5,
	}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/products/reviews", bytes.NewReader(body))
	req = asUser(req, &domain.User{ID: uuid.New(), Username: "buyer1", Role: domain.RoleBuyer})
	rec := httptest.NewRecorder()
	reviewRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["success"])
	reviews.AssertExpectations(t)
}

func TestReviewHandler_Create_Unauthenticated(t *testing.T) {
	h, reviews := newReviewHandler()

	payload := map[string]interface{}{
		"product_id": uuid.New().String(),
		"grade":      4,
	}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/products/reviews", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	reviewRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	reviews.AssertNotCalled(t, "Create")
}

func TestReviewHandler_Create_NonBuyer(t *testing.T) {
	h, reviews := newReviewHandler()

	payload := map[string]interface{}{
		"product_id": uuid.New().String(),
		"grade":      4,
	}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/products/reviews", bytes.NewReader(body))
	req = asUser(req, &domain.User{ID: uuid.New(), Username: "seller1", Role: domain.RoleSeller})
	rec := httptest.NewRecorder()
	reviewRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Only the buyer can create a review", decodeBody(t, rec)["error"])
	reviews.AssertNotCalled(t, "Create")
}

func TestReviewHandler_Create_InactiveProduct(t *testing.T) {
	h, reviews := newReviewHandler()

	reviews.On("Create", mock.Anything, mock.Anything).Return(domain.ErrInvalidReference)

	payload := map[string]interface{}{
		"product_id": uuid.New().String(),
		"grade":      3,
	}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/products/reviews", bytes.NewReader(body))
	req = asUser(req, &domain.User{ID: uuid.New(), Role: domain.RoleBuyer})
	rec := httptest.NewRecorder()
	reviewRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Product not found or inactive", decodeBody(t, rec)["error"])
}

func TestReviewHandler_Create_GradeOutOfRange(t *testing.T) {
	h, reviews := newReviewHandler()

	// The store CHECK rejects the grade; the handler maps it to 400
	reviews.On("Create", mock.Anything, mock.Anything).Return(domain.ErrConstraintViolation)

	payload := map[string]interface{}{
		"product_id": uuid.New().String(),
		"grade":      6,
	}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/products/reviews", bytes.NewReader(body))
	req = asUser(req, &domain.User{ID: uuid.New(), Role: domain.RoleBuyer})
	rec := httptest.NewRecorder()
	reviewRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Grade must be between 1 and 5", decodeBody(t, rec)["error"])
}

func TestReviewHandler_Delete_Success(t *testing.T) {
	h, reviews := newReviewHandler()

	reviewID := uuid.New()
	deactivated := &domain.Review{
		ID: reviewID, UserID: uuid.New(), ProductID: uuid.New(), Grade: 2, IsActive: false,
	}
	reviews.On("Deactivate", mock.Anything, reviewID).Return(deactivated, nil)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/products/reviews/%s", reviewID), nil)
	req = asUser(req, &domain.User{ID: uuid.New(), Username: "admin1", Role: domain.RoleAdmin})
	rec := httptest.NewRecorder()
	reviewRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, false, data["is_active"])
}

func TestReviewHandler_Delete_NonAdmin(t *testing.T) {
	h, reviews := newReviewHandler()

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/products/reviews/%s", uuid.New()), nil)
	req = asUser(req, &domain.User{ID: uuid.New(), Role: domain.RoleBuyer})
	rec := httptest.NewRecorder()
	reviewRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Admin access required", decodeBody(t, rec)["error"])
	reviews.AssertNotCalled(t, "Deactivate")
}

func TestReviewHandler_Delete_Unauthenticated(t *testing.T) {
	h, _ := newReviewHandler()

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/products/reviews/%s", uuid.New()), nil)
	rec := httptest.NewRecorder()
	reviewRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReviewHandler_Delete_NotFound(t *testing.T) {
	h, reviews := newReviewHandler()

	reviewID := uuid.New()
	reviews.On("Deactivate", mock.Anything, reviewID).Return(nil, domain.ErrNotFound)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/products/reviews/%s", reviewID), nil)
	req = asUser(req, &domain.User{ID: uuid.New(), Role: domain.RoleAdmin})
	rec := httptest.NewRecorder()
	reviewRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReviewHandler_ListByProduct_ProductNotVisible(t *testing.T) {
	h, reviews := newReviewHandler()

	productID := uuid.New()
	reviews.On("ListByProduct", mock.Anything, productID).Return(nil, domain.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/products/%s/reviews", productID), nil)
	rec := httptest.NewRecorder()
	reviewRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found or inactive", decodeBody(t, rec)["error"])
}

func TestReviewHandler_List_Success(t *testing.T) {
	h, reviews := newReviewHandler()

	comment := "Works as advertised"
	active := []*domain.Review{
		{ID: uuid.New(), UserID: uuid.New(), ProductID: uuid.New(), Comment: &comment, Grade: 4, IsActive: true},
	}
	reviews.On("List", mock.Anything).Return(active, nil)

	req := httptest.NewRequest(http.MethodGet, "/products/reviews", nil)
	rec := httptest.NewRecorder()
	reviewRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].([]interface{})
	assert.Len(t, data, 1)
}
