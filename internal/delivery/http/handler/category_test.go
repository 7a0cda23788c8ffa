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

	"github.com/Pesokrava/ecommerce_catalog/internal/domain"
	"github.com/Pesokrava/ecommerce_catalog/internal/pkg/logger"
	"github.com/Pesokrava/ecommerce_catalog/internal/usecase/catalog"
)

func newCategoryHandler() (*CategoryHandler, *MockCategoryRepository) {
	products := new(MockProductRepository)
	categories := new(MockCategoryRepository)
	log := logger.New("test")
	service := catalog.NewService(products, categories, log)
	return NewCategoryHandler(service, log), categories
}

func categoryRouter(h *CategoryHandler) chi.Router {
	r := chi.NewRouter()
	r.Route("/categories", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Delete("/{id}", h.Delete)
	})
	return r
}

func TestCategoryHandler_Create_Success(t *testing.T) {
	h, categories := newCategoryHandler()

	categories.On("Create", mock.Anything, mock.AnythingOfType("*domain.Category")).Return(nil)

	body, _ := json.Marshal(map[string]string{"name": "Electronics"})
	req := httptest.NewRequest(http.MethodPost, "/categories", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	categoryRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	categories.AssertExpectations(t)
}

func TestCategoryHandler_Create_EmptyName(t *testing.T) {
	h, categories := newCategoryHandler()

	body, _ := json.Marshal(map[string]string{"name": ""})
	req := httptest.NewRequest(http.MethodPost, "/categories", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	categoryRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	categories.AssertNotCalled(t, "Create")
}

func TestCategoryHandler_List_Success(t *testing.T) {
	h, categories := newCategoryHandler()

	active := []*domain.Category{
		{ID: uuid.New(), Name: "Electronics", IsActive: true},
		{ID: uuid.New(), Name: "Books", IsActive: true},
	}
	categories.On("List", mock.Anything).Return(active, nil)

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	rec := httptest.NewRecorder()
	categoryRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].([]interface{})
	assert.Len(t, data, 2)
}

func TestCategoryHandler_Delete_Success(t *testing.T) {
	h, categories := newCategoryHandler()

	categoryID := uuid.New()
	deactivated := &domain.Category{ID: categoryID, Name: "Electronics", IsActive: false}
	categories.On("Deactivate", mock.Anything, categoryID).Return(deactivated, nil)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/categories/%s", categoryID), nil)
	rec := httptest.NewRecorder()
	categoryRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, false, data["is_active"])
}

func TestCategoryHandler_Delete_NotFound(t *testing.T) {
	h, categories := newCategoryHandler()

	categoryID := uuid.New()
	categories.On("Deactivate", mock.Anything, categoryID).Return(nil, domain.ErrNotFound)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/categories/%s", categoryID), nil)
	rec := httptest.NewRecorder()
	categoryRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
