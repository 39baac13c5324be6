package rest

import (
	"net/http"

	"mechoci-be/internal/category"
	"mechoci-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categories category.Service
}

func NewCategoryHandler(categories category.Service) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

type createCategoryRequest struct {
	ID          string  `json:"id" binding:"required"`
	Name        string  `json:"name" binding:"required,min=2"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

type categoryStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// List returns active categories. Admins may ask for inactive ones too
// with ?includeInactive=true.
func (h *CategoryHandler) List(c *gin.Context) {
	includeInactive := c.Query("includeInactive") == "true" &&
		utils.IsAdminFromContext(c.Request.Context())

	categories, err := h.categories.List(c.Request.Context(), includeInactive)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if categories == nil {
		categories = []category.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	cat, err := h.categories.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	cat, err := h.categories.Create(c.Request.Context(), category.Category{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    isActive,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, cat)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	cat, err := h.categories.Update(c.Request.Context(), c.Param("id"), category.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) SetStatus(c *gin.Context) {
	var req categoryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	cat, err := h.categories.SetActive(c.Request.Context(), c.Param("id"), *req.IsActive)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, cat)
}
