package rest

import (
	"net/http"

	"mechoci-be/internal/product"
	"mechoci-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	products product.Service
}

func NewProductHandler(products product.Service) *ProductHandler {
	return &ProductHandler{products: products}
}

type createProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"imageUrl" binding:"required"`
	Available   *bool  `json:"available"`
	Category    string `json:"category" binding:"required"`
}

type updateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	ImageURL    *string `json:"imageUrl"`
	Available   *bool   `json:"available"`
	Category    *string `json:"category"`
}

// List returns available products. Admins may ask for the full catalog
// with ?includeUnavailable=true; the flag is ignored for everyone else.
func (h *ProductHandler) List(c *gin.Context) {
	includeUnavailable := c.Query("includeUnavailable") == "true" &&
		utils.IsAdminFromContext(c.Request.Context())

	products, err := h.products.List(c.Request.Context(), includeUnavailable)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if products == nil {
		products = []product.Product{}
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	p, err := h.products.Create(c.Request.Context(), product.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Available:   available,
		Category:    req.Category,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.products.Update(c.Request.Context(), c.Param("id"), product.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Available:   req.Available,
		Category:    req.Category,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}
