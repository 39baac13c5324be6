package rest

import (
	"errors"
	"net/http"

	"mechoci-be/internal/category"
	"mechoci-be/internal/logger"
	"mechoci-be/internal/order"
	"mechoci-be/internal/product"
	"mechoci-be/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// abortWithError translates domain errors to HTTP responses. Unknown
// errors become a bare 500 so internals never leak to the client.
func abortWithError(c *gin.Context, err error) {
	var orderValidation *order.ValidationError
	var productValidation *product.ValidationError
	var categoryValidation *category.ValidationError
	var userValidation *user.ValidationError
	var unavailable *order.UnavailableProductError
	var transition *order.TransitionError

	switch {
	case errors.As(err, &orderValidation):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": orderValidation.Message,
			"field": orderValidation.Field,
		})
	case errors.As(err, &productValidation):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": productValidation.Message,
			"field": productValidation.Field,
		})
	case errors.As(err, &categoryValidation):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": categoryValidation.Message,
			"field": categoryValidation.Field,
		})
	case errors.As(err, &userValidation):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": userValidation.Message,
			"field": userValidation.Field,
		})
	case errors.As(err, &unavailable), errors.As(err, &transition):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrInvalidCredentials):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, order.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, category.ErrCategoryNotFound),
		errors.Is(err, user.ErrUserNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrEmailExists),
		errors.Is(err, category.ErrCategoryExists),
		errors.Is(err, order.ErrStatusConflict):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.FromCtx(c.Request.Context()).Error("unhandled error",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
