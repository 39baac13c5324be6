package rest

import (
	"net/http"

	"mechoci-be/internal/user"
	"mechoci-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users user.Service
}

func NewUserHandler(users user.Service) *UserHandler {
	return &UserHandler{users: users}
}

type addressRequest struct {
	Address   string  `json:"address" binding:"required"`
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
}

type updateProfileRequest struct {
	Name      *string          `json:"name" binding:"omitempty,min=2"`
	Phone     *string          `json:"phoneNumber" binding:"omitempty,len=10,numeric"`
	Addresses []addressRequest `json:"deliveryAddresses"`
}

func (h *UserHandler) Profile(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "please authenticate"})
		return
	}

	u, err := h.users.Profile(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "please authenticate"})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	input := user.UpdateProfileInput{
		Name:  req.Name,
		Phone: req.Phone,
	}
	if req.Addresses != nil {
		input.Addresses = make([]user.DeliveryAddress, 0, len(req.Addresses))
		for _, a := range req.Addresses {
			input.Addresses = append(input.Addresses, user.DeliveryAddress{
				Address:   a.Address,
				Latitude:  a.Latitude,
				Longitude: a.Longitude,
			})
		}
	}

	u, err := h.users.UpdateProfile(c.Request.Context(), userID, input)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, u)
}
