package handlers

import (
	"errors"
	"net/http"

	"github.com/ergo-app/ergo-server/internal/dto"
	apierrors "github.com/ergo-app/ergo-server/internal/errors"
	"github.com/ergo-app/ergo-server/internal/middleware"
	"github.com/ergo-app/ergo-server/internal/services"
	"github.com/ergo-app/ergo-server/internal/utils"
	"github.com/gin-gonic/gin"
)

// UserHandler exposes the user directory.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// SearchUsers finds users by email or username so they can be invited to a
// project or assigned to a task. The requester is excluded from the results.
func (h *UserHandler) SearchUsers(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	term := c.Query("q")
	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.SearchUsers(term, userID, params)
	if err != nil {
		if errors.Is(err, services.ErrEmptySearchTerm) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to search users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dto.ToUserProfileDTOs(users),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}
