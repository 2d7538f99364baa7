package handlers

import (
	"net/http"

	"contacts_backend/internal/services"
	"contacts_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// avatars bigger than this are rejected before touching storage
const maxAvatarSizeBytes = 5 << 20

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) Me(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.userService.Me(user))
}

func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Missing file upload"))
		return
	}
	if file.Size > maxAvatarSizeBytes {
		h.HandleServiceError(c, apperrors.NewBadRequestError("File too large"))
		return
	}

	resp, err := h.userService.UpdateAvatar(c.Request.Context(), h.GetDB(c), user, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
