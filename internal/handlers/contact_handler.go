package handlers

import (
	"net/http"

	"contacts_backend/internal/repositories"
	"contacts_backend/internal/services"
	"contacts_backend/internal/services/dto"
	"contacts_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	*BaseHandler
	contactService services.ContactService
}

func NewContactHandler(base *BaseHandler, contactService services.ContactService) *ContactHandler {
	return &ContactHandler{
		BaseHandler:    base,
		contactService: contactService,
	}
}

func (h *ContactHandler) List(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	offset, limit := ParseOffsetLimit(c)

	contacts, err := h.contactService.List(h.GetDB(c), user, offset, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}

func (h *ContactHandler) Get(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	contact, err := h.contactService.Get(h.GetDB(c), user, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) Create(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req dto.ContactCreateRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	contact, err := h.contactService.Create(h.GetDB(c), user, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contact)
}

func (h *ContactHandler) Patch(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var patch dto.ContactPatch
	if !h.BindAndValidateJSON(c, &patch) {
		return
	}

	contact, err := h.contactService.Patch(h.GetDB(c), user, c.Param("id"), &patch)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	contact, err := h.contactService.Delete(h.GetDB(c), user, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// Search matches name, lastname or email against a shared key, narrowed
// by exact per-field filters.
func (h *ContactHandler) Search(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	filter := repositories.ContactFilter{
		Key:      c.Query("key"),
		Name:     c.Query("name"),
		Lastname: c.Query("lastname"),
		Email:    c.Query("email"),
	}
	if filter.Key == "" && filter.Name == "" && filter.Lastname == "" && filter.Email == "" {
		h.HandleServiceError(c, apperrors.NewBadRequestError("At least one search parameter is required"))
		return
	}

	contacts, err := h.contactService.Search(h.GetDB(c), user, filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}

func (h *ContactHandler) UpcomingBirthdays(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	contacts, err := h.contactService.UpcomingBirthdays(h.GetDB(c), user)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}
