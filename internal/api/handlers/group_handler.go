package handlers

import (
	"errors"

	"pashameshi-backend/domain"
	"pashameshi-backend/internal/api/presenters"
	"pashameshi-backend/pkg/group"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	GroupHandler interface {
		CreateGroup(c *fiber.Ctx) error
		JoinGroup(c *fiber.Ctx) error
		LeaveGroup(c *fiber.Ctx) error
		SendInvite(c *fiber.Ctx) error
	}

	groupHandler struct {
		groupService group.GroupService
		validator    *validator.Validate
	}
)

func NewGroupHandler(groupService group.GroupService, validator *validator.Validate) GroupHandler {
	return &groupHandler{
		groupService: groupService,
		validator:    validator,
	}
}

func (h *groupHandler) CreateGroup(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateGroupRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateGroup, err)
	}

	res, err := h.groupService.CreateGroup(c.Context(), *req, userID)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyInGroup) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedCreateGroup, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateGroup, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateGroup)
}

func (h *groupHandler) JoinGroup(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.JoinGroupRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedJoinGroup, err)
	}

	if err := h.groupService.JoinGroup(c.Context(), *req, userID); err != nil {
		if errors.Is(err, domain.ErrGroupNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedJoinGroup, err)
		}
		if errors.Is(err, domain.ErrAlreadyInGroup) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedJoinGroup, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedJoinGroup, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessJoinGroup)
}

func (h *groupHandler) LeaveGroup(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.groupService.LeaveGroup(c.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrNotInGroup) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedLeaveGroup, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedLeaveGroup, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessLeaveGroup)
}

func (h *groupHandler) SendInvite(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.SendInviteRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendInvite, err)
	}

	if err := h.groupService.SendInvite(c.Context(), *req, userID); err != nil {
		if errors.Is(err, domain.ErrNotInGroup) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedSendInvite, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendInvite, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSendInvite)
}
