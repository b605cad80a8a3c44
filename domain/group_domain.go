package domain

import (
	"errors"
)

var (
	MessageSuccessCreateGroup = "group created successfully"
	MessageSuccessJoinGroup   = "joined group successfully"
	MessageSuccessLeaveGroup  = "left group successfully"
	MessageSuccessSendInvite  = "invite sent successfully"

	MessageFailedCreateGroup = "failed to create group"
	MessageFailedJoinGroup   = "failed to join group"
	MessageFailedLeaveGroup  = "failed to leave group"
	MessageFailedSendInvite  = "failed to send invite"

	ErrGroupNotFound  = errors.New("group not found")
	ErrAlreadyInGroup = errors.New("user already belongs to a group")
	ErrNotInGroup     = errors.New("user does not belong to a group")
)

type (
	CreateGroupRequest struct {
		Name string `json:"name" validate:"required"`
	}

	CreateGroupResponse struct {
		GroupID    string `json:"group_id"`
		Name       string `json:"name"`
		InviteCode string `json:"invite_code"`
	}

	JoinGroupRequest struct {
		InviteCode string `json:"invite_code" validate:"required,uuid"`
	}

	SendInviteRequest struct {
		Email string `json:"email" validate:"required,email"`
	}
)
