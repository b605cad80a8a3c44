package group

import (
	"context"
	"errors"
	"fmt"

	"pashameshi-backend/domain"
	"pashameshi-backend/entities"
	"pashameshi-backend/internal/utils/mailing"
	"pashameshi-backend/pkg/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// GroupService manages the shared household partition. The group ID is
	// the invite code: creating a group puts the creator into it, joining by
	// code attaches another profile to it, leaving reverts the profile to
	// personal mode. Stock rows created while in the group keep their group
	// scope; membership changes never rewrite them.
	GroupService interface {
		CreateGroup(ctx context.Context, req domain.CreateGroupRequest, userID string) (domain.CreateGroupResponse, error)
		JoinGroup(ctx context.Context, req domain.JoinGroupRequest, userID string) error
		LeaveGroup(ctx context.Context, userID string) error
		SendInvite(ctx context.Context, req domain.SendInviteRequest, userID string) error
	}

	groupService struct {
		groupRepository GroupRepository
		userRepository  user.UserRepository
	}
)

func NewGroupService(groupRepository GroupRepository, userRepository user.UserRepository) GroupService {
	return &groupService{
		groupRepository: groupRepository,
		userRepository:  userRepository,
	}
}

func (s *groupService) CreateGroup(ctx context.Context, req domain.CreateGroupRequest, userID string) (domain.CreateGroupResponse, error) {
	creator, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return domain.CreateGroupResponse{}, err
	}

	if creator.GroupID != nil {
		return domain.CreateGroupResponse{}, domain.ErrAlreadyInGroup
	}

	group := &entities.Group{
		ID:        uuid.New(),
		Name:      req.Name,
		CreatedBy: creator.ID,
	}

	if err := s.groupRepository.CreateGroup(ctx, group); err != nil {
		return domain.CreateGroupResponse{}, err
	}

	if err := s.userRepository.UpdateUserGroup(ctx, userID, &group.ID); err != nil {
		return domain.CreateGroupResponse{}, err
	}

	return domain.CreateGroupResponse{
		GroupID:    group.ID.String(),
		Name:       group.Name,
		InviteCode: group.ID.String(),
	}, nil
}

func (s *groupService) JoinGroup(ctx context.Context, req domain.JoinGroupRequest, userID string) error {
	joiner, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if joiner.GroupID != nil {
		return domain.ErrAlreadyInGroup
	}

	group, err := s.groupRepository.GetGroupByID(ctx, req.InviteCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrGroupNotFound
		}
		return err
	}

	return s.userRepository.UpdateUserGroup(ctx, userID, &group.ID)
}

func (s *groupService) LeaveGroup(ctx context.Context, userID string) error {
	leaver, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if leaver.GroupID == nil {
		return domain.ErrNotInGroup
	}

	return s.userRepository.UpdateUserGroup(ctx, userID, nil)
}

func (s *groupService) SendInvite(ctx context.Context, req domain.SendInviteRequest, userID string) error {
	sender, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if sender.GroupID == nil {
		return domain.ErrNotInGroup
	}

	group, err := s.groupRepository.GetGroupByID(ctx, sender.GroupID.String())
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("%sさんから「%s」への招待が届きました", sender.Name, group.Name)
	body := fmt.Sprintf(
		"<p>%sさんがあなたを食材共有グループ「%s」に招待しています。</p>"+
			"<p>アプリの設定画面で以下の招待コードを入力してください：</p>"+
			"<p><b>%s</b></p>",
		sender.Name, group.Name, group.ID.String(),
	)

	return mailing.SendMail(req.Email, subject, body)
}
