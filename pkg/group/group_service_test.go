package group

import (
	"context"
	"testing"

	"pashameshi-backend/domain"
	"pashameshi-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeGroupRepository struct {
	groups map[uuid.UUID]*entities.Group
}

func newFakeGroupRepository() *fakeGroupRepository {
	return &fakeGroupRepository{groups: make(map[uuid.UUID]*entities.Group)}
}

func (f *fakeGroupRepository) CreateGroup(_ context.Context, group *entities.Group) error {
	f.groups[group.ID] = group
	return nil
}

func (f *fakeGroupRepository) GetGroupByID(_ context.Context, id string) (*entities.Group, error) {
	groupID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	group, ok := f.groups[groupID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return group, nil
}

type fakeUserRepository struct {
	users map[uuid.UUID]*entities.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[uuid.UUID]*entities.User)}
}

func (f *fakeUserRepository) CreateUser(_ context.Context, user *entities.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	user, ok := f.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) UpdateUserGroup(_ context.Context, userID string, groupID *uuid.UUID) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return err
	}
	user, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.GroupID = groupID
	return nil
}

func seedUser(repo *fakeUserRepository, name string) *entities.User {
	user := &entities.User{ID: uuid.New(), Name: name, Email: name + "@example.com"}
	repo.users[user.ID] = user
	return user
}

func TestCreateGroupAssignsCreator(t *testing.T) {
	groupRepo := newFakeGroupRepository()
	userRepo := newFakeUserRepository()
	service := NewGroupService(groupRepo, userRepo)

	creator := seedUser(userRepo, "taro")

	res, err := service.CreateGroup(context.Background(), domain.CreateGroupRequest{Name: "我が家"}, creator.ID.String())
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	if res.InviteCode != res.GroupID {
		t.Errorf("invite code %s should equal the group id %s", res.InviteCode, res.GroupID)
	}
	if creator.GroupID == nil || creator.GroupID.String() != res.GroupID {
		t.Errorf("creator must be placed into the new group")
	}
}

func TestCreateGroupRejectsSecondGroup(t *testing.T) {
	groupRepo := newFakeGroupRepository()
	userRepo := newFakeUserRepository()
	service := NewGroupService(groupRepo, userRepo)
	ctx := context.Background()

	creator := seedUser(userRepo, "taro")
	if _, err := service.CreateGroup(ctx, domain.CreateGroupRequest{Name: "我が家"}, creator.ID.String()); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	if _, err := service.CreateGroup(ctx, domain.CreateGroupRequest{Name: "別宅"}, creator.ID.String()); err != domain.ErrAlreadyInGroup {
		t.Errorf("err = %v, want ErrAlreadyInGroup", err)
	}
}

func TestJoinGroupByInviteCode(t *testing.T) {
	groupRepo := newFakeGroupRepository()
	userRepo := newFakeUserRepository()
	service := NewGroupService(groupRepo, userRepo)
	ctx := context.Background()

	creator := seedUser(userRepo, "taro")
	joiner := seedUser(userRepo, "hanako")

	res, err := service.CreateGroup(ctx, domain.CreateGroupRequest{Name: "我が家"}, creator.ID.String())
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	if err := service.JoinGroup(ctx, domain.JoinGroupRequest{InviteCode: res.InviteCode}, joiner.ID.String()); err != nil {
		t.Fatalf("JoinGroup failed: %v", err)
	}
	if joiner.GroupID == nil || joiner.GroupID.String() != res.GroupID {
		t.Errorf("joiner must be placed into the group")
	}
}

func TestJoinGroupUnknownInviteCode(t *testing.T) {
	userRepo := newFakeUserRepository()
	service := NewGroupService(newFakeGroupRepository(), userRepo)

	joiner := seedUser(userRepo, "hanako")

	err := service.JoinGroup(context.Background(), domain.JoinGroupRequest{InviteCode: uuid.New().String()}, joiner.ID.String())
	if err != domain.ErrGroupNotFound {
		t.Errorf("err = %v, want ErrGroupNotFound", err)
	}
}

func TestLeaveGroup(t *testing.T) {
	groupRepo := newFakeGroupRepository()
	userRepo := newFakeUserRepository()
	service := NewGroupService(groupRepo, userRepo)
	ctx := context.Background()

	member := seedUser(userRepo, "taro")
	if _, err := service.CreateGroup(ctx, domain.CreateGroupRequest{Name: "我が家"}, member.ID.String()); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	if err := service.LeaveGroup(ctx, member.ID.String()); err != nil {
		t.Fatalf("LeaveGroup failed: %v", err)
	}
	if member.GroupID != nil {
		t.Errorf("member must revert to personal mode")
	}

	if err := service.LeaveGroup(ctx, member.ID.String()); err != domain.ErrNotInGroup {
		t.Errorf("err = %v, want ErrNotInGroup", err)
	}
}
