package user

import (
	"context"
	"errors"

	"pashameshi-backend/domain"
	"pashameshi-backend/entities"
	"pashameshi-backend/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) error
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (domain.MeResponse, error)
		ResolveScope(ctx context.Context, userID string) (domain.Scope, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) error {
	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.userRepository.CreateUser(ctx, &entities.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
	})
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrCredentialsInvalid
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrCredentialsInvalid
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), domain.RoleUser)
	return domain.LoginResponse{Token: token}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.MeResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.MeResponse{}, domain.ErrUserNotFound
		}
		return domain.MeResponse{}, err
	}

	response := domain.MeResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
	}
	if user.GroupID != nil {
		response.GroupID = user.GroupID.String()
	}

	return response, nil
}

// ResolveScope reads the user's current group assignment and turns it into
// the partition the next stock or shopping operation writes into. It is
// called fresh before every such operation and the result is never cached:
// group membership can change from another device between two requests, and a
// stale scope would silently write into the wrong partition.
func (s *userService) ResolveScope(ctx context.Context, userID string) (domain.Scope, error) {
	if userID == "" {
		return domain.Scope{}, domain.ErrNotAuthenticated
	}

	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return domain.Scope{}, domain.ErrParseUUID
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Scope{}, domain.ErrNotAuthenticated
		}
		return domain.Scope{}, err
	}

	return domain.Scope{
		OwnerUserID: ownerID,
		GroupID:     user.GroupID,
	}, nil
}
