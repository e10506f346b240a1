package service

import (
	"errors"
	"time"

	entity "campusx/internal/domain"
	repo "campusx/internal/repository/postgresql"
	utils "campusx/pkg"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInactiveAccount     = errors.New("account is blocked")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrEmailTaken          = errors.New("email already taken")
)

type AuthService struct {
	userRepo      repo.UserRepository
	defaultRoleID uuid.UUID
}

func NewAuthService(userRepo repo.UserRepository, defaultRoleID uuid.UUID) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		defaultRoleID: defaultRoleID,
	}
}

func (s *AuthService) Register(input *entity.RegisterInput) (*entity.UserResp, error) {
	if u, _, err := s.userRepo.GetByUsername(input.Username); err != nil {
		return nil, err
	} else if u != nil {
		return nil, ErrUsernameTaken
	}

	if u, err := s.userRepo.GetByEmail(input.Email); err != nil {
		return nil, err
	} else if u != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	if s.defaultRoleID == uuid.Nil {
		return nil, errors.New("default role 'student' is not set")
	}

	user := &entity.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: hashed,
		RoleID:       s.defaultRoleID,
		LineUserID:   input.LineUserID,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, err
	}

	return &entity.UserResp{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Role:     "student",
	}, nil
}

func (s *AuthService) Login(username, password string) (*entity.LoginResponse, error) {
	user, roleName, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	token, err := utils.GenerateToken(user, roleName)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.GenerateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &entity.LoginResponse{
		Token:        token,
		RefreshToken: refresh,
		User: entity.UserResp{
			ID:       user.ID,
			Username: user.Username,
			FullName: user.FullName,
			Role:     roleName,
		},
	}, nil
}

func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := utils.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}
	if !user.IsActive {
		return "", ErrInactiveAccount
	}

	roleName, err := s.userRepo.GetRoleName(user.RoleID)
	if err != nil {
		return "", err
	}
	return utils.GenerateToken(user, roleName)
}

func (s *AuthService) GetProfile(userID uuid.UUID) (*entity.UserResp, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	roleName, err := s.userRepo.GetRoleName(user.RoleID)
	if err != nil {
		return nil, err
	}
	return &entity.UserResp{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Role:     roleName,
	}, nil
}
