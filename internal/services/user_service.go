package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/haripriyathati/bloodlink-connect-plus/internal/models"
	"github.com/haripriyathati/bloodlink-connect-plus/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	Repo repository.UserRepository
}

// NewUserService создаёт новый экземпляр UserService.
func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{Repo: repo}
}

// Register регистрирует нового пользователя с хешированным паролем.
func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, models.BadRequestError("missing required fields: name, email or password")
	}
	if req.Role != models.RoleAdmin && req.Role != models.RoleDonor && req.Role != models.RolePatient {
		return nil, models.BadRequestError("invalid role")
	}
	if !models.ValidBloodGroup(req.BloodGroup) {
		return nil, models.BadRequestError("invalid blood group")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.InternalError("failed to hash password")
	}

	user, err := s.Repo.Create(ctx, req, string(hash))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, models.BadRequestError("user with this email already exists")
		}
		return nil, models.InternalError("internal server error")
	}
	return user, nil
}

// Login проверяет учетные данные пользователя.
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, models.BadRequestError("missing required fields: email or password")
	}

	user, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, models.NewErrorResponse(http.StatusUnauthorized, "invalid email or password")
		}
		return nil, models.InternalError("internal server error")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, "invalid email or password")
	}
	return user, nil
}

// DonorsInCity возвращает других доноров из города пользователя.
func (s *UserService) DonorsInCity(ctx context.Context, userID, city string) ([]models.User, error) {
	user, err := requireUser(ctx, s.Repo, userID)
	if err != nil {
		return nil, err
	}
	if city == "" {
		city = user.City
	}
	donors, err := s.Repo.GetDonorsByCity(ctx, city, user.ID)
	if err != nil {
		return nil, models.InternalError("internal server error")
	}
	return donors, nil
}

// requireUser возвращает пользователя по id или 401, если его нет.
func requireUser(ctx context.Context, repo repository.UserRepository, userID string) (*models.User, error) {
	if userID == "" {
		return nil, models.BadRequestError("missing required query parameter: userId")
	}
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, models.NewErrorResponse(http.StatusUnauthorized, "user does not exist")
		}
		return nil, models.InternalError("internal server error")
	}
	return user, nil
}

// requireRole возвращает пользователя и проверяет его роль. Проверка роли
// выполняется здесь, до вызова рабочего процесса: сам процесс решений не
// предполагает привилегированного вызывающего.
func requireRole(ctx context.Context, repo repository.UserRepository, userID string, role models.UserRole) (*models.User, error) {
	user, err := requireUser(ctx, repo, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != role {
		return nil, models.NewErrorResponse(http.StatusForbidden, "you do not have permission to perform this action")
	}
	return user, nil
}
