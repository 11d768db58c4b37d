package service

import (
	"errors"

	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"
	"go-shop-admin/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService interface {
	Create(req *CreateUserRequest) (*model.User, error)
	Update(id uuid.UUID, req *UpdateUserRequest) (*model.User, error)
	Delete(id uuid.UUID) error
	List(filter repository.UserFilter) ([]model.UserResponse, int64, error)
	Get(id uuid.UUID) (*model.UserResponse, error)
}

type CreateUserRequest struct {
	Name     string           `json:"name" validate:"required"`
	Email    string           `json:"email" validate:"required,email"`
	Password string           `json:"password" validate:"required,min=6"`
	Age      *int             `json:"age" validate:"omitempty,gte=0,lte=150"`
	Phone    string           `json:"phone"`
	Status   model.UserStatus `json:"status" validate:"omitempty,oneof=active inactive suspended"`
}

type UpdateUserRequest struct {
	Name     string           `json:"name" validate:"required"`
	Email    string           `json:"email" validate:"required,email"`
	Password *string          `json:"password,omitempty" validate:"omitempty,min=6"` // Optional
	Age      *int             `json:"age" validate:"omitempty,gte=0,lte=150"`
	Phone    string           `json:"phone"`
	Status   model.UserStatus `json:"status" validate:"omitempty,oneof=active inactive suspended"`
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Create(req *CreateUserRequest) (*model.User, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	existing, _ := s.users.FindByEmail(req.Email)
	if existing != nil {
		return nil, ErrEmailExists
	}

	status := req.Status
	if status == "" {
		status = model.UserStatusActive
	}

	user := &model.User{
		Name:   req.Name,
		Email:  req.Email,
		Age:    req.Age,
		Phone:  req.Phone,
		Status: status,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) Update(id uuid.UUID, req *UpdateUserRequest) (*model.User, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Email != user.Email {
		existing, _ := s.users.FindByEmail(req.Email)
		if existing != nil {
			return nil, ErrEmailExists
		}
	}

	user.Name = req.Name
	user.Email = req.Email
	user.Age = req.Age
	user.Phone = req.Phone
	if req.Status != "" {
		user.Status = req.Status
	}

	if req.Password != nil && *req.Password != "" {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, errors.New("failed to hash password")
		}
	}

	if err := s.users.Update(user); err != nil {
		return nil, err
	}

	return s.users.FindByID(id)
}

func (s *userService) Delete(id uuid.UUID) error {
	if _, err := s.users.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.users.Delete(id)
}

func (s *userService) List(filter repository.UserFilter) ([]model.UserResponse, int64, error) {
	users, total, err := s.users.FindAll(filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, total, nil
}

func (s *userService) Get(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	response := user.ToResponse()
	return &response, nil
}
