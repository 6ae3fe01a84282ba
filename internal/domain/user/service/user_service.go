package service

import (
	"errors"

	"blog_api/internal/domain/user/model"
	"blog_api/internal/domain/user/repository"
	"blog_api/pkg/apperr"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService 用户服务接口
type UserService interface {
	Signup(username, email, password, password2 string) (*model.User, error)
	Login(username, password string) (*model.User, error)
	GetUser(id uint) (*model.User, error)
}

// userService 实现
type userService struct {
	repo repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// Signup 注册新用户
// 校验全部通过后才写库，任何一项失败都不产生部分状态
func (s *userService) Signup(username, email, password, password2 string) (*model.User, error) {
	fields := map[string][]string{}

	if username == "" {
		fields["username"] = append(fields["username"], "username is required")
	}
	if email == "" {
		fields["email"] = append(fields["email"], "email is required")
	}
	if len(password) < 8 {
		fields["password"] = append(fields["password"], "password must be at least 8 characters")
	}
	if password != password2 {
		fields["password"] = append(fields["password"], "passwords do not match")
	}

	if username != "" {
		taken, err := s.repo.ExistsByUsername(username)
		if err != nil {
			return nil, err
		}
		if taken {
			fields["username"] = append(fields["username"], "this username is already taken")
		}
	}
	if email != "" {
		taken, err := s.repo.ExistsByEmail(email)
		if err != nil {
			return nil, err
		}
		if taken {
			fields["email"] = append(fields["email"], "this email is already registered")
		}
	}

	if len(fields) > 0 {
		return nil, apperr.FieldErrors(fields)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: string(hash),
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 校验用户名密码
func (s *userService) Login(username, password string) (*model.User, error) {
	user, err := s.repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Authentication("incorrect username or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.Authentication("incorrect username or password")
	}
	return user, nil
}

// GetUser 获取单个用户
func (s *userService) GetUser(id uint) (*model.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}
