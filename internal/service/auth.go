package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/orderspot/connecthost-api/internal/domain"
	"github.com/orderspot/connecthost-api/internal/repository"
)

var (
	ErrUserEmailExists = repository.ErrUserEmailExists
	ErrWrongPassword   = errors.New("wrong password")
	ErrHostRequired    = errors.New("host users must be bound to a host")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

type HostLookup interface {
	FindByID(ctx context.Context, id uint) (domain.Host, error)
	Count(ctx context.Context) (int64, error)
}

type AuthService struct {
	repo  AuthUserRepository
	hosts HostLookup
}

func NewAuthService(repo AuthUserRepository, hosts HostLookup) *AuthService {
	return &AuthService{
		repo:  repo,
		hosts: hosts,
	}
}

// Signup creates a user with a bcrypt hash of its password. A host-role user
// must reference an existing host once at least one host exists.
func (s *AuthService) Signup(ctx context.Context, user domain.User) (domain.User, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	if err := s.checkHostBinding(ctx, user); err != nil {
		return domain.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = string(hash)

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}

func (s *AuthService) checkHostBinding(ctx context.Context, user domain.User) error {
	if user.Role != domain.RoleHost {
		return nil
	}

	if user.HostID != nil {
		if _, err := s.hosts.FindByID(ctx, *user.HostID); err != nil {
			return fmt.Errorf("s.hosts.FindByID -> %w", err)
		}
		return nil
	}

	count, err := s.hosts.Count(ctx)
	if err != nil {
		return fmt.Errorf("s.hosts.Count -> %w", err)
	}
	if count > 0 {
		return ErrHostRequired
	}

	return nil
}
