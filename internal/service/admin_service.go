package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "sitewatch/internal/errors"
	"sitewatch/internal/model"
	"sitewatch/internal/repository"
)

// AdminService handles user administration and reference-data reads.
type AdminService interface {
	ListUsers(ctx context.Context) ([]repository.UserWithRole, error)
	ListRoles(ctx context.Context) ([]model.Role, error)
	ListOperators(ctx context.Context) ([]model.User, error)
	UpdateRole(ctx context.Context, requesterID, targetUserID, newRoleID uint) error
}

type adminService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

// NewAdminService creates a new admin service.
func NewAdminService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) AdminService {
	return &adminService{userRepo: userRepo, roleRepo: roleRepo}
}

func (s *adminService) ListUsers(ctx context.Context) ([]repository.UserWithRole, error) {
	return s.userRepo.List(ctx)
}

func (s *adminService) ListRoles(ctx context.Context) ([]model.Role, error) {
	return s.roleRepo.List(ctx)
}

func (s *adminService) ListOperators(ctx context.Context) ([]model.User, error) {
	return s.userRepo.ListOperators(ctx)
}

// UpdateRole reassigns a user's role. The requester's role is resolved
// server-side and must be super admin; a super admin target is protected.
func (s *adminService) UpdateRole(ctx context.Context, requesterID, targetUserID, newRoleID uint) error {
	requester, err := s.userRepo.FindByID(ctx, requesterID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrForbidden
		}
		return fmt.Errorf("find requester: %w", err)
	}
	if requester.RoleID != model.SuperAdminRoleID {
		return apperrors.ErrForbidden
	}

	target, err := s.userRepo.FindByID(ctx, targetUserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find target user: %w", err)
	}
	if target.RoleID == model.SuperAdminRoleID {
		return apperrors.ErrSuperAdminProtected
	}

	if _, err := s.roleRepo.FindByID(ctx, newRoleID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrForbidden
		}
		return fmt.Errorf("find role: %w", err)
	}

	if err := s.userRepo.UpdateRole(ctx, targetUserID, newRoleID); err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}
