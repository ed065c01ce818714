package usecase

import (
	"context"
	"time"

	"soukly/internal/domain/entity"
	"soukly/internal/domain/repository"
	"soukly/pkg/errors"
	"soukly/pkg/utils"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

func (uc *UserUseCase) ListUsers(ctx context.Context, role string, page, limit int) ([]*entity.User, int64, error) {
	p := utils.NewPaginationParams(page, limit)
	return uc.userRepo.List(ctx, role, p.PageSize, p.Offset)
}

func (uc *UserUseCase) CountUsers(ctx context.Context, role string) (int64, error) {
	return uc.userRepo.Count(ctx, role)
}

type UpdateProfileInput struct {
	Name         string
	Gender       string
	Description  string
	CoverImage   string
	ProfileImage string
	Business     *bool
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Gender != "" {
		user.Gender = input.Gender
	}
	if input.Description != "" {
		user.Description = input.Description
	}
	if input.CoverImage != "" {
		user.CoverImage = input.CoverImage
	}
	if input.ProfileImage != "" {
		user.ProfileImage = input.ProfileImage
	}
	if input.Business != nil {
		user.Business = *input.Business
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// TouchLastSeen records activity. Failures are non-fatal for the request that
// triggered them, so callers may ignore the error.
func (uc *UserUseCase) TouchLastSeen(ctx context.Context, userID string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	user.LastSeen = time.Now()
	return uc.userRepo.Update(ctx, user)
}

// SetRole is the admin action for promoting staff accounts.
func (uc *UserUseCase) SetRole(ctx context.Context, userID, role string) (*entity.User, error) {
	switch role {
	case entity.RoleUser, entity.RoleAdmin, entity.RoleManager, entity.RoleCallCenter:
	default:
		return nil, errors.BadRequest("Invalid role", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeactivateUser soft-disables the account instead of removing its records.
func (uc *UserUseCase) DeactivateUser(ctx context.Context, userID string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	user.Active = false
	return uc.userRepo.Update(ctx, user)
}

func (uc *UserUseCase) DeleteUser(ctx context.Context, userID string) error {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	return uc.userRepo.Delete(ctx, userID)
}
