package usecase

import (
	"context"

	"soukly/internal/domain/entity"
	"soukly/internal/domain/repository"
	"soukly/pkg/errors"
	"soukly/pkg/utils"
)

type FollowUseCase struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowUseCase(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowUseCase {
	return &FollowUseCase{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates the edge and bumps both counters atomically.
func (uc *FollowUseCase) Follow(ctx context.Context, followerID, followingID string) (*entity.Follow, error) {
	if followerID == followingID {
		return nil, errors.Rejection("You cannot follow yourself")
	}

	target, err := uc.userRepo.GetByID(ctx, followingID)
	if err != nil {
		return nil, err
	}

	exists, err := uc.followRepo.Exists(ctx, followerID, followingID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Rejection("You already follow this user")
	}

	follow := &entity.Follow{
		FollowerID:    followerID,
		FollowingID:   followingID,
		FollowingName: target.Name,
	}

	if err := uc.followRepo.Create(ctx, follow); err != nil {
		return nil, err
	}
	return follow, nil
}

func (uc *FollowUseCase) Unfollow(ctx context.Context, userID, followID, side string) error {
	deleted, err := uc.followRepo.Delete(ctx, followID, userID, side)
	if err != nil {
		return err
	}
	if !deleted {
		return errors.NotFound("Follow", nil)
	}
	return nil
}

func (uc *FollowUseCase) List(ctx context.Context, userID, side string, page, limit int) ([]*entity.Follow, int64, error) {
	p := utils.NewPaginationParams(page, limit)
	return uc.followRepo.List(ctx, userID, side, p.PageSize, p.Offset)
}

func (uc *FollowUseCase) Search(ctx context.Context, userID, side, namePrefix string, page, limit int) ([]*entity.Follow, int64, error) {
	p := utils.NewPaginationParams(page, limit)
	return uc.followRepo.Search(ctx, userID, side, namePrefix, p.PageSize, p.Offset)
}

func (uc *FollowUseCase) Count(ctx context.Context, userID, side string) (int64, error) {
	return uc.followRepo.Count(ctx, userID, side)
}
