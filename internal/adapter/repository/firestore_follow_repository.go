package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"soukly/internal/domain/entity"
	"soukly/internal/domain/repository"
	"soukly/pkg/errors"
)

type firestoreFollowRepository struct {
	client *firestore.Client
}

func NewFirestoreFollowRepository(client *firestore.Client) repository.FollowRepository {
	return &firestoreFollowRepository{
		client: client,
	}
}

// Create writes the follow edge and bumps both users' counters in one
// transaction so the counters never drift from the edge set.
func (r *firestoreFollowRepository) Create(ctx context.Context, follow *entity.Follow) error {
	if follow.ID == "" {
		follow.ID = uuid.New().String()
	}
	follow.CreatedAt = time.Now()

	followRef := r.client.Collection("follows").Doc(follow.ID)
	followerRef := r.client.Collection("users").Doc(follow.FollowerID)
	followingRef := r.client.Collection("users").Doc(follow.FollowingID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		follower, err := r.getUserTx(tx, followerRef)
		if err != nil {
			return err
		}
		following, err := r.getUserTx(tx, followingRef)
		if err != nil {
			return err
		}

		if err := tx.Set(followRef, follow); err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Update(followerRef, []firestore.Update{
			{Path: "following", Value: follower.Following + 1},
			{Path: "updatedAt", Value: now},
		}); err != nil {
			return err
		}
		return tx.Update(followingRef, []firestore.Update{
			{Path: "followers", Value: following.Followers + 1},
			{Path: "updatedAt", Value: now},
		})
	})

	if err != nil {
		if _, ok := err.(*errors.AppError); ok {
			return err
		}
		return errors.Internal("Failed to create follow", err)
	}
	return nil
}

func (r *firestoreFollowRepository) Delete(ctx context.Context, id, userID, side string) (bool, error) {
	follow, err := r.GetByID(ctx, id, userID, side)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return false, nil
		}
		return false, err
	}

	followRef := r.client.Collection("follows").Doc(follow.ID)
	followerRef := r.client.Collection("users").Doc(follow.FollowerID)
	followingRef := r.client.Collection("users").Doc(follow.FollowingID)

	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		follower, err := r.getUserTx(tx, followerRef)
		if err != nil {
			return err
		}
		following, err := r.getUserTx(tx, followingRef)
		if err != nil {
			return err
		}

		if err := tx.Delete(followRef); err != nil {
			return err
		}

		now := time.Now()
		newFollowing := follower.Following - 1
		if newFollowing < 0 {
			newFollowing = 0
		}
		newFollowers := following.Followers - 1
		if newFollowers < 0 {
			newFollowers = 0
		}

		if err := tx.Update(followerRef, []firestore.Update{
			{Path: "following", Value: newFollowing},
			{Path: "updatedAt", Value: now},
		}); err != nil {
			return err
		}
		return tx.Update(followingRef, []firestore.Update{
			{Path: "followers", Value: newFollowers},
			{Path: "updatedAt", Value: now},
		})
	})

	if err != nil {
		if _, ok := err.(*errors.AppError); ok {
			return false, err
		}
		return false, errors.Internal("Failed to delete follow", err)
	}
	return true, nil
}

func (r *firestoreFollowRepository) getUserTx(tx *firestore.Transaction, ref *firestore.DocumentRef) (*entity.User, error) {
	doc, err := tx.Get(ref)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("User", err)
		}
		return nil, err
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *firestoreFollowRepository) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	iter := r.client.Collection("follows").
		Where("followerId", "==", followerID).
		Where("followingId", "==", followingID).
		Limit(1).
		Documents(ctx)

	_, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return false, nil
		}
		return false, errors.Internal("Failed to check follow", err)
	}
	return true, nil
}

func (r *firestoreFollowRepository) GetByID(ctx context.Context, id, userID, side string) (*entity.Follow, error) {
	doc, err := r.client.Collection("follows").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Follow", err)
		}
		return nil, errors.Internal("Failed to get follow", err)
	}

	var follow entity.Follow
	if err := doc.DataTo(&follow); err != nil {
		return nil, errors.Internal("Failed to parse follow data", err)
	}

	owner := follow.FollowerID
	if side == "follower" {
		owner = follow.FollowingID
	}
	if owner != userID {
		return nil, errors.NotFound("Follow", nil)
	}
	return &follow, nil
}

func (r *firestoreFollowRepository) List(ctx context.Context, userID, side string, limit, offset int) ([]*entity.Follow, int64, error) {
	return r.list(ctx, r.sideQuery(userID, side), limit, offset)
}

// Search narrows the side query to followed names starting with namePrefix,
// using the usual Firestore prefix range trick.
func (r *firestoreFollowRepository) Search(ctx context.Context, userID, side, namePrefix string, limit, offset int) ([]*entity.Follow, int64, error) {
	query := r.sideQuery(userID, side)
	if namePrefix != "" {
		query = query.
			Where("followingName", ">=", namePrefix).
			Where("followingName", "<", namePrefix+"").
			OrderBy("followingName", firestore.Asc)
	}
	return r.list(ctx, query, limit, offset)
}

func (r *firestoreFollowRepository) Count(ctx context.Context, userID, side string) (int64, error) {
	docs, err := r.sideQuery(userID, side).Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count follows", err)
	}
	return int64(len(docs)), nil
}

// sideQuery selects the edges where the user sits on the given side:
// "following" lists who the user follows, "follower" lists who follows them.
func (r *firestoreFollowRepository) sideQuery(userID, side string) firestore.Query {
	field := "followerId"
	if side == "follower" {
		field = "followingId"
	}
	return r.client.Collection("follows").Where(field, "==", userID)
}

func (r *firestoreFollowRepository) list(ctx context.Context, query firestore.Query, limit, offset int) ([]*entity.Follow, int64, error) {
	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count follows", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var follows []*entity.Follow

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate follows", err)
		}

		var follow entity.Follow
		if err := doc.DataTo(&follow); err != nil {
			return nil, 0, errors.Internal("Failed to parse follow data", err)
		}
		follows = append(follows, &follow)
	}

	return follows, total, nil
}
