package crud

import (
	"gorm.io/gorm"

	"goblog/domain"
	"goblog/errs"
)

// FollowService manages Follows.
// It implements the domain.FollowService interface.
type FollowService struct {
	followValidator
}

// followValidator runs validations on incoming Follow data.
// On success, it passes the data on to followGorm.
// Otherwise, it returns the error of the validation that has failed.
type followValidator struct {
	followGorm
}

// followGorm runs CRUD operations on the database using incoming Follow data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type followGorm struct {
	db *gorm.DB
}

// NewFollowService returns an instance of FollowService.
func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{
		followValidator{
			followGorm{
				db: db,
			},
		},
	}
}

// Ensure the FollowService struct properly implements the domain.FollowService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.FollowService = &FollowService{}

// Follow runs validations needed for creating new Follow database records.
func (fv *followValidator) Follow(userID, authorID int) error {
	follow := domain.Follow{UserID: userID, AuthorID: authorID}
	err := runFollowValFns(&follow,
		fv.userIDValid,
		fv.authorIDValid,
		fv.followedUserExists)
	if err != nil {
		return err
	}
	return fv.followGorm.Follow(userID, authorID)
}

// runFollowValFns runs any number of functions of type followValFn on the passed in Follow object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runFollowValFns(follow *domain.Follow, fns ...followValFn) error {
	for _, fn := range fns {
		if err := fn(follow); err != nil {
			return err
		}
	}
	return nil
}

// A followValFn is any function that takes in a pointer to a domain.Follow object and returns an error.
type followValFn func(follow *domain.Follow) error

// userIDValid ensures that the follower side of the pair is set.
func (fv *followValidator) userIDValid(follow *domain.Follow) error {
	if follow.UserID <= 0 {
		return errs.Errorf(errs.EINVALID, "A follower is required.")
	}
	return nil
}

// authorIDValid ensures that the followed side of the pair is set.
func (fv *followValidator) authorIDValid(follow *domain.Follow) error {
	if follow.AuthorID <= 0 {
		return errs.Errorf(errs.EINVALID, "An author to follow is required.")
	}
	return nil
}

// followedUserExists makes sure that the user to be followed actually exists.
func (fv *followValidator) followedUserExists(follow *domain.Follow) error {
	err := fv.db.First(&domain.User{}, "id = ?", follow.AuthorID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.Errorf(errs.ENOTFOUND, "The user to be followed does not exist.")
		}
		return err
	}
	return nil
}

// Follow creates the relationship if it does not exist yet. A concurrent
// insert of the same pair trips the unique constraint; since the end state is
// the one requested, that race is absorbed as success.
func (fg *followGorm) Follow(userID, authorID int) error {
	var follow domain.Follow
	err := fg.db.
		Where(&domain.Follow{UserID: userID, AuthorID: authorID}).
		FirstOrCreate(&follow).Error
	if err != nil && fg.Following(userID, authorID) {
		return nil
	}
	return err
}

// Unfollow removes the relationship. Deleting a pair that does not exist is
// a no-op, not an error.
func (fg *followGorm) Unfollow(userID, authorID int) error {
	return fg.db.
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&domain.Follow{}).Error
}

// Following reports whether userID currently follows authorID.
func (fg *followGorm) Following(userID, authorID int) bool {
	var count int64
	fg.db.Model(&domain.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count)
	return count > 0
}
