package gorm

import (
	"github.com/gofrs/uuid"
	"github.com/leandro-lugaresi/hub"

	"github.com/traPtitech/pinboard/event"
	"github.com/traPtitech/pinboard/model"
	"github.com/traPtitech/pinboard/repository"
	"github.com/traPtitech/pinboard/utils/gormutil"
)

// ToggleFollow implements FollowRepository interface.
func (repo *Repository) ToggleFollow(followerID, followingID uuid.UUID) (bool, error) {
	if followerID == uuid.Nil || followingID == uuid.Nil {
		return false, repository.ErrNilID
	}
	if followerID == followingID {
		return false, repository.ArgError("username", "you cannot follow yourself")
	}

	active, err := toggleRecord(repo.db,
		&model.Follow{FollowerID: followerID, FollowingID: followingID},
		"follower_id = ? AND following_id = ?", followerID, followingID,
	)
	if err != nil {
		return false, err
	}
	repo.hub.Publish(hub.Message{
		Name: event.UserFollowToggled,
		Fields: hub.Fields{
			"follower_id":  followerID,
			"following_id": followingID,
			"active":       active,
		},
	})
	return active, nil
}

// IsFollowing implements FollowRepository interface.
func (repo *Repository) IsFollowing(followerID, followingID uuid.UUID) (bool, error) {
	if followerID == uuid.Nil || followingID == uuid.Nil {
		return false, nil
	}
	return gormutil.RecordExists(repo.db, &model.Follow{FollowerID: followerID, FollowingID: followingID})
}

// GetFollowCounts implements FollowRepository interface.
func (repo *Repository) GetFollowCounts(userID uuid.UUID) (counts repository.FollowCounts, err error) {
	if userID == uuid.Nil {
		return counts, nil
	}
	counts.Followers, err = gormutil.Count(repo.db.Model(&model.Follow{}).Where("following_id = ?", userID))
	if err != nil {
		return counts, err
	}
	counts.Following, err = gormutil.Count(repo.db.Model(&model.Follow{}).Where("follower_id = ?", userID))
	return counts, err
}
