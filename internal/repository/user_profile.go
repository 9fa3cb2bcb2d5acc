package repository

import (
	"context"

	"github.com/ufukozendev/noobgg-sub002/internal/model"
	"gorm.io/gorm"
)

// UserProfileRepository adds lookups by identity subject
type UserProfileRepository struct {
	*CRUDRepository[model.UserProfile]
}

func NewUserProfileRepository(db *gorm.DB) *UserProfileRepository {
	return &UserProfileRepository{
		CRUDRepository: NewCRUDRepository[model.UserProfile](db, Options{
			Name:          "user_profiles",
			Sort:          SortSpec{Columns: withCommonSort(map[string]string{"username": "username"}), Default: "created_at"},
			SearchColumns: []string{"username", "display_name"},
		}),
	}
}

// FindByUserKey returns the profile owned by userKey
func (r *UserProfileRepository) FindByUserKey(ctx context.Context, userKey string) (*model.UserProfile, error) {
	return r.FindOne(ctx, ByUserKey(userKey))
}
