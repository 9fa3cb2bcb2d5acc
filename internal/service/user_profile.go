package service

import (
	"context"
	"strings"
	"time"

	"github.com/ufukozendev/noobgg-sub002/internal/dto"
	apperrors "github.com/ufukozendev/noobgg-sub002/internal/errors"
	"github.com/ufukozendev/noobgg-sub002/internal/model"
	"github.com/ufukozendev/noobgg-sub002/internal/repository"
	ctxutil "github.com/ufukozendev/noobgg-sub002/pkg/context"
	"github.com/ufukozendev/noobgg-sub002/pkg/logger"
	"github.com/ufukozendev/noobgg-sub002/pkg/pagination"
	"github.com/ufukozendev/noobgg-sub002/pkg/rowversion"
	"gorm.io/datatypes"
)

const birthDateLayout = "2006-01-02"

// UserProfileStore is the persistence surface of UserProfileService
type UserProfileStore interface {
	Store[model.UserProfile]
	VersionedStore[model.UserProfile]
	FindByUserKey(ctx context.Context, userKey string) (*model.UserProfile, error)
}

type UserProfileService struct {
	store  UserProfileStore
	policy rowversion.Policy
}

func NewUserProfileService(store UserProfileStore, policy rowversion.Policy) *UserProfileService {
	return &UserProfileService{store: store, policy: policy}
}

func (s *UserProfileService) List(ctx context.Context, params ListParams) (pagination.Response[dto.UserProfileResponse], error) {
	ctx = ctxutil.WithOperation(ctx, "service", "user_profiles.List")

	profiles, total, err := s.store.List(ctx, repository.ListQuery{
		Page:   params.Page,
		Search: params.Search,
		Scopes: params.Scopes,
	})
	if err != nil {
		return pagination.Response[dto.UserProfileResponse]{}, mapStoreError(err)
	}

	out := make([]dto.UserProfileResponse, 0, len(profiles))
	for i := range profiles {
		out = append(out, ToUserProfileResponse(&profiles[i]))
	}
	return pagination.BuildResponse(out, total, params.Page), nil
}

func (s *UserProfileService) Get(ctx context.Context, id uint) (*dto.UserProfileResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "user_profiles.Get")

	profile, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	resp := ToUserProfileResponse(profile)
	return &resp, nil
}

// GetMe returns the profile of the authenticated caller
func (s *UserProfileService) GetMe(ctx context.Context, userKey string) (*dto.UserProfileResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "user_profiles.GetMe")

	profile, err := s.store.FindByUserKey(ctx, userKey)
	if err != nil {
		return nil, mapStoreError(err)
	}
	resp := ToUserProfileResponse(profile)
	return &resp, nil
}

// Create stores the caller's profile; a user has at most one
func (s *UserProfileService) Create(ctx context.Context, userKey string, req *dto.CreateUserProfileRequest) (*dto.UserProfileResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "user_profiles.Create")

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	profile := &model.UserProfile{
		UserKey:         userKey,
		Username:        strings.TrimSpace(req.Username),
		DisplayName:     req.DisplayName,
		Bio:             req.Bio,
		BirthDate:       birthDate,
		Gender:          req.Gender,
		Region:          req.Region,
		ProfileImageURL: req.ProfileImageURL,
		BannerImageURL:  req.BannerImageURL,
		RowVersion:      rowversion.Initial,
	}
	if err := s.store.Create(ctx, profile); err != nil {
		logger.InfoWithContext(ctx, "Profile create rejected").String("username", profile.Username).Err(err).Log()
		return nil, mapStoreError(err)
	}

	logger.InfoWithContext(ctx, "Profile created").
		Uint("profile_id", profile.ID).
		String("username", profile.Username).
		Log()

	resp := ToUserProfileResponse(profile)
	return &resp, nil
}

// Update applies a partial update guarded by the profile's row version
func (s *UserProfileService) Update(ctx context.Context, userKey string, id uint, req *dto.UpdateUserProfileRequest) (*dto.UserProfileResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "user_profiles.Update")

	profile, err := updateVersioned[model.UserProfile](ctx, "user_profiles", s.store, s.policy, id, req.RowVersion, func(existing *model.UserProfile) (map[string]interface{}, error) {
		if existing.UserKey != userKey {
			return nil, apperrors.ErrForbidden
		}
		return profileUpdates(req)
	})
	if err != nil {
		return nil, err
	}

	logger.InfoWithContext(ctx, "Profile updated").
		Uint("profile_id", id).
		String("row_version", profile.RowVersion).
		Log()

	resp := ToUserProfileResponse(profile)
	return &resp, nil
}

func profileUpdates(req *dto.UpdateUserProfileRequest) (map[string]interface{}, error) {
	u := updates{}
	u.trimmed("username", req.Username)
	u.set("display_name", req.DisplayName)
	u.set("bio", req.Bio)
	if req.BirthDate != nil {
		d, err := parseBirthDate(req.BirthDate)
		if err != nil {
			return nil, err
		}
		u["birth_date"] = d
	}
	u.set("gender", req.Gender)
	u.set("region", req.Region)
	u.set("profile_image_url", req.ProfileImageURL)
	u.set("banner_image_url", req.BannerImageURL)
	return u, nil
}

// Delete soft-deletes the profile; owner only
func (s *UserProfileService) Delete(ctx context.Context, userKey string, id uint) error {
	ctx = ctxutil.WithOperation(ctx, "service", "user_profiles.Delete")

	profile, err := s.store.FindByID(ctx, id)
	if err != nil {
		return mapStoreError(err)
	}
	if profile.UserKey != userKey {
		return apperrors.ErrForbidden
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return mapStoreError(err)
	}

	logger.InfoWithContext(ctx, "Profile deleted").Uint("profile_id", id).Log()
	return nil
}

func parseBirthDate(raw *string) (*datatypes.Date, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(birthDateLayout, *raw)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.WithMessage(apperrors.ErrInvalidInput, "birthDate must be formatted as YYYY-MM-DD"), err)
	}
	if t.After(time.Now()) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "birthDate cannot be in the future")
	}
	d := datatypes.Date(t)
	return &d, nil
}

func ToUserProfileResponse(p *model.UserProfile) dto.UserProfileResponse {
	resp := dto.UserProfileResponse{
		ID:              p.ID,
		UserID:          p.UserKey,
		Username:        p.Username,
		DisplayName:     p.DisplayName,
		Bio:             p.Bio,
		Gender:          p.Gender,
		Region:          p.Region,
		ProfileImageURL: p.ProfileImageURL,
		BannerImageURL:  p.BannerImageURL,
		RowVersion:      p.RowVersion,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.BirthDate != nil {
		s := time.Time(*p.BirthDate).Format(birthDateLayout)
		resp.BirthDate = &s
	}
	return resp
}
