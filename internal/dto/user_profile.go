package dto

import "time"

type CreateUserProfileRequest struct {
	Username        string  `json:"username" validate:"required,min=3,max=50,username"`
	DisplayName     *string `json:"displayName" validate:"omitempty,max=100"`
	Bio             *string `json:"bio" validate:"omitempty,max=500"`
	BirthDate       *string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	Gender          *string `json:"gender" validate:"omitempty,oneof=male female other unknown"`
	Region          *string `json:"region" validate:"omitempty,max=50"`
	ProfileImageURL *string `json:"profileImageUrl" validate:"omitempty,url,max=2048"`
	BannerImageURL  *string `json:"bannerImageUrl" validate:"omitempty,url,max=2048"`
}

type UpdateUserProfileRequest struct {
	Username        *string `json:"username" validate:"omitempty,min=3,max=50,username"`
	DisplayName     *string `json:"displayName" validate:"omitempty,max=100"`
	Bio             *string `json:"bio" validate:"omitempty,max=500"`
	BirthDate       *string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	Gender          *string `json:"gender" validate:"omitempty,oneof=male female other unknown"`
	Region          *string `json:"region" validate:"omitempty,max=50"`
	ProfileImageURL *string `json:"profileImageUrl" validate:"omitempty,url,max=2048"`
	BannerImageURL  *string `json:"bannerImageUrl" validate:"omitempty,url,max=2048"`
	RowVersion      *string `json:"rowVersion" validate:"omitempty,max=64"`
}

type UserProfileResponse struct {
	ID              uint      `json:"id"`
	UserID          string    `json:"userId"`
	Username        string    `json:"username"`
	DisplayName     *string   `json:"displayName"`
	Bio             *string   `json:"bio"`
	BirthDate       *string   `json:"birthDate"`
	Gender          *string   `json:"gender"`
	Region          *string   `json:"region"`
	ProfileImageURL *string   `json:"profileImageUrl"`
	BannerImageURL  *string   `json:"bannerImageUrl"`
	RowVersion      string    `json:"rowVersion"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
