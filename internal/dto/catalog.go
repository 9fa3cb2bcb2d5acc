package dto

import "time"

type CreateGameRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=150"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Logo        *string `json:"logo" validate:"omitempty,url,max=2048"`
}

type UpdateGameRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=150"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Logo        *string `json:"logo" validate:"omitempty,url,max=2048"`
}

type GameResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Logo        *string   `json:"logo"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreatePlatformRequest struct {
	Name string `json:"name" validate:"required,min=1,max=150"`
}

type UpdatePlatformRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=150"`
}

type PlatformResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateDistributorRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=150"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Website     *string `json:"website" validate:"omitempty,url,max=2048"`
	Logo        *string `json:"logo" validate:"omitempty,url,max=2048"`
}

type UpdateDistributorRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=150"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Website     *string `json:"website" validate:"omitempty,url,max=2048"`
	Logo        *string `json:"logo" validate:"omitempty,url,max=2048"`
}

type DistributorResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Website     *string   `json:"website"`
	Logo        *string   `json:"logo"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateLanguageRequest struct {
	Name    string  `json:"name" validate:"required,min=1,max=150"`
	Code    string  `json:"code" validate:"required,min=2,max=10"`
	FlagURL *string `json:"flagUrl" validate:"omitempty,url,max=2048"`
}

type UpdateLanguageRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=150"`
	Code    *string `json:"code" validate:"omitempty,min=2,max=10"`
	FlagURL *string `json:"flagUrl" validate:"omitempty,url,max=2048"`
}

type LanguageResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	FlagURL   *string   `json:"flagUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
