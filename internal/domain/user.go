package domain

import "time"

// User roles.
const (
	RoleStandard = "standard"
	RoleAdmin    = "admin"
	RoleJuror    = "juror"
)

type User struct {
	UserID   string `json:"id" dynamodbav:"user_id"`
	Email    string `json:"email" dynamodbav:"email"`
	Role     string `json:"role" dynamodbav:"role"`
	Verified bool   `json:"verified" dynamodbav:"verified"`

	Name       string `json:"name" dynamodbav:"name"`
	Company    string `json:"company" dynamodbav:"company"`
	Nomination string `json:"nomination" dynamodbav:"nomination"`
	Job        string `json:"job" dynamodbav:"job"`
	About      string `json:"about" dynamodbav:"about"`

	Instagram string `json:"instagram" dynamodbav:"instagram"`
	VK        string `json:"vk" dynamodbav:"vk"`
	TikTok    string `json:"tiktok" dynamodbav:"tiktok"`
	YouTube   string `json:"youtube" dynamodbav:"youtube"`

	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

type RegisterRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"omitempty,oneof=standard admin juror"`
}

type UpdateInfoRequest struct {
	UserID     string  `json:"userId" validate:"required"`
	Company    *string `json:"company"`
	Name       *string `json:"name"`
	Nomination *string `json:"nomination"`
	Job        *string `json:"job"`
	About      *string `json:"about"`
}

type UpdateSocialInfoRequest struct {
	UserID    string  `json:"userId" validate:"required"`
	Instagram *string `json:"instagram"`
	VK        *string `json:"vk"`
	TikTok    *string `json:"tiktok"`
	YouTube   *string `json:"youtube"`
}
