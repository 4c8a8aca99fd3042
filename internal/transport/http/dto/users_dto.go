package dto

type SetVerifiedRequest struct {
	Verified bool `json:"verified"`
}

type UserResponse struct {
	ID       int64  `json:"id"`
	Role     string `json:"role"`
	Verified bool   `json:"verified"`
}
