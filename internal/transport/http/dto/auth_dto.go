package dto

type IssueSessionRequest struct {
	BootstrapKey string `json:"bootstrap_key"`
	UserID       int64  `json:"user_id"`
	Role         string `json:"role"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthTokensResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresInSec int64  `json:"expires_in_sec"`
}

type LogoutResponse struct {
	OK bool `json:"ok"`
}
