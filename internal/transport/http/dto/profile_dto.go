package dto

type CreatorProfileRequest struct {
	InstagramHandle     string `json:"instagram_handle"`
	TiktokHandle        string `json:"tiktok_handle"`
	FollowerCountIG     int64  `json:"follower_count_ig"`
	FollowerCountTiktok int64  `json:"follower_count_tiktok"`
	Bio                 string `json:"bio"`
}

type BrandProfileRequest struct {
	CompanyName  string `json:"company_name"`
	Vertical     string `json:"vertical"`
	AdSpendRange string `json:"ad_spend_range"`
	Bio          string `json:"bio"`
}

type CreatorProfileResponse struct {
	UserID              int64  `json:"user_id"`
	InstagramHandle     string `json:"instagram_handle,omitempty"`
	TiktokHandle        string `json:"tiktok_handle,omitempty"`
	FollowerCountIG     int64  `json:"follower_count_ig"`
	FollowerCountTiktok int64  `json:"follower_count_tiktok"`
	Reach               int64  `json:"reach"`
	Bio                 string `json:"bio,omitempty"`
}

type BrandProfileResponse struct {
	UserID       int64  `json:"user_id"`
	CompanyName  string `json:"company_name"`
	Vertical     string `json:"vertical,omitempty"`
	AdSpendRange string `json:"ad_spend_range,omitempty"`
	Bio          string `json:"bio,omitempty"`
}

type SaveProfileResponse struct {
	OK bool `json:"ok"`
}
