package dto

type DiscoverItemResponse struct {
	UserID     int64                   `json:"user_id"`
	Role       string                  `json:"role"`
	MatchScore float64                 `json:"match_score"`
	Verified   bool                    `json:"verified"`
	Creator    *CreatorProfileResponse `json:"creator,omitempty"`
	Brand      *BrandProfileResponse   `json:"brand,omitempty"`
}

type DiscoverResponse struct {
	Items  []DiscoverItemResponse `json:"items"`
	Total  int                    `json:"total"`
	Limit  int                    `json:"limit"`
	Offset int                    `json:"offset"`
}
