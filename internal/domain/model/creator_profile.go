package model

import "time"

// CreatorProfile is one-to-one with a creator user. All fields besides
// UserID are optional; empty string / zero count means "not provided".
type CreatorProfile struct {
	UserID              int64     `json:"user_id"`
	InstagramHandle     string    `json:"instagram_handle"`
	TiktokHandle        string    `json:"tiktok_handle"`
	FollowerCountIG     int64     `json:"follower_count_ig"`
	FollowerCountTiktok int64     `json:"follower_count_tiktok"`
	Bio                 string    `json:"bio"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Reach is the sum of follower counts across platforms.
func (p CreatorProfile) Reach() int64 {
	return p.FollowerCountIG + p.FollowerCountTiktok
}
