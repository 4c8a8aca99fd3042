package model

import (
	"time"

	"github.com/olegsavin/brandmatch/internal/domain/enums"
)

// Match is the lifecycle record for one (creator, brand) pair. At most one
// row exists per pair; MatchScore is a snapshot taken when the row is
// created and is never recomputed on later transitions.
type Match struct {
	ID         int64             `json:"id"`
	CreatorID  int64             `json:"creator_id"`
	BrandID    int64             `json:"brand_id"`
	MatchScore float64           `json:"match_score"`
	Status     enums.MatchStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
