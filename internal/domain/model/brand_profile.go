package model

import (
	"time"

	"github.com/olegsavin/brandmatch/internal/domain/enums"
)

type BrandProfile struct {
	UserID       int64              `json:"user_id"`
	CompanyName  string             `json:"company_name"`
	Vertical     string             `json:"vertical"`
	AdSpendRange enums.AdSpendRange `json:"ad_spend_range"`
	Bio          string             `json:"bio"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}
