package model

import (
	"time"

	"github.com/olegsavin/brandmatch/internal/domain/enums"
)

type User struct {
	ID        int64      `json:"id"`
	Role      enums.Role `json:"role"`
	Verified  bool       `json:"verified"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
