package enums

import "strings"

type Role string

const (
	RoleCreator Role = "creator"
	RoleBrand   Role = "brand"
)

func ParseRole(input string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(input))) {
	case RoleCreator:
		return RoleCreator, true
	case RoleBrand:
		return RoleBrand, true
	default:
		return "", false
	}
}

func (r Role) Opposite() Role {
	if r == RoleCreator {
		return RoleBrand
	}
	return RoleCreator
}
