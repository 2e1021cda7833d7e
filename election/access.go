// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

// AccessControl holds the administrator principal of one election. It is
// fixed at construction.
type AccessControl struct {
	admin string
}

func NewAccessControl(admin string) AccessControl {
	return AccessControl{admin: admin}
}

// Administrator returns the administrator principal
func (a AccessControl) Administrator() string {
	return a.admin
}

// IsAdministrator reports whether principal is the administrator. The
// anonymous principal never is.
func (a AccessControl) IsAdministrator(principal string) bool {
	return principal != "" && principal == a.admin
}
