package model

// User is the shopper the checkout is rendered for.
type User struct {
	ID    int      `json:"id"`
	Roles []string `json:"roles"`
}

// Guest returns the anonymous user: no id, no roles.
func Guest() User {
	return User{Roles: []string{}}
}

// HasAnyRole reports whether the user holds at least one of roles.
func (u User) HasAnyRole(roles []string) bool {
	for _, want := range roles {
		for _, have := range u.Roles {
			if want == have {
				return true
			}
		}
	}
	return false
}
