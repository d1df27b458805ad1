package models

// User represents a registered account. ID has the form usr_ followed by
// eight lowercase hex characters when generated by the registry.
type User struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
}

// CreateUserRequest represents a request to create a user
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserView is the external shape of a user returned by the API layer
type UserView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToView projects u onto its external shape
func ToView(u User) UserView {
	return UserView{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

// ToViews projects each user, preserving order
func ToViews(users []User) []UserView {
	views := make([]UserView, len(users))
	for i, u := range users {
		views[i] = ToView(u)
	}
	return views
}
