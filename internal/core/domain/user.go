package domain

import "strings"

// User is a record owned by the remote service. The console only ever holds
// transient copies of it.
type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
}

// FullName joins first and last name with a single space.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Matches reports whether term is a case-insensitive substring of the user's
// full name or email. A blank term matches every user; any other term is
// matched as typed, surrounding spaces included.
func (u User) Matches(term string) bool {
	if strings.TrimSpace(term) == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(u.FullName()), term) ||
		strings.Contains(strings.ToLower(u.Email), term)
}

// UserPage is one page of the remote user collection.
type UserPage struct {
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
	Data       []User `json:"data"`
}

// UserUpdate carries the fields the console is allowed to write back.
// The avatar is display-only and never sent.
type UserUpdate struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// FilterUsers returns the users matching term, preserving order. The result
// never aliases the input slice.
func FilterUsers(users []User, term string) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		if u.Matches(term) {
			out = append(out, u)
		}
	}
	return out
}

// WithoutUser returns a copy of users with every entry whose ID is id removed.
func WithoutUser(users []User, id int) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		if u.ID != id {
			out = append(out, u)
		}
	}
	return out
}
