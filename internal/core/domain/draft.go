package domain

// Form field names, shared by drafts, form posts and error maps.
const (
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldEmail     = "email"
	FieldPassword  = "password"
)

// Draft is the locally edited copy of a fetched user.
type Draft struct {
	FirstName string `validate:"notblank"`
	LastName  string `validate:"notblank"`
	Email     string `validate:"notblank,looseemail"`
	Avatar    string
}

// DraftFromUser copies the editable fields of u.
func DraftFromUser(u User) Draft {
	return Draft{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Avatar:    u.Avatar,
	}
}

// Update strips the display-only avatar.
func (d Draft) Update() UserUpdate {
	return UserUpdate{
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
	}
}

// Credentials are the values collected by the login form.
type Credentials struct {
	Email    string `validate:"required,looseemail"`
	Password string `validate:"required"`
}

// FieldErrors maps a form field to its message. A missing key means no error.
type FieldErrors map[string]string

// Has reports whether field currently carries a message.
func (fe FieldErrors) Has(field string) bool {
	return fe[field] != ""
}

// Get returns the message for field, or "".
func (fe FieldErrors) Get(field string) string {
	return fe[field]
}

// Empty reports whether no field carries a message.
func (fe FieldErrors) Empty() bool {
	for _, msg := range fe {
		if msg != "" {
			return false
		}
	}
	return true
}

// DeleteDialog is the state of the delete confirmation dialog.
type DeleteDialog struct {
	Open bool
	// UserID is 0 when no target is selected.
	UserID   int
	UserName string
}
