package contracts

// User is a registered account. Password is stored as given (mocked auth)
// and never leaves the session store.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
	Password   string `json:"password,omitempty"`
	IsVerified bool   `json:"is_verified"`
}

// Public returns the credential-free projection used for the session
func (u User) Public() User {
	u.Password = ""
	return u
}
