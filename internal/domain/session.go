package domain

// Session holds the opaque auth token and the username it was issued for.
// Token and username are set and cleared together by login/logout.
type Session struct {
	Token    string
	Username string
}

// IsAuthenticated reports whether the session carries a non-empty token.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// RegisterName is the name block of a registration payload.
type RegisterName struct {
	Firstname string `json:"firstname" validate:"required"`
	Lastname  string `json:"lastname" validate:"required"`
}

// RegisterAddress is the address block of a registration payload.
type RegisterAddress struct {
	City    string `json:"city" validate:"required"`
	Street  string `json:"street" validate:"required"`
	Number  int    `json:"number" validate:"gte=0"`
	Zipcode string `json:"zipcode" validate:"required"`
}

// RegisterRequest is the payload forwarded to the remote registration endpoint.
type RegisterRequest struct {
	Email    string          `json:"email" validate:"required,email"`
	Username string          `json:"username" validate:"required"`
	Password string          `json:"password" validate:"required"`
	Name     RegisterName    `json:"name"`
	Address  RegisterAddress `json:"address"`
	Phone    string          `json:"phone" validate:"required"`
}
