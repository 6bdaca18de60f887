package domain

// Principal captures the authenticated caller's identity for request
// handling.
type Principal struct {
	UserID   uint
	PublicID string
	Email    string
}
