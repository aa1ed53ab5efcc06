package model

// TokenManager signs and verifies session tokens.
type TokenManager interface {
	Issue(userID int64) (string, error)
	Parse(token string) (int64, error)
}
