package model

import "context"

// RecoveryRequest is an operator-facing message asking to restore a
// soft-deleted account or post.
type RecoveryRequest struct {
	Subject  string
	Email    string
	Nickname string
	Title    string
	Content  string
}

// Mailer delivers recovery requests to the operator address.
type Mailer interface {
	SendRecoveryRequest(ctx context.Context, req RecoveryRequest) error
}
