package mem

// ResetTokenStore binds single-use password reset tokens to a user id.
type ResetTokenStore interface {
	OAuthStateStore
}

// ResetTokens shares the OAuth state bookkeeping. It is a separate type so the
// two stores are distinct values in the container.
type ResetTokens struct {
	*OAuthStates
}

func NewResetTokens() *ResetTokens {
	return &ResetTokens{OAuthStates: NewOAuthStates()}
}
