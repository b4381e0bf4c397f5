package auth

import "time"

const (
	DefaultTokenTTL    = time.Hour
	RememberMeTokenTTL = 7 * 24 * time.Hour
)

// TTLPolicy picks a token lifetime from the client's "remember me" choice.
type TTLPolicy struct {
	Default    time.Duration
	RememberMe time.Duration
}

// DefaultTTLPolicy is one hour, or seven days when remembered.
func DefaultTTLPolicy() TTLPolicy {
	return TTLPolicy{Default: DefaultTokenTTL, RememberMe: RememberMeTokenTTL}
}

func (p TTLPolicy) For(rememberMe bool) time.Duration {
	if rememberMe {
		return p.RememberMe
	}
	return p.Default
}
