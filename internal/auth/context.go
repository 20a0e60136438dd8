package auth

import "context"

// Outcome is the tri-state result of bearer-token verification for a request.
// Absent and invalid credentials are kept apart so middleware metrics can tell
// them apart, even though both leave the request unauthenticated.
type Outcome int

const (
	// OutcomeAbsent means no Authorization header was presented.
	OutcomeAbsent Outcome = iota
	// OutcomeInvalid means a token was presented but failed verification.
	OutcomeInvalid
	// OutcomeValid means the token verified and claims were extracted.
	OutcomeValid
)

// String returns the metric label for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeInvalid:
		return "invalid"
	case OutcomeValid:
		return "valid"
	default:
		return "absent"
	}
}

// RequestAuth is the request-scoped authentication context. It is derived
// fresh per request and never persisted.
type RequestAuth struct {
	Outcome Outcome
	UserID  string
	Email   string
}

// IsAuthenticated reports whether the request carries a verified identity.
func (a RequestAuth) IsAuthenticated() bool {
	return a.Outcome == OutcomeValid
}

type contextKey struct{}

// WithRequestAuth attaches the authentication context to ctx.
func WithRequestAuth(ctx context.Context, a RequestAuth) context.Context {
	return context.WithValue(ctx, contextKey{}, a)
}

// FromContext returns the authentication context for the request. A missing
// value behaves exactly like an absent token.
func FromContext(ctx context.Context) RequestAuth {
	if a, ok := ctx.Value(contextKey{}).(RequestAuth); ok {
		return a
	}
	return RequestAuth{Outcome: OutcomeAbsent}
}
