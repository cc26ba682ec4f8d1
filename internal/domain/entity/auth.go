package entity

// TokenPair is the result of a successful token issuance.
// Only the refresh token is persisted, on the owning user.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)
