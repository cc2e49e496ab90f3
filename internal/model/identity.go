package model

// Identity is the authenticated session: the principal plus the access token
// issued by the auth service. The absence of an Identity (a nil pointer) is
// anonymous, local-only mode.
type Identity struct {
	Username    string `json:"username"`
	AccessToken string `json:"access_token"`
}
