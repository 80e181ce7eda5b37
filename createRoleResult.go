package postgres

type CreateRoleResult struct {
	RoleName string
	// GeneratedPassword holds the credential minted when the source requested
	// generation without supplying a password. It is the only copy; the caller
	// must surface it or the role can never authenticate.
	GeneratedPassword string
}
