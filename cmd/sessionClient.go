package cmd

// sessionClient hands out sessions on an established connection.
type sessionClient interface {
	NewSession() (session, error)
}
