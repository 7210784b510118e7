package cmd

// session runs one command and is then closed.
type session interface {
	CombinedOutput(cmd string) ([]byte, error)
	Close() error
}

// exitCoder is implemented by sessions that learn the exit status out of band
// (the persistent shell) rather than through an *ssh.ExitError.
type exitCoder interface {
	LastExitCode() int
}
