package cmd

import "golang.org/x/crypto/ssh"

// sshSessionWrapper adapts *ssh.Session to session.
type sshSessionWrapper struct {
	s *ssh.Session
}

// CombinedOutput runs cmd and returns stdout and stderr interleaved.
func (w sshSessionWrapper) CombinedOutput(cmd string) ([]byte, error) {
	return w.s.CombinedOutput(cmd)
}

func (w sshSessionWrapper) Close() error {
	return w.s.Close()
}
