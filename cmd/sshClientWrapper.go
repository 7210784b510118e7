package cmd

import (
	"errors"

	"golang.org/x/crypto/ssh"
)

var errNilClient = errors.New("nil ssh client")

// sshClientWrapper adapts *ssh.Client to sessionClient; every session is a
// fresh exec channel.
type sshClientWrapper struct {
	c *ssh.Client
}

func (w sshClientWrapper) NewSession() (session, error) {
	if w.c == nil {
		return nil, errNilClient
	}
	s, err := w.c.NewSession()
	if err != nil {
		return nil, err
	}
	return sshSessionWrapper{s}, nil
}
