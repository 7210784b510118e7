package cmd

import (
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

// dialOptions carries everything needed to log into the router.
type dialOptions struct {
	Target     string
	User       string
	Password   string
	KeyPath    string
	Passphrase string
	KnownHosts string
	StrictHost bool
	Timeout    time.Duration
}

// dialOptionsFor combines the resolved profile with the connection flags.
func dialOptionsFor(p *profile) dialOptions {
	return dialOptions{
		Target:     p.target(),
		User:       p.SSHHost.User,
		Password:   cfgPassword,
		KeyPath:    cfgKeyPath,
		Passphrase: cfgPassphrase,
		KnownHosts: cfgKnownHosts,
		StrictHost: cfgStrictHost,
		Timeout:    cfgConnTimeout,
	}
}

func (o dialOptions) authMethods() ([]ssh.AuthMethod, error) {
	var auths []ssh.AuthMethod
	if o.KeyPath != "" {
		signer, err := loadSigner(o.KeyPath, o.Passphrase)
		if err != nil {
			return nil, fmt.Errorf("load key: %w", err)
		}
		auths = append(auths, ssh.PublicKeys(signer))
	}
	if o.Password != "" {
		auths = append(auths, ssh.Password(o.Password))
		// Keenetic firmware offers only keyboard-interactive on some builds.
		pw := o.Password
		auths = append(auths, ssh.KeyboardInteractive(func(_, _ string, questions []string, _ []bool) ([]string, error) {
			answers := make([]string, len(questions))
			for i := range answers {
				answers[i] = pw
			}
			return answers, nil
		}))
	}
	if sock := os.Getenv("SSH_AUTH_SOCK"); sock != "" {
		if conn, err := net.Dial("unix", sock); err == nil {
			auths = append(auths, ssh.PublicKeysCallback(agent.NewClient(conn).Signers))
		}
	}
	return auths, nil
}

func (o dialOptions) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if !o.StrictHost {
		return ssh.InsecureIgnoreHostKey(), nil
	}
	if _, err := os.Stat(o.KnownHosts); err != nil {
		return nil, fmt.Errorf("known_hosts file not found at %s and strict-host-key is enabled", o.KnownHosts)
	}
	cb, err := knownhosts.New(o.KnownHosts)
	if err != nil {
		return nil, fmt.Errorf("known_hosts: %w", err)
	}
	return cb, nil
}

// dialSSH connects and authenticates. The timeout bounds both the TCP connect
// and the SSH handshake.
func dialSSH(o dialOptions) (*ssh.Client, error) {
	auths, err := o.authMethods()
	if err != nil {
		return nil, err
	}
	hostKeyCB, err := o.hostKeyCallback()
	if err != nil {
		return nil, err
	}
	cfg := &ssh.ClientConfig{
		User:            o.User,
		Auth:            auths,
		HostKeyCallback: hostKeyCB,
		Timeout:         o.Timeout,
	}

	d := net.Dialer{Timeout: o.Timeout}
	conn, err := d.Dial("tcp", o.Target)
	if err != nil {
		return nil, err
	}
	if o.Timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(o.Timeout))
	}
	c, chans, reqs, err := ssh.NewClientConn(conn, o.Target, cfg)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	_ = conn.SetDeadline(time.Time{})
	return ssh.NewClient(c, chans, reqs), nil
}
