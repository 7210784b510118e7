package sshserv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

func dial(t *testing.T, addr string) *ssh.Client {
	t.Helper()
	c, err := ssh.Dial("tcp", addr, &ssh.ClientConfig{
		User:            "admin",
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         3 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestServer_ExecAnswersAndReportsExitStatus(t *testing.T) {
	srv, err := Start("127.0.0.1:0", Static("show ip hotspot", "host:\n"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })

	c := dial(t, srv.Addr())
	s, err := c.NewSession()
	require.NoError(t, err)
	out, err := s.CombinedOutput("show ip hotspot")
	require.NoError(t, err)
	require.Equal(t, "host:\n", string(out))

	s, err = c.NewSession()
	require.NoError(t, err)
	_, err = s.CombinedOutput("reboot")
	var ee *ssh.ExitError
	require.ErrorAs(t, err, &ee)
	require.Equal(t, 127, ee.ExitStatus())
	require.Equal(t, 2, srv.Execs())
}

func TestServer_CloseDropsClients(t *testing.T) {
	srv, err := Start("127.0.0.1:0", Static("x", ""))
	require.NoError(t, err)
	c := dial(t, srv.Addr())
	require.NoError(t, srv.Close())
	require.Error(t, c.Wait())
}
