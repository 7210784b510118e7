// Package sshserv is a throwaway SSH server that plays the router in tests
// and local runs. It accepts any client and answers commands through a
// caller-supplied function.
package sshserv

import (
	"bufio"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"net"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/crypto/ssh"
)

// Responder returns the output and exit status of one command line.
type Responder func(cmd string) (output string, exitCode int)

// ShellCommand is the exec request that starts a scripted shell; lines on
// stdin are then answered one by one, each followed by the echoed marker.
const ShellCommand = "/bin/sh -s -"

// Static answers cmd with output and everything else with "command not found".
func Static(cmd, output string) Responder {
	return func(got string) (string, int) {
		if strings.TrimSpace(got) == cmd {
			return output, 0
		}
		return "sh: " + got + ": command not found\n", 127
	}
}

// Server is a running test server.
type Server struct {
	ln      net.Listener
	cfg     *ssh.ServerConfig
	respond Responder
	wg      sync.WaitGroup

	mu    sync.Mutex
	conns map[net.Conn]struct{}
	execs int
}

// Start listens on listenAddr (use 127.0.0.1:0 for a free port).
func Start(listenAddr string, respond Responder) (*Server, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	signer, err := ssh.NewSignerFromKey(priv)
	if err != nil {
		return nil, err
	}
	cfg := &ssh.ServerConfig{NoClientAuth: true}
	cfg.AddHostKey(signer)

	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, err
	}
	s := &Server{ln: ln, cfg: cfg, respond: respond, conns: map[net.Conn]struct{}{}}
	s.wg.Add(1)
	go s.serve()
	return s, nil
}

// Addr is the address clients should dial.
func (s *Server) Addr() string { return s.ln.Addr().String() }

// Execs counts exec requests served so far, the shell included.
func (s *Server) Execs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.execs
}

// Close stops accepting, drops open connections and waits for handlers.
func (s *Server) Close() error {
	err := s.ln.Close()
	s.mu.Lock()
	for c := range s.conns {
		_ = c.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
	return err
}

func (s *Server) serve() {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			continue
		}
		s.mu.Lock()
		s.conns[conn] = struct{}{}
		s.mu.Unlock()
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(conn)
			s.mu.Lock()
			delete(s.conns, conn)
			s.mu.Unlock()
		}()
	}
}

func (s *Server) handleConn(raw net.Conn) {
	defer raw.Close()
	_, chans, reqs, err := ssh.NewServerConn(raw, s.cfg)
	if err != nil {
		return
	}
	go ssh.DiscardRequests(reqs)
	var wg sync.WaitGroup
	for nc := range chans {
		if nc.ChannelType() != "session" {
			_ = nc.Reject(ssh.UnknownChannelType, "only sessions")
			continue
		}
		ch, in, err := nc.Accept()
		if err != nil {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.handleSession(ch, in)
		}()
	}
	wg.Wait()
}

func (s *Server) handleSession(ch ssh.Channel, in <-chan *ssh.Request) {
	defer ch.Close()
	for req := range in {
		switch req.Type {
		case "pty-req", "env":
			_ = req.Reply(true, nil)
		case "exec":
			var payload struct{ Command string }
			if err := ssh.Unmarshal(req.Payload, &payload); err != nil {
				_ = req.Reply(false, nil)
				return
			}
			_ = req.Reply(true, nil)
			s.mu.Lock()
			s.execs++
			s.mu.Unlock()
			go ssh.DiscardRequests(in)
			if payload.Command == ShellCommand {
				s.emulateShell(ch)
				return
			}
			out, code := s.respond(payload.Command)
			_, _ = ch.Write([]byte(out))
			sendExitStatus(ch, code)
			return
		default:
			_ = req.Reply(false, nil)
		}
	}
}

func sendExitStatus(ch ssh.Channel, code int) {
	_, _ = ch.SendRequest("exit-status", false, ssh.Marshal(struct{ Status uint32 }{uint32(code)}))
}

// emulateShell answers "<cmd>; echo <marker> $?" lines until "exit".
func (s *Server) emulateShell(ch ssh.Channel) {
	br := bufio.NewReader(ch)
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" {
			sendExitStatus(ch, 0)
			return
		}
		cmd, marker := line, ""
		if i := strings.LastIndex(line, "; echo "); i >= 0 && strings.HasSuffix(line, " $?") {
			cmd = line[:i]
			marker = strings.Trim(strings.TrimSuffix(line[i+len("; echo "):], " $?"), `'"`)
		}
		out, code := s.respond(cmd)
		if out != "" && !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		_, _ = ch.Write([]byte(out))
		if marker != "" {
			_, _ = ch.Write([]byte(marker + " " + strconv.Itoa(code) + "\n"))
		}
	}
}
