package core

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log"

	"github.com/gliderlabs/ssh"
	"github.com/spf13/afero"
	gossh "golang.org/x/crypto/ssh"

	"github.com/mbragg-spear/hostsh/core/config"
	"github.com/mbragg-spear/hostsh/core/proc"
	"github.com/mbragg-spear/hostsh/core/term"
)

// Server exposes interactive shell sessions over SSH. Every connection
// gets its own Session; the command registry is shared.
type Server struct {
	cfg       *config.Config
	registry  *proc.Registry
	fs        afero.Fs
	sshServer *ssh.Server
}

// NewServer builds an SSH front end for the shell. The host key is read
// through fs from the path named by the configuration.
func NewServer(cfg *config.Config, registry *proc.Registry, fs afero.Fs) (*Server, error) {
	srv := &Server{
		cfg:      cfg,
		registry: registry,
		fs:       fs,
	}

	srv.sshServer = &ssh.Server{
		Addr: fmt.Sprintf(":%d", cfg.SSH.Port),
		Handler: func(s ssh.Session) {
			srv.handleConnection(s)
		},
		PasswordHandler: func(ctx ssh.Context, password string) bool {
			return srv.checkPassword(password)
		},
	}

	if cfg.SSH.Banner != "" {
		banner := cfg.SSH.Banner + "\n"
		srv.sshServer.ServerConfigCallback = func(ctx ssh.Context) *gossh.ServerConfig {
			conf := &gossh.ServerConfig{}
			conf.BannerCallback = func(conn gossh.ConnMetadata) string {
				return banner
			}
			return conf
		}
	}

	keyPEM, err := cfg.HostKeyPEM(fs)
	if err != nil {
		return nil, fmt.Errorf("couldn't read host key: %w", err)
	}
	signer, err := gossh.ParsePrivateKey(keyPEM)
	if err != nil {
		return nil, fmt.Errorf("couldn't parse host key: %w", err)
	}
	srv.sshServer.AddHostKey(signer)

	return srv, nil
}

func (srv *Server) checkPassword(password string) bool {
	if srv.cfg.SSH.AllowAnyPassword {
		return true
	}

	ok := false
	for _, candidate := range srv.cfg.SSH.Passwords {
		if subtle.ConstantTimeCompare([]byte(password), []byte(candidate)) == 1 {
			ok = true
		}
	}
	return ok
}

func (srv *Server) handleConnection(s ssh.Session) {
	log.Printf("session start user=%q remote=%s", s.User(), s.RemoteAddr())

	session := NewSession(srv.cfg, term.NewRemote(s), srv.registry, srv.fs)
	session.User = s.User()

	if err := session.Run(); err != nil {
		log.Printf("session error user=%q: %v", s.User(), err)
		s.Exit(1)
		return
	}

	log.Printf("session end user=%q remote=%s", s.User(), s.RemoteAddr())
	s.Exit(0)
}

// ListenAndServe accepts connections until Shutdown is called.
func (srv *Server) ListenAndServe() error {
	log.Printf("starting SSH server on %s", srv.sshServer.Addr)
	return srv.sshServer.ListenAndServe()
}

// Shutdown stops accepting connections and waits for active sessions,
// bounded by ctx.
func (srv *Server) Shutdown(ctx context.Context) error {
	return srv.sshServer.Shutdown(ctx)
}
