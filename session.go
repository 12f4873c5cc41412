package simplesftp

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// Session is an authenticated but not yet connected SSH session.
// A Session is built for a single operation and never reused.
type Session struct {
	// Addr is the host:port to dial.
	Addr string

	// ClientConfig carries the user, auth methods and host key callback.
	ClientConfig *ssh.ClientConfig
}

// NewSession builds a Session from config. It performs no network I/O;
// the handshake happens when a Transport connects the session.
func NewSession(config Config) (*Session, error) {
	config = config.WithDefaults()

	if err := config.Validate(); err != nil {
		return nil, newError(ErrSessionCreation, "", err)
	}

	authMethods, err := buildAuthMethods(config)
	if err != nil {
		return nil, newError(ErrSessionCreation, "", err)
	}

	hostKeyCallback, err := buildHostKeyCallback(config)
	if err != nil {
		return nil, newError(ErrSessionCreation, "", fmt.Errorf("failed to configure host key verification: %w", err))
	}

	return &Session{
		Addr: config.Address(),
		ClientConfig: &ssh.ClientConfig{
			User:            config.Username,
			Auth:            authMethods,
			HostKeyCallback: hostKeyCallback,
		},
	}, nil
}

func buildAuthMethods(config Config) ([]ssh.AuthMethod, error) {
	var authMethods []ssh.AuthMethod

	if config.PrivateKey != "" || config.KeyPath != "" {
		keyAuth, err := buildPrivateKeyAuth(config)
		if err != nil {
			return nil, err
		}
		authMethods = append(authMethods, keyAuth)
	}

	if config.Password != "" {
		authMethods = append(authMethods, ssh.Password(config.Password))
	}

	if len(authMethods) == 0 {
		return nil, fmt.Errorf("no SSH authentication method configured")
	}
	return authMethods, nil
}

func buildPrivateKeyAuth(config Config) (ssh.AuthMethod, error) {
	var keyData []byte
	var err error

	if config.PrivateKey != "" {
		keyData = []byte(config.PrivateKey)
	} else {
		keyData, err = os.ReadFile(ExpandPath(config.KeyPath))
		if err != nil {
			return nil, fmt.Errorf("failed to read SSH key file: %w", err)
		}
	}

	signer, err := ssh.ParsePrivateKey(keyData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SSH private key: %w", err)
	}

	return ssh.PublicKeys(signer), nil
}

func buildHostKeyCallback(config Config) (ssh.HostKeyCallback, error) {
	if config.InsecureIgnoreHostKey {
		config.Logger.Warnf("SSH host key verification disabled for %s - this is insecure!", config.Address())
		return ssh.InsecureIgnoreHostKey(), nil
	}

	if config.KnownHostsFile != "" {
		expandedPath := ExpandPath(config.KnownHostsFile)
		callback, err := knownhosts.New(expandedPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load known_hosts file %s: %w", expandedPath, err)
		}
		return callback, nil
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		defaultKnownHosts := filepath.Join(homeDir, ".ssh", "known_hosts")
		if _, err := os.Stat(defaultKnownHosts); err == nil {
			callback, err := knownhosts.New(defaultKnownHosts)
			if err == nil {
				return callback, nil
			}
			config.Logger.Warnf("Could not parse known_hosts file %s: %v", defaultKnownHosts, err)
		}
	}

	config.Logger.Warnf("No known_hosts file found for %s - host key verification disabled.", config.Address())
	return func(hostname string, remote net.Addr, key ssh.PublicKey) error {
		return nil
	}, nil
}

// ExpandPath expands a leading ~/ to the home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
