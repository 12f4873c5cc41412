package simplesftp

import (
	"fmt"
	"io"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// ChannelSFTP is the channel kind used for file transfer.
const ChannelSFTP = "sftp"

// Transport connects sessions. This allows for substituting the SSH stack in tests.
type Transport interface {
	// Connect performs the network handshake and authentication for session.
	Connect(session *Session) (Conn, error)
}

// Conn is a connected session.
type Conn interface {
	// OpenChannel opens a sub-protocol channel of the given kind.
	OpenChannel(kind string) (Channel, error)
	// Disconnect closes the session. Any open channel must be closed first.
	Disconnect() error
}

// Channel is an open file-transfer channel.
type Channel interface {
	// Get opens remotePath for reading.
	Get(remotePath string) (io.ReadCloser, error)
	// Put writes all of src to remotePath, creating or truncating it.
	Put(src io.Reader, remotePath string) error
	// Close closes the channel.
	Close() error
}

// SSHTransport connects sessions with golang.org/x/crypto/ssh and opens
// SFTP channels with github.com/pkg/sftp.
type SSHTransport struct{}

// Ensure SSHTransport implements Transport.
var _ Transport = SSHTransport{}

// Connect dials the session address and authenticates.
func (SSHTransport) Connect(session *Session) (Conn, error) {
	client, err := ssh.Dial("tcp", session.Addr, session.ClientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", session.Addr, err)
	}
	return &sshConn{client: client}, nil
}

type sshConn struct {
	client *ssh.Client
}

func (c *sshConn) OpenChannel(kind string) (Channel, error) {
	if kind != ChannelSFTP {
		return nil, fmt.Errorf("unsupported channel kind %q", kind)
	}
	client, err := sftp.NewClient(c.client)
	if err != nil {
		return nil, fmt.Errorf("failed to create SFTP client: %w", err)
	}
	return &sftpChannel{client: client}, nil
}

func (c *sshConn) Disconnect() error {
	return c.client.Close()
}

type sftpChannel struct {
	client *sftp.Client
}

func (ch *sftpChannel) Get(remotePath string) (io.ReadCloser, error) {
	file, err := ch.client.Open(remotePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open remote file: %w", err)
	}
	return file, nil
}

func (ch *sftpChannel) Put(src io.Reader, remotePath string) error {
	file, err := ch.client.Create(remotePath)
	if err != nil {
		return fmt.Errorf("failed to create remote file: %w", err)
	}

	if _, err := file.ReadFrom(src); err != nil {
		file.Close()
		return fmt.Errorf("failed to copy file content: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close remote file: %w", err)
	}
	return nil
}

func (ch *sftpChannel) Close() error {
	return ch.client.Close()
}
