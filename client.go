package simplesftp

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Service defines the upload and download operations.
// This allows for mocking in callers' tests.
type Service interface {
	// Upload writes everything read from src to remotePath.
	Upload(src io.Reader, remotePath string) error
	// UploadFile uploads a local file to remotePath.
	UploadFile(localPath, remotePath string) error
	// Download copies remotePath into a local file.
	Download(remotePath, localPath string) error
	// OnDownload passes the open remote stream for remotePath to fn.
	OnDownload(remotePath string, fn func(r io.Reader) error) error
}

// Client performs each operation over its own SSH session and SFTP channel.
// A Client holds no connection state and is safe for concurrent use.
type Client struct {
	config    Config
	transport Transport
	logger    Logger
}

// Ensure Client implements Service.
var _ Service = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithTransport sets the transport used to connect sessions.
func WithTransport(transport Transport) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

// NewClient creates a new Client. The config is validated when an
// operation builds its session, not here.
func NewClient(config Config, opts ...Option) *Client {
	config = config.WithDefaults()
	c := &Client{
		config:    config,
		transport: SSHTransport{},
		logger:    config.Logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Upload writes everything read from src to remotePath, creating or
// truncating it. An empty src produces an empty remote file.
func (c *Client) Upload(src io.Reader, remotePath string) error {
	err := c.withChannel(func(ch Channel) error {
		return c.put(ch, src, remotePath)
	})
	if err != nil {
		return newError(ErrUpload, remotePath, err)
	}
	return nil
}

// UploadFile uploads the file at localPath to remotePath. The local file is
// opened before any connection is made.
func (c *Client) UploadFile(localPath, remotePath string) error {
	localFile, err := os.Open(localPath)
	if err != nil {
		c.logger.Warnf("Error while opening local file: %s: %v", localPath, err)
		return newError(ErrUpload, remotePath, fmt.Errorf("failed to open local file: %w", err))
	}
	defer localFile.Close()

	return c.Upload(localFile, remotePath)
}

// Download copies remotePath into localPath, creating parent directories
// and truncating an existing file. The copy is not atomic: if the transfer
// fails part way, a partial localPath may remain.
func (c *Client) Download(remotePath, localPath string) error {
	err := c.withChannel(func(ch Channel) error {
		remoteFile, err := c.get(ch, remotePath)
		if err != nil {
			return err
		}
		defer remoteFile.Close()

		if err := copyToFile(remoteFile, localPath); err != nil {
			c.logger.Warnf("Error while trying to copy remote stream to file: %s: %v", localPath, err)
			return err
		}
		return nil
	})
	if err != nil {
		return newError(ErrDownload, remotePath, err)
	}
	return nil
}

// OnDownload opens remotePath and calls fn exactly once with the open
// stream. The stream is closed after fn returns, whatever the outcome.
// An error from fn takes precedence over an error closing the stream.
func (c *Client) OnDownload(remotePath string, fn func(r io.Reader) error) error {
	err := c.withChannel(func(ch Channel) (err error) {
		remoteFile, err := c.get(ch, remotePath)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := remoteFile.Close(); cerr != nil {
				c.logger.Warnf("Error while closing remote stream %s: %v", remotePath, cerr)
				if err == nil {
					err = fmt.Errorf("failed to close remote stream: %w", cerr)
				}
			}
		}()

		return fn(remoteFile)
	})
	if err != nil {
		return newError(ErrDownload, remotePath, err)
	}
	return nil
}

func (c *Client) get(ch Channel, remotePath string) (io.ReadCloser, error) {
	c.logger.Debugf("Trying to download file: %s", remotePath)
	r, err := ch.Get(remotePath)
	if err != nil {
		c.logger.Warnf("Error while downloading file from: %s: %v", remotePath, err)
		return nil, err
	}
	return r, nil
}

func (c *Client) put(ch Channel, src io.Reader, remotePath string) error {
	c.logger.Debugf("Trying to upload file to: %s", remotePath)
	if err := ch.Put(src, remotePath); err != nil {
		c.logger.Warnf("Error while uploading file to: %s: %v", remotePath, err)
		return err
	}
	return nil
}

func copyToFile(src io.Reader, localPath string) error {
	if dir := filepath.Dir(localPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create local directory %s: %w", dir, err)
		}
	}

	localFile, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("failed to create local file: %w", err)
	}

	if _, err := io.Copy(localFile, src); err != nil {
		localFile.Close()
		return fmt.Errorf("failed to copy file content: %w", err)
	}

	if err := localFile.Close(); err != nil {
		return fmt.Errorf("failed to close local file: %w", err)
	}
	return nil
}
