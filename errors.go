package simplesftp

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionCreation is returned when a session cannot be built from the config.
	ErrSessionCreation = errors.New("sftp session creation failed")
	// ErrConnection is returned when connecting or opening the SFTP channel fails.
	ErrConnection = errors.New("sftp connection failed")
	// ErrUpload is returned by every failed upload operation.
	ErrUpload = errors.New("sftp upload failed")
	// ErrDownload is returned by every failed download operation.
	ErrDownload = errors.New("sftp download failed")
)

// Error carries one of the sentinel kinds above together with the cause.
// Both are reachable with errors.Is and errors.As.
type Error struct {
	// Kind is one of ErrSessionCreation, ErrConnection, ErrUpload or ErrDownload.
	Kind error

	// Path is the remote path involved, if any.
	Path string

	// Err is the underlying cause.
	Err error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func newError(kind error, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}
