package simplesftp

import (
	"bytes"
	"io"
	"os"
	"sync"
)

// eventLog records transport calls in order.
type eventLog struct {
	eventsMu sync.Mutex
	events   []string
}

func (l *eventLog) add(event string) {
	l.eventsMu.Lock()
	defer l.eventsMu.Unlock()
	l.events = append(l.events, event)
}

func (l *eventLog) Events() []string {
	l.eventsMu.Lock()
	defer l.eventsMu.Unlock()
	return append([]string(nil), l.events...)
}

func (l *eventLog) Count(event string) int {
	n := 0
	for _, e := range l.Events() {
		if e == event {
			n++
		}
	}
	return n
}

// MockTransport implements Transport against an in-memory file map and
// records every call.
type MockTransport struct {
	eventLog

	mu       sync.Mutex
	files    map[string][]byte
	errors   map[string]error
	sessions []*Session
}

// NewMockTransport creates a new mock transport.
func NewMockTransport() *MockTransport {
	return &MockTransport{
		files:  make(map[string][]byte),
		errors: make(map[string]error),
	}
}

// Ensure MockTransport implements Transport.
var _ Transport = (*MockTransport)(nil)

// SetError sets an error to be returned for a specific method:
// Connect, OpenChannel, Disconnect, Get, Put, CloseChannel or CloseStream.
func (m *MockTransport) SetError(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[method] = err
}

// SetFile stores content at a remote path.
func (m *MockTransport) SetFile(path string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = content
}

// File returns the content stored at a remote path.
func (m *MockTransport) File(path string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.files[path]
	return content, ok
}

func (m *MockTransport) err(method string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errors[method]
}

func (m *MockTransport) Connect(session *Session) (Conn, error) {
	m.add("connect")
	m.mu.Lock()
	m.sessions = append(m.sessions, session)
	m.mu.Unlock()
	if err := m.err("Connect"); err != nil {
		return nil, err
	}
	return &mockConn{transport: m}, nil
}

type mockConn struct {
	transport *MockTransport
}

func (c *mockConn) OpenChannel(kind string) (Channel, error) {
	c.transport.add("open:" + kind)
	if err := c.transport.err("OpenChannel"); err != nil {
		return nil, err
	}
	return &mockChannel{transport: c.transport}, nil
}

func (c *mockConn) Disconnect() error {
	c.transport.add("disconnect")
	return c.transport.err("Disconnect")
}

type mockChannel struct {
	transport *MockTransport
}

func (ch *mockChannel) Get(remotePath string) (io.ReadCloser, error) {
	ch.transport.add("get:" + remotePath)
	if err := ch.transport.err("Get"); err != nil {
		return nil, err
	}
	content, ok := ch.transport.File(remotePath)
	if !ok {
		return nil, os.ErrNotExist
	}
	return &mockStream{Reader: bytes.NewReader(content), transport: ch.transport}, nil
}

func (ch *mockChannel) Put(src io.Reader, remotePath string) error {
	ch.transport.add("put:" + remotePath)
	if err := ch.transport.err("Put"); err != nil {
		return err
	}
	content, err := io.ReadAll(src)
	if err != nil {
		return err
	}
	ch.transport.SetFile(remotePath, content)
	return nil
}

func (ch *mockChannel) Close() error {
	ch.transport.add("channel-close")
	return ch.transport.err("CloseChannel")
}

// mockStream is a remote read stream that reports whether it is still open.
type mockStream struct {
	*bytes.Reader
	transport *MockTransport
	closed    bool
}

func (s *mockStream) Read(p []byte) (int, error) {
	if s.closed {
		return 0, os.ErrClosed
	}
	return s.Reader.Read(p)
}

func (s *mockStream) Close() error {
	s.closed = true
	s.transport.add("stream-close")
	return s.transport.err("CloseStream")
}
