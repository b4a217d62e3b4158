// package testing contains shared testing utilities
package testing

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// SingleUserJSON is a one-record response captured from randomuser.me.
const SingleUserJSON = `{"results":[{"gender":"female","name":{"title":"Ms","first":"Gema","last":"Herrera"},` +
	`"location":{"street":{"number":2498,"name":"Ronda de Toledo"},"city":"Burgos","state":"Castilla y León",` +
	`"country":"Spain","postcode":48420},"email":"gema.herrera@example.com",` +
	`"dob":{"date":"1948-07-17T21:22:37.218Z","age":77},` +
	`"picture":{"large":"https://randomuser.me/api/portraits/women/52.jpg",` +
	`"medium":"https://randomuser.me/api/portraits/med/women/52.jpg",` +
	`"thumbnail":"https://randomuser.me/api/portraits/thumb/women/52.jpg"},"nat":"ES"}],` +
	`"info":{"seed":"39f7c8a6519dbc07","results":1,"page":1,"version":"1.4"}}`

// EmptyResultsJSON is a response whose results array is empty.
const EmptyResultsJSON = `{"results":[],"info":{"seed":"39f7c8a6519dbc07","results":1,"page":1,"version":"1.4"}}`

// UserJSON builds a single results entry with a string postcode.
func UserJSON(first, last, email string) string {
	return fmt.Sprintf(`{"gender":"male","name":{"title":"Mr","first":%q,"last":%q},`+
		`"location":{"street":{"number":12,"name":"Main Street"},"city":"Springfield","state":"Oregon",`+
		`"country":"United States","postcode":"97477"},"email":%q,`+
		`"dob":{"date":"1990-01-02T03:04:05.000Z","age":35},`+
		`"picture":{"large":"https://randomuser.me/api/portraits/men/1.jpg"},"nat":"US"}`, first, last, email)
}

// ResultsJSON wraps entries in a top-level response document.
func ResultsJSON(entries ...string) string {
	return fmt.Sprintf(`{"results":[%s],"info":{"seed":"abc","results":%d,"page":1,"version":"1.4"}}`,
		strings.Join(entries, ","), len(entries))
}

// UsersServer is an [httptest.Server] that serves canned random user responses
// and records the requested batch sizes.
type UsersServer struct {
	*httptest.Server

	mu     sync.Mutex
	body   string
	status int
	sizes  []int
	block  chan struct{}
}

// NewUsersServer starts a server answering every request with body and status 200.
func NewUsersServer(t *testing.T, body string) *UsersServer {
	t.Helper()
	s := &UsersServer{body: body, status: http.StatusOK}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *UsersServer) serve(w http.ResponseWriter, r *http.Request) {
	size, _ := strconv.Atoi(r.URL.Query().Get("results"))

	s.mu.Lock()
	s.sizes = append(s.sizes, size)
	body, status, block := s.body, s.status, s.block
	s.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// Respond replaces the canned response.
func (s *UsersServer) Respond(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status, s.body = status, body
}

// Hold makes subsequent requests wait until the returned channel is closed.
func (s *UsersServer) Hold() chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.block = make(chan struct{})
	return s.block
}

// Release stops holding new requests.
func (s *UsersServer) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.block = nil
}

// Sizes returns the results parameter of every request received so far.
func (s *UsersServer) Sizes() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.sizes...)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
