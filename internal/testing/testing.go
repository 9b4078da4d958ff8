// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/tunepool/tunepool/internal/models"
)

// MockSource is a configurable test double for [catalog.Source].
//
// Pages holds the canned responses keyed by 1-based page number; missing
// pages return an empty slice. Set Err / PageErrs to simulate failures.
type MockSource struct {
	Pages    map[int][]models.Track
	PageErrs map[int]error
	Results  []models.Track
	Err      error

	mu        sync.Mutex
	pageCalls []int
	searches  []string
}

func (m *MockSource) GetPage(ctx context.Context, page int) ([]models.Track, error) {
	m.mu.Lock()
	m.pageCalls = append(m.pageCalls, page)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if err, ok := m.PageErrs[page]; ok {
		return nil, err
	}
	return m.Pages[page], nil
}

func (m *MockSource) Search(ctx context.Context, query string) ([]models.Track, error) {
	m.mu.Lock()
	m.searches = append(m.searches, query)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return m.Results, nil
}

func (m *MockSource) Name() string { return "mock" }

// PageCalls returns the page numbers requested so far, in order.
func (m *MockSource) PageCalls() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int{}, m.pageCalls...)
}

// Searches returns the queries issued so far, in order.
func (m *MockSource) Searches() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.searches...)
}

// UsableTrack builds a minimal usable track for tests.
func UsableTrack(id, title string, artists ...string) models.Track {
	return models.Track{
		ID:        id,
		Title:     title,
		Artists:   artists,
		StreamURL: "https://cdn.example/" + id + ".mp3",
		Genre:     models.UnknownField,
	}
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

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertFileAbsent(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("File should not exist: %s", path)
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
