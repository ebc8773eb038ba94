// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/lukee-d/friendify/internal/models"
	"github.com/lukee-d/friendify/internal/services"
	"golang.org/x/oauth2"
)

// MockService is a test double for [services.Service] with canned responses.
type MockService struct {
	Profile    *services.Profile
	Tracks     []models.TrackInfo
	ProfileErr error
	TracksErr  error
}

func (m *MockService) AuthURL(state string) string {
	return "https://auth.example.com/authorize?state=" + state
}

func (m *MockService) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if code == "" {
		return nil, errors.New("missing code")
	}
	return &oauth2.Token{AccessToken: "mock_access_token"}, nil
}

func (m *MockService) UserProfile(ctx context.Context, token *oauth2.Token) (*services.Profile, error) {
	if m.ProfileErr != nil {
		return nil, m.ProfileErr
	}
	if m.Profile != nil {
		return m.Profile, nil
	}
	return &services.Profile{ID: "mock_user", DisplayName: "Mock User"}, nil
}

func (m *MockService) TopTracks(ctx context.Context, token *oauth2.Token, limit int, timeRange string) ([]models.TrackInfo, error) {
	if m.TracksErr != nil {
		return nil, m.TracksErr
	}
	return m.Tracks, nil
}

func (m *MockService) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
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

// SequencedRoundTripper replays a fixed list of responses in order.
type SequencedRoundTripper struct {
	responses []*http.Response
	index     int
}

func NewSequencedRoundTripper(responses ...*http.Response) *SequencedRoundTripper {
	return &SequencedRoundTripper{responses: responses}
}

func (s *SequencedRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	if s.index >= len(s.responses) {
		return nil, errors.New("no more responses")
	}
	resp := s.responses[s.index]
	s.index++
	return resp, nil
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

var _ io.ReadCloser = (*FCloser)(nil)

func MustReadAll(t *testing.T, r io.Reader) string {
	t.Helper()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("failed to read: %v", err)
	}
	return string(data)
}
