package services

import "net/http"

// Test-only accessors for unexported fields, used by the external test
// package to avoid an import cycle with internal/testing.

func (s *SpotifyService) SetHTTPClientForTest(c *http.Client) { s.httpClient = c }

func (s *SpotifyService) RedirectURLForTest() string { return s.config.RedirectURL }
