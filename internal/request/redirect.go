// internal/request/redirect.go
//
// Redirect and response-status intent.  Nothing here performs an HTTP
// redirect; the fields record intent for the response stage.
package request

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrStatusOutOfRange is returned by SetRedirectWithStatus for codes
// outside the redirection range [300, 308].
var ErrStatusOutOfRange = errors.New("request: redirect status out of range [300, 308]")

// SetRedirect records a temporary (302) redirect to url.
func (r *PublishedRequest) SetRedirect(url string) error {
	if err := r.writable(); err != nil {
		return err
	}
	r.redirectURL = url
	r.redirectPermanent = false
	return nil
}

// SetRedirectPermanent records a permanent (301) redirect to url.
func (r *PublishedRequest) SetRedirectPermanent(url string) error {
	if err := r.writable(); err != nil {
		return err
	}
	r.redirectURL = url
	r.redirectPermanent = true
	return nil
}

// SetRedirectWithStatus records a redirect with an explicit status code.
// 301 and 308 mark the redirect permanent.  Codes other than the two
// conventional defaults (301, 302) are additionally stored verbatim as
// the response status, so a 303/307/308 survives to the response stage.
// No mutation happens when the code is rejected.
func (r *PublishedRequest) SetRedirectWithStatus(url string, status int) error {
	if err := r.writable(); err != nil {
		return err
	}
	if status < http.StatusMultipleChoices || status > http.StatusPermanentRedirect {
		return fmt.Errorf("status %d: %w", status, ErrStatusOutOfRange)
	}

	r.redirectURL = url
	r.redirectPermanent = status == http.StatusMovedPermanently ||
		status == http.StatusPermanentRedirect
	if status != http.StatusMovedPermanently && status != http.StatusFound {
		r.statusCode = status
	}
	return nil
}

// SetResponseStatus overrides the response status unconditionally.
func (r *PublishedRequest) SetResponseStatus(code int, description string) error {
	if err := r.writable(); err != nil {
		return err
	}
	r.statusCode = code
	r.statusDescription = description
	return nil
}
