package release

import (
	"time"

	"github.com/go-git/go-git/v5/plumbing/transport"
)

// SetClock overrides the time source used for commit and tag signatures.
func (r *Releaser) SetClock(now func() time.Time) {
	r.now = now
}

// SetPushURL sends pushes to url instead of the origin remote's address.
func (r *Releaser) SetPushURL(url string) {
	r.pushURL = url
}

// AuthFor exposes the push credentials chosen for url.
func (r *Releaser) AuthFor(url string) transport.AuthMethod {
	return r.authFor(url)
}
