// Package github publishes hosted releases on GitHub.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v57/github"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.trai.ch/loru/internal/core/domain"
	"go.trai.ch/loru/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/oauth2"
)

// Publisher implements ports.ReleasePublisher with the GitHub REST API.
// Without a token it logs a warning and publishes nothing.
type Publisher struct {
	client *github.Client
	logger ports.Logger
}

// NewPublisher creates a Publisher authenticated with token.
func NewPublisher(ctx context.Context, token string, logger ports.Logger) *Publisher {
	if token == "" {
		return &Publisher{logger: logger}
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	tc.Transport = otelhttp.NewTransport(tc.Transport)
	return &Publisher{client: github.NewClient(tc), logger: logger}
}

// NewPublisherWithClient creates a Publisher around an existing client.
func NewPublisherWithClient(client *github.Client, logger ports.Logger) *Publisher {
	return &Publisher{client: client, logger: logger}
}

// EnsureRelease creates the release for target.Tag unless one already exists.
func (p *Publisher) EnsureRelease(ctx context.Context, target domain.ReleaseTarget) (bool, error) {
	if p.client == nil {
		p.logger.Warn(fmt.Sprintf("No GitHub token configured, skipping release %s for %s/%s", target.Tag, target.Owner, target.Repo))
		return false, nil
	}

	_, resp, err := p.client.Repositories.GetReleaseByTag(ctx, target.Owner, target.Repo, target.Tag)
	switch {
	case err == nil:
		return false, nil
	case resp == nil || resp.StatusCode != http.StatusNotFound:
		return false, p.wrap(err, target)
	}

	name := target.Name
	if name == "" {
		name = target.Tag
	}
	release := &github.RepositoryRelease{
		TagName:              github.String(target.Tag),
		Name:                 github.String(name),
		GenerateReleaseNotes: github.Bool(true),
	}
	if target.Commit != "" {
		release.TargetCommitish = github.String(target.Commit)
	}
	_, _, err = p.client.Repositories.CreateRelease(ctx, target.Owner, target.Repo, release)
	if err != nil {
		return false, p.wrap(err, target)
	}

	p.logger.Info(fmt.Sprintf("Created GitHub release %s for %s/%s", target.Tag, target.Owner, target.Repo))
	return true, nil
}

func (p *Publisher) wrap(err error, target domain.ReleaseTarget) error {
	wrapped := zerr.With(errors.Join(domain.ErrReleasePublishFailed, err), "repository", target.Owner+"/"+target.Repo)
	return zerr.With(wrapped, "tag", target.Tag)
}
