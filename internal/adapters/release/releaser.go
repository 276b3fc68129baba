// Package release bumps a manifest version and records the release in git.
package release

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.trai.ch/loru/internal/core/domain"
	"go.trai.ch/loru/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	versionKey     = "version"
	initialVersion = "0.0.0"
	originRemote   = "origin"
)

var fallbackSignature = object.Signature{Name: "loru", Email: "loru@localhost"}

// Releaser implements ports.Releaser with go-git.
type Releaser struct {
	publisher ports.ReleasePublisher
	logger    ports.Logger
	now       func() time.Time

	token   string
	pushURL string
}

// NewReleaser creates a new Releaser.
func NewReleaser(publisher ports.ReleasePublisher, logger ports.Logger) *Releaser {
	return &Releaser{publisher: publisher, logger: logger, now: time.Now}
}

// WithToken authenticates pushes to http(s) remotes.
func (r *Releaser) WithToken(token string) *Releaser {
	r.token = token
	return r
}

// BumpAndRelease increments the manifest version, commits it, tags the commit
// and ensures the hosted release exists. The tag, and the branch when a commit
// was made, are pushed to origin before the hosted release is created.
//
// With Resume the manifest is left alone and the current version is tagged and released.
// With FixMissing an existing tag for the next version is accepted and only the
// missing hosted release is backfilled.
func (r *Releaser) BumpAndRelease(ctx context.Context, req domain.BumpRequest) (*domain.Release, error) {
	if !req.Resume {
		if _, err := domain.ParseBumpLevel(string(req.Level)); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "cannot bump version"), "level", req.Level)
		}
	}

	repo, err := git.PlainOpenWithOptions(req.Dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrRepositoryOpenFailed, err), "dir", req.Dir)
	}

	file := req.File
	if file == "" {
		file = domain.DefaultManifestFile
	}
	manifestPath := file
	if !filepath.IsAbs(manifestPath) {
		manifestPath = filepath.Join(req.Dir, file)
	}

	// #nosec G304 -- manifest path is chosen by the user on the command line
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrManifestReadFailed, err), "file", manifestPath)
	}

	current, err := readVersion(data)
	if err != nil {
		return nil, zerr.With(err, "file", manifestPath)
	}

	version := current
	if !req.Resume {
		version = bump(current, req.Level)
	}

	rel := &domain.Release{Version: version.String(), Tag: "v" + version.String()}

	tagExists, err := hasTag(repo, rel.Tag)
	if err != nil {
		return nil, err
	}

	sig := signature(repo, r.now())

	switch {
	case req.Resume:
		head, err := repo.Head()
		if err != nil {
			return nil, zerr.With(errors.Join(domain.ErrCommitFailed, err), "dir", req.Dir)
		}
		rel.Commit = head.Hash().String()
	case tagExists && !req.FixMissing:
		err := zerr.Wrap(domain.ErrTagExists, "rerun with --fix-missing to backfill the release")
		return nil, zerr.With(err, "tag", rel.Tag)
	case tagExists:
		r.logger.Warn(fmt.Sprintf("Tag %s already exists, backfilling missing release only", rel.Tag))
		hash, err := taggedCommit(repo, rel.Tag)
		if err != nil {
			return nil, err
		}
		rel.Commit = hash.String()
	default:
		hash, err := r.commitVersion(repo, manifestPath, data, version, sig)
		if err != nil {
			return nil, err
		}
		rel.Commit = hash.String()
		r.logger.Info(fmt.Sprintf("Bumped %s from %s to %s", filepath.Base(manifestPath), current, version))
	}

	if !tagExists {
		if _, err := repo.CreateTag(rel.Tag, plumbing.NewHash(rel.Commit), &git.CreateTagOptions{
			Tagger:  sig,
			Message: "Release " + rel.Tag,
		}); err != nil {
			return nil, zerr.With(errors.Join(domain.ErrTagCreateFailed, err), "tag", rel.Tag)
		}
		rel.TagCreated = true
		r.logger.Info("Created tag " + rel.Tag)
	}

	remoteURL, ok := originURL(repo)
	if !ok {
		r.logger.Warn("No origin remote found, skipping push and hosted release")
		return rel, nil
	}

	committed := !tagExists && !req.Resume
	if err := r.push(ctx, repo, rel.Tag, committed); err != nil {
		return rel, err
	}

	owner, name, ok := ParseRepositoryURL(remoteURL)
	if !ok {
		r.logger.Warn("Origin is not a GitHub remote, skipping hosted release")
		return rel, nil
	}

	created, err := r.publisher.EnsureRelease(ctx, domain.ReleaseTarget{
		Owner:  owner,
		Repo:   name,
		Tag:    rel.Tag,
		Name:   rel.Tag,
		Commit: rel.Commit,
	})
	if err != nil {
		return rel, err
	}
	rel.ReleaseCreated = created

	return rel, nil
}

func (r *Releaser) commitVersion(
	repo *git.Repository,
	manifestPath string,
	data []byte,
	version *semver.Version,
	sig *object.Signature,
) (plumbing.Hash, error) {
	updated, err := sjson.SetBytes(data, versionKey, version.String())
	if err != nil {
		return plumbing.ZeroHash, zerr.With(errors.Join(domain.ErrManifestWriteFailed, err), "file", manifestPath)
	}
	if err := os.WriteFile(manifestPath, updated, domain.FilePerm); err != nil {
		return plumbing.ZeroHash, zerr.With(errors.Join(domain.ErrManifestWriteFailed, err), "file", manifestPath)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, errors.Join(domain.ErrCommitFailed, err)
	}
	rel, err := worktreeRelative(wt, manifestPath)
	if err != nil {
		return plumbing.ZeroHash, zerr.With(errors.Join(domain.ErrCommitFailed, err), "file", manifestPath)
	}
	if _, err := wt.Add(rel); err != nil {
		return plumbing.ZeroHash, zerr.With(errors.Join(domain.ErrCommitFailed, err), "file", rel)
	}

	hash, err := wt.Commit("chore(release): v"+version.String(), &git.CommitOptions{Author: sig})
	if err != nil {
		return plumbing.ZeroHash, errors.Join(domain.ErrCommitFailed, err)
	}
	return hash, nil
}

func readVersion(data []byte) (*semver.Version, error) {
	if !gjson.ValidBytes(data) {
		return nil, zerr.Wrap(domain.ErrManifestReadFailed, "manifest is not valid JSON")
	}
	raw := initialVersion
	if v := gjson.GetBytes(data, versionKey); v.Exists() {
		raw = v.String()
	}
	version, err := semver.NewVersion(raw)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrInvalidVersion, err), "version", raw)
	}
	return version, nil
}

func bump(v *semver.Version, level domain.BumpLevel) *semver.Version {
	var next semver.Version
	switch level {
	case domain.BumpMajor:
		next = v.IncMajor()
	case domain.BumpMinor:
		next = v.IncMinor()
	default:
		next = v.IncPatch()
	}
	return &next
}

func hasTag(repo *git.Repository, tag string) (bool, error) {
	_, err := repo.Tag(tag)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, git.ErrTagNotFound):
		return false, nil
	default:
		return false, zerr.With(errors.Join(domain.ErrTagCreateFailed, err), "tag", tag)
	}
}

// taggedCommit resolves annotated and lightweight tags to their commit.
func taggedCommit(repo *git.Repository, tag string) (plumbing.Hash, error) {
	ref, err := repo.Tag(tag)
	if err != nil {
		return plumbing.ZeroHash, zerr.With(errors.Join(domain.ErrTagCreateFailed, err), "tag", tag)
	}
	obj, err := repo.TagObject(ref.Hash())
	if err != nil {
		return ref.Hash(), nil
	}
	commit, err := obj.Commit()
	if err != nil {
		return plumbing.ZeroHash, zerr.With(errors.Join(domain.ErrTagCreateFailed, err), "tag", tag)
	}
	return commit.Hash, nil
}

// signature prefers the repository's user, then the global git config, then a fixed identity.
func signature(repo *git.Repository, when time.Time) *object.Signature {
	sig := fallbackSignature
	sig.When = when

	scopes := []func() (*config.Config, error){
		repo.Config,
		func() (*config.Config, error) { return repo.ConfigScoped(config.GlobalScope) },
	}
	for _, load := range scopes {
		cfg, err := load()
		if err != nil || cfg.User.Name == "" || cfg.User.Email == "" {
			continue
		}
		sig.Name = cfg.User.Name
		sig.Email = cfg.User.Email
		return &sig
	}
	return &sig
}

func worktreeRelative(wt *git.Worktree, path string) (string, error) {
	root := wt.Filesystem.Root()
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// push sends the tag, and with withBranch the checked out branch, to origin.
func (r *Releaser) push(ctx context.Context, repo *git.Repository, tag string, withBranch bool) error {
	tagRef := plumbing.NewTagReferenceName(tag)
	specs := []config.RefSpec{config.RefSpec(tagRef + ":" + tagRef)}

	if withBranch {
		head, err := repo.Head()
		if err != nil {
			return zerr.With(errors.Join(domain.ErrPushFailed, err), "tag", tag)
		}
		if head.Name().IsBranch() {
			specs = append([]config.RefSpec{config.RefSpec(head.Name() + ":" + head.Name())}, specs...)
		}
	}

	url := r.pushURL
	if url == "" {
		url, _ = originURL(repo)
	}

	err := repo.PushContext(ctx, &git.PushOptions{
		RemoteName: originRemote,
		RemoteURL:  r.pushURL,
		RefSpecs:   specs,
		Auth:       r.authFor(url),
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return zerr.With(errors.Join(domain.ErrPushFailed, err), "tag", tag)
	}

	r.logger.Info("Pushed " + tag + " to " + originRemote)
	return nil
}

// authFor returns token credentials for http(s) remotes; other transports use their defaults.
func (r *Releaser) authFor(url string) transport.AuthMethod {
	if r.token == "" {
		return nil
	}
	if !strings.HasPrefix(url, "https://") && !strings.HasPrefix(url, "http://") {
		return nil
	}
	return &githttp.BasicAuth{Username: "x-access-token", Password: r.token}
}

func originURL(repo *git.Repository) (string, bool) {
	remote, err := repo.Remote(originRemote)
	if err != nil || len(remote.Config().URLs) == 0 {
		return "", false
	}
	return remote.Config().URLs[0], true
}

// ParseRepositoryURL returns the owner and repository name of a GitHub remote URL.
// It accepts https, ssh and scp-like forms.
func ParseRepositoryURL(url string) (owner, name string, ok bool) {
	const host = "github.com"

	idx := strings.Index(url, host)
	if idx < 0 {
		return "", "", false
	}
	path := strings.TrimLeft(url[idx+len(host):], ":/")
	path = strings.TrimSuffix(strings.TrimSuffix(path, "/"), ".git")

	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
