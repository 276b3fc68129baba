package github_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	gh "github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/loru/internal/adapters/github"
	"go.trai.ch/loru/internal/core/domain"
	"go.trai.ch/loru/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newTestClient(t *testing.T, handler http.Handler) *gh.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := gh.NewClient(srv.Client())
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	client.BaseURL = base
	return client
}

var target = domain.ReleaseTarget{
	Owner: "acme", Repo: "loru", Tag: "v1.2.3", Name: "v1.2.3",
	Commit: "0123456789abcdef0123456789abcdef01234567",
}

func TestEnsureRelease_AlreadyExists(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/acme/loru/releases/tags/v1.2.3", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":1,"tag_name":"v1.2.3"}`))
	})
	mux.HandleFunc("POST /repos/acme/loru/releases", func(w http.ResponseWriter, _ *http.Request) {
		t.Error("release must not be recreated")
		w.WriteHeader(http.StatusInternalServerError)
	})

	ctrl := gomock.NewController(t)
	p := github.NewPublisherWithClient(newTestClient(t, mux), mocks.NewMockLogger(ctrl))

	created, err := p.EnsureRelease(context.Background(), target)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestEnsureRelease_CreatesMissing(t *testing.T) {
	var body map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/acme/loru/releases/tags/v1.2.3", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	})
	mux.HandleFunc("POST /repos/acme/loru/releases", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":2,"tag_name":"v1.2.3"}`))
	})

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any())

	p := github.NewPublisherWithClient(newTestClient(t, mux), mockLogger)
	created, err := p.EnsureRelease(context.Background(), target)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "v1.2.3", body["tag_name"])
	assert.Equal(t, "v1.2.3", body["name"])
	assert.Equal(t, target.Commit, body["target_commitish"], "the release targets the tagged commit")
}

func TestEnsureRelease_APIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/acme/loru/releases/tags/v1.2.3", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
	})

	ctrl := gomock.NewController(t)
	p := github.NewPublisherWithClient(newTestClient(t, mux), mocks.NewMockLogger(ctrl))

	_, err := p.EnsureRelease(context.Background(), target)
	assert.ErrorIs(t, err, domain.ErrReleasePublishFailed)
}

func TestEnsureRelease_NoToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any())

	p := github.NewPublisher(context.Background(), "", mockLogger)
	created, err := p.EnsureRelease(context.Background(), target)
	require.NoError(t, err)
	assert.False(t, created)
}
