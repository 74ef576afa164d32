package maven_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/sigkit/maven"
)

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		in      string
		want    maven.Coordinate
		wantErr bool
	}{
		{
			in:   "org.jetbrains.kotlin:kotlin-android-sdk-annotations:1.0.0",
			want: maven.Coordinate{GroupID: "org.jetbrains.kotlin", ArtifactID: "kotlin-android-sdk-annotations", Version: "1.0.0"},
		},
		{
			in:   "org.example:annotations:sdk21:2.1",
			want: maven.Coordinate{GroupID: "org.example", ArtifactID: "annotations", Classifier: "sdk21", Version: "2.1"},
		},
		{in: "org.example:annotations", wantErr: true},
		{in: "org.example::1.0", wantErr: true},
		{in: "a:b:c:d:e", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := maven.ParseCoordinate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestJarURL(t *testing.T) {
	f := &maven.Fetcher{RepoURL: "https://repo.example"}
	c := maven.Coordinate{GroupID: "org.example.sdk", ArtifactID: "annotations", Version: "2.1", Classifier: "sdk21"}
	assert.Equal(t, "https://repo.example/org/example/sdk/annotations/2.1/annotations-2.1-sdk21.jar", f.JarURL(c))
}

func TestNewFetcherRepoFromEnv(t *testing.T) {
	t.Setenv(maven.EnvRepoURL, "https://mirror.example/maven2/")
	assert.Equal(t, "https://mirror.example/maven2", maven.NewFetcher(t.TempDir()).RepoURL)

	t.Setenv(maven.EnvRepoURL, "")
	assert.Equal(t, maven.DefaultRepoURL, maven.NewFetcher(t.TempDir()).RepoURL)
}

func TestFetchCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/org/example/annotations/1.0/annotations-1.0.jar" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("jar bytes"))
	}))
	defer srv.Close()

	t.Setenv(maven.EnvRepoURL, srv.URL)
	f := maven.NewFetcher(t.TempDir())
	c := maven.Coordinate{GroupID: "org.example", ArtifactID: "annotations", Version: "1.0"}

	path, err := f.Fetch(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.CacheDir, "org.example", "annotations-1.0.jar"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "jar bytes", string(data))

	again, err := f.Fetch(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, path, again)
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetchAllStopsAtFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if filepath.Base(r.URL.Path) == "missing-1.0.jar" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	t.Setenv(maven.EnvRepoURL, srv.URL)
	f := maven.NewFetcher(t.TempDir())

	paths, err := f.FetchAll(context.Background(), []maven.Coordinate{
		{GroupID: "org.example", ArtifactID: "present", Version: "1.0"},
		{GroupID: "org.example", ArtifactID: "missing", Version: "1.0"},
		{GroupID: "org.example", ArtifactID: "never", Version: "1.0"},
	})
	assert.ErrorContains(t, err, "HTTP 404")
	require.Len(t, paths, 1)
	assert.FileExists(t, paths[0])

	entries, err := os.ReadDir(filepath.Join(f.CacheDir, "org.example"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "failed download must not leave files behind")
}

func TestFetchCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	t.Setenv(maven.EnvRepoURL, srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := maven.NewFetcher(t.TempDir()).Fetch(ctx, maven.Coordinate{GroupID: "g", ArtifactID: "a", Version: "1"})
	assert.ErrorIs(t, err, context.Canceled)
}
