// Package maven downloads annotation archives from a Maven repository.
package maven

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("sigkit.maven")

const (
	DefaultRepoURL = "https://repo1.maven.org/maven2"
	EnvRepoURL     = "MAVEN_REPO_URL"
)

// Coordinate identifies a single artifact.
type Coordinate struct {
	GroupID    string
	ArtifactID string
	Version    string
	Classifier string
}

// ParseCoordinate accepts groupId:artifactId:version and
// groupId:artifactId:classifier:version.
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(s, ":")
	for _, p := range parts {
		if p == "" {
			return Coordinate{}, fmt.Errorf("invalid Maven coordinate: %q has an empty part", s)
		}
	}
	switch len(parts) {
	case 3:
		return Coordinate{GroupID: parts[0], ArtifactID: parts[1], Version: parts[2]}, nil
	case 4:
		return Coordinate{GroupID: parts[0], ArtifactID: parts[1], Classifier: parts[2], Version: parts[3]}, nil
	default:
		return Coordinate{}, fmt.Errorf("invalid Maven coordinate: %s (expected groupId:artifactId:version or groupId:artifactId:classifier:version)", s)
	}
}

func (c Coordinate) String() string {
	if c.Classifier != "" {
		return c.GroupID + ":" + c.ArtifactID + ":" + c.Classifier + ":" + c.Version
	}
	return c.GroupID + ":" + c.ArtifactID + ":" + c.Version
}

// FileName is the jar's name inside the repository and the cache.
func (c Coordinate) FileName() string {
	if c.Classifier != "" {
		return fmt.Sprintf("%s-%s-%s.jar", c.ArtifactID, c.Version, c.Classifier)
	}
	return fmt.Sprintf("%s-%s.jar", c.ArtifactID, c.Version)
}

type Fetcher struct {
	RepoURL string
	// CacheDir holds downloaded jars. A jar already present is not fetched
	// again.
	CacheDir   string
	httpClient *http.Client
}

// NewFetcher uses $MAVEN_REPO_URL when set.
func NewFetcher(cacheDir string) *Fetcher {
	repoURL := os.Getenv(EnvRepoURL)
	if repoURL == "" {
		repoURL = DefaultRepoURL
	}
	return &Fetcher{
		RepoURL:    strings.TrimSuffix(repoURL, "/"),
		CacheDir:   cacheDir,
		httpClient: &http.Client{},
	}
}

func (f *Fetcher) JarURL(c Coordinate) string {
	groupPath := strings.ReplaceAll(c.GroupID, ".", "/")
	return fmt.Sprintf("%s/%s/%s/%s/%s", f.RepoURL, groupPath, c.ArtifactID, c.Version, c.FileName())
}

// Fetch returns the local path of the jar for c, downloading it first if
// the cache does not have it.
func (f *Fetcher) Fetch(ctx context.Context, c Coordinate) (string, error) {
	destPath := filepath.Join(f.CacheDir, c.GroupID, c.FileName())
	if _, err := os.Stat(destPath); err == nil {
		log.Debugf("using cached %s", destPath)
		return destPath, nil
	}

	url := f.JarURL(c)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", c, err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", c, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: HTTP %d for %s", c, resp.StatusCode, url)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	// An interrupted download must not leave a truncated jar in the cache.
	tmp, err := os.CreateTemp(filepath.Dir(destPath), c.FileName()+".*.part")
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write %s: %w", c, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write %s: %w", c, err)
	}
	if err := os.Rename(tmp.Name(), destPath); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write %s: %w", c, err)
	}

	log.Infof("downloaded %s to %s", c, destPath)
	return destPath, nil
}

// FetchAll fetches every coordinate in order and stops at the first failure.
func (f *Fetcher) FetchAll(ctx context.Context, coords []Coordinate) ([]string, error) {
	paths := make([]string, 0, len(coords))
	for _, c := range coords {
		path, err := f.Fetch(ctx, c)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
