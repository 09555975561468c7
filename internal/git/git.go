// Package git reads repository metadata with go-git. relnotes uses it to
// derive the issue base URL from a remote when none is configured.
package git

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
)

// DefaultRemote is the remote consulted when none is named.
const DefaultRemote = "origin"

var logger = slog.New(slog.DiscardHandler)

// SetLogger configures the logger for git operations.
// Pass nil to disable logging.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger = l
}

// openRepo opens a git repository at the specified path or current working directory.
// DetectDotGit lets path be any directory inside the work tree.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logger.Debug("opening repository", "path", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// IsGitRepository checks if path is within a git repository.
func IsGitRepository(path string) bool {
	_, err := openRepo(path)
	return err == nil
}

// RemoteURL returns the first URL of the named remote.
func RemoteURL(path, remote string) (string, error) {
	if remote == "" {
		remote = DefaultRemote
	}

	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	r, err := repo.Remote(remote)
	if err != nil {
		return "", fmt.Errorf("getting remote %s: %w", remote, err)
	}

	urls := r.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL", remote)
	}
	logger.Debug("resolved remote", "remote", remote, "url", urls[0])
	return urls[0], nil
}

// IssueBaseURL returns the issue base URL for the repository at path,
// derived from the named remote (e.g. https://github.com/owner/repo/issues/).
func IssueBaseURL(path, remote string) (string, error) {
	remoteURL, err := RemoteURL(path, remote)
	if err != nil {
		return "", err
	}
	base, ok := IssueBaseURLFromRemote(remoteURL)
	if !ok {
		return "", fmt.Errorf("cannot derive issue URL from remote %q", remoteURL)
	}
	return base, nil
}

// IssueBaseURLFromRemote converts a clone URL into an issue base URL.
// It accepts SCP-style (git@host:owner/repo.git), ssh://, git+ssh://,
// and http(s):// forms. Credentials and ports are dropped.
func IssueBaseURLFromRemote(remoteURL string) (string, bool) {
	remoteURL = strings.TrimSpace(remoteURL)
	if remoteURL == "" {
		return "", false
	}

	var host, repoPath string
	if isSCPLike(remoteURL) {
		hostPart, pathPart, _ := strings.Cut(remoteURL, ":")
		if at := strings.LastIndex(hostPart, "@"); at >= 0 {
			hostPart = hostPart[at+1:]
		}
		host, repoPath = hostPart, pathPart
	} else {
		u, err := url.Parse(remoteURL)
		if err != nil {
			return "", false
		}
		switch u.Scheme {
		case "http", "https", "ssh", "git+ssh", "git":
		default:
			return "", false
		}
		host, repoPath = u.Hostname(), u.Path
	}

	repoPath = strings.TrimSuffix(strings.Trim(repoPath, "/"), ".git")
	if host == "" || strings.Count(repoPath, "/") < 1 {
		return "", false
	}
	return "https://" + host + "/" + repoPath + "/issues/", true
}

// isSCPLike reports whether s uses the user@host:path form.
func isSCPLike(s string) bool {
	if strings.Contains(s, "://") {
		return false
	}
	colon := strings.Index(s, ":")
	slash := strings.Index(s, "/")
	return colon > 0 && (slash < 0 || colon < slash)
}
