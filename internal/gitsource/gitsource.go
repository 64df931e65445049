package gitsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// Result reports what Sync did.
type Result int

const (
	Cloned Result = iota
	Updated
	UpToDate
)

func (r Result) String() string {
	switch r {
	case Cloned:
		return "cloned"
	case Updated:
		return "updated"
	}
	return "already up to date"
}

// Sync clones a git repository if it doesn't exist at the given path,
// or pulls the latest changes if it does. Progress goes to progress, which
// may be nil.
func Sync(ctx context.Context, repoURL, localPath string, progress io.Writer) (Result, error) {
	_, err := os.Stat(localPath)
	if errors.Is(err, os.ErrNotExist) {
		slog.Info("Cloning deck repository", "url", repoURL, "path", localPath)
		_, err := git.PlainCloneContext(ctx, localPath, false, &git.CloneOptions{
			URL:      repoURL,
			Progress: progress,
		})
		if err != nil {
			return Cloned, fmt.Errorf("failed to clone repo %s: %w", repoURL, err)
		}
		return Cloned, nil
	}
	if err != nil {
		return UpToDate, fmt.Errorf("error checking path %s: %w", localPath, err)
	}

	slog.Info("Pulling deck repository", "path", localPath)
	repo, err := git.PlainOpen(localPath)
	if err != nil {
		return UpToDate, fmt.Errorf("failed to open existing repo at %s: %w", localPath, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return UpToDate, fmt.Errorf("failed to get worktree for repo at %s: %w", localPath, err)
	}

	err = worktree.PullContext(ctx, &git.PullOptions{
		RemoteName: "origin",
		Progress:   progress,
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return UpToDate, nil
	}
	if err != nil {
		return UpToDate, fmt.Errorf("failed to pull changes for repo at %s: %w", localPath, err)
	}
	return Updated, nil
}

// LocalPath maps a repository URL to a checkout directory under baseDir,
// e.g. https://github.com/me/cards.git -> baseDir/github.com/me/cards.
// scp-style URLs (git@host:me/cards.git) are accepted too.
func LocalPath(baseDir, repoURL string) (string, error) {
	parsedURL, err := url.Parse(repoURL)
	if err != nil || (parsedURL.Scheme != "https" && parsedURL.Scheme != "http" && parsedURL.Scheme != "ssh") {
		if strings.Contains(repoURL, "@") {
			parts := strings.Split(repoURL, ":")
			if len(parts) == 2 {
				hostAndUser := strings.Split(parts[0], "@")
				if len(hostAndUser) == 2 {
					host := hostAndUser[1]
					repoPath := strings.TrimSuffix(parts[1], ".git")
					return filepath.Join(baseDir, host, repoPath), nil
				}
			}
		}
		return "", fmt.Errorf("could not parse git URL: %s", repoURL)
	}

	sanitizedPath := strings.TrimSuffix(parsedURL.Path, ".git")
	return filepath.Join(baseDir, parsedURL.Hostname(), sanitizedPath), nil
}
