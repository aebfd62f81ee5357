// Package update checks GitHub releases for newer snowattach builds and
// replaces the running binary in place.
package update

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/google/go-github/v67/github"
	"golang.org/x/oauth2"
)

// DefaultOwner and DefaultRepo locate the release repository.
const (
	DefaultOwner = "car1bo"
	DefaultRepo  = "snowattach"
)

// Status is the result of an update check.
type Status struct {
	CurrentVersion string
	LatestVersion  string
	AssetName      string // binary asset for this platform
	AssetURL       string
	AssetSize      int64
	ChecksumsURL   string // checksums.txt asset, empty when the release has none
	IsNewer        bool
	IsPreRelease   bool
	ReleaseURL     string
	ReleaseNotes   string
}

// CheckOptions configures the update check.
type CheckOptions struct {
	CurrentVersion    string // e.g. "v1.2.3" or "dev"
	IncludePreRelease bool
}

// Checker looks up releases on GitHub.
type Checker struct {
	ghClient *github.Client
	owner    string
	repo     string
}

// NewChecker creates a checker for the snowattach release repository.
// An empty token means unauthenticated requests, which is fine for a
// public repository apart from rate limits.
func NewChecker(ctx context.Context, token string) *Checker {
	var gh *github.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		gh = github.NewClient(oauth2.NewClient(ctx, ts))
	} else {
		gh = github.NewClient(nil)
	}

	return &Checker{
		ghClient: gh,
		owner:    DefaultOwner,
		repo:     DefaultRepo,
	}
}

// Check returns the latest release newer than the current version.
// It returns ErrNoUpdateAvailable when already up to date and ErrDevBuild
// for builds without a release version.
func (c *Checker) Check(ctx context.Context, opts CheckOptions) (*Status, error) {
	if opts.CurrentVersion == "dev" || opts.CurrentVersion == "none" || opts.CurrentVersion == "" {
		return nil, ErrDevBuild
	}

	releases, _, err := c.ghClient.Repositories.ListReleases(ctx, c.owner, c.repo, &github.ListOptions{
		PerPage: 10,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch releases: %w", err)
	}

	// The API returns releases newest first.
	var latest *github.RepositoryRelease
	for _, r := range releases {
		if r.GetDraft() {
			continue
		}
		if !opts.IncludePreRelease && r.GetPrerelease() {
			continue
		}
		latest = r

		break
	}
	if latest == nil {
		return nil, fmt.Errorf("no suitable release found")
	}

	latestVersion := strings.TrimPrefix(latest.GetTagName(), "v")
	currentVersion := strings.TrimPrefix(opts.CurrentVersion, "v")

	if currentVersion == latestVersion || versionNewer(currentVersion, latestVersion) {
		return &Status{
			CurrentVersion: opts.CurrentVersion,
			LatestVersion:  latest.GetTagName(),
			IsNewer:        false,
			IsPreRelease:   latest.GetPrerelease(),
		}, ErrNoUpdateAvailable
	}

	status := &Status{
		CurrentVersion: opts.CurrentVersion,
		LatestVersion:  latest.GetTagName(),
		AssetName:      AssetName(),
		IsNewer:        true,
		IsPreRelease:   latest.GetPrerelease(),
		ReleaseURL:     latest.GetHTMLURL(),
		ReleaseNotes:   latest.GetBody(),
	}

	for _, asset := range latest.Assets {
		switch asset.GetName() {
		case status.AssetName:
			status.AssetURL = asset.GetBrowserDownloadURL()
			status.AssetSize = int64(asset.GetSize())
		case "checksums.txt":
			status.ChecksumsURL = asset.GetBrowserDownloadURL()
		}
	}

	if status.AssetURL == "" {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, status.AssetName)
	}

	return status, nil
}

// AssetName returns the release binary name for the current platform.
func AssetName() string {
	return fmt.Sprintf("snowattach-%s-%s", runtime.GOOS, runtime.GOARCH)
}

// versionNewer reports whether version a is newer than b. Both are expected
// in major.minor.patch form without the "v" prefix.
func versionNewer(a, b string) bool {
	var aMajor, aMinor, aPatch int
	var bMajor, bMinor, bPatch int

	_, _ = fmt.Sscanf(a, "%d.%d.%d", &aMajor, &aMinor, &aPatch)
	_, _ = fmt.Sscanf(b, "%d.%d.%d", &bMajor, &bMinor, &bPatch)

	if aMajor != bMajor {
		return aMajor > bMajor
	}
	if aMinor != bMinor {
		return aMinor > bMinor
	}

	return aPatch > bPatch
}
