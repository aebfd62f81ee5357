package update

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// Downloader fetches release binaries and verifies checksums.
type Downloader struct {
	client *http.Client
}

// NewDownloader creates a downloader using a default HTTP client.
func NewDownloader() *Downloader {
	return &Downloader{client: &http.Client{}}
}

// Fetch downloads the binary described by status to a temporary file and
// verifies its SHA256 against the release's checksums.txt when available.
// Returns the path of the downloaded file; the caller installs or removes it.
func (d *Downloader) Fetch(ctx context.Context, status *Status) (string, error) {
	checksum := ""
	if status.ChecksumsURL != "" {
		// Missing or unparsable checksums degrade to an unverified download.
		checksum, _ = d.fetchChecksum(ctx, status.ChecksumsURL, status.AssetName)
	}

	return d.download(ctx, status.AssetURL, checksum)
}

func (d *Downloader) download(ctx context.Context, url, expectedChecksum string) (string, error) {
	tmpFile, err := os.CreateTemp("", "snowattach-update-*.bin")
	if err != nil {
		return "", fmt.Errorf("%w: create temp file: %w", ErrDownloadFailed, err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = tmpFile.Close() }()

	fail := func(err error) (string, error) {
		_ = os.Remove(tmpPath)
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fail(fmt.Errorf("%w: create request: %w", ErrDownloadFailed, err))
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fail(fmt.Errorf("%w: %w", ErrDownloadFailed, err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fail(fmt.Errorf("%w: unexpected status: %d", ErrDownloadFailed, resp.StatusCode))
	}

	hasher := sha256.New()
	if _, err := io.Copy(io.MultiWriter(tmpFile, hasher), resp.Body); err != nil {
		return fail(fmt.Errorf("%w: %w", ErrDownloadFailed, err))
	}

	if expectedChecksum != "" {
		actual := hex.EncodeToString(hasher.Sum(nil))
		if !strings.EqualFold(actual, expectedChecksum) {
			return fail(fmt.Errorf("%w: expected %s, got %s", ErrChecksumFailed, expectedChecksum, actual))
		}
	}

	return tmpPath, nil
}

func (d *Downloader) fetchChecksum(ctx context.Context, url, assetName string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return ParseChecksumsFile(string(content), assetName), nil
}

// ParseChecksumsFile finds the checksum of assetName in a checksums file.
// Lines are "checksum  filename" or "checksum *filename" (binary mode).
// Returns an empty string when the asset is not listed.
func ParseChecksumsFile(content, assetName string) string {
	for _, line := range strings.Split(content, "\n") {
		parts := strings.Fields(strings.TrimSpace(line))
		if len(parts) < 2 {
			continue
		}

		if strings.TrimPrefix(parts[1], "*") == assetName {
			return parts[0]
		}
	}

	return ""
}
