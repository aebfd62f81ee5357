// Package attachment downloads a single ServiceNow attachment to local disk.
// The downloader is stateless and reentrant: callers exporting a whole record
// iterate over its attachment references and invoke Download once per item.
package attachment

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/car1bo/snowattach/internal/log"
	"github.com/car1bo/snowattach/internal/progress"
	"github.com/car1bo/snowattach/internal/servicenow"
)

// Request describes one download.
type Request struct {
	SysID    string // attachment sys_id, required
	FileName string // target file name, required
	Dir      string // destination directory, "" means current directory

	AllowOverwrite bool // replace an existing file at the target path
	AppendSysID    bool // rewrite name as {base}_{sys_id}{ext}
	DryRun         bool // resolve and report, but do not transfer
}

// Result reports what a download did, or in dry-run mode what it would do.
type Result struct {
	URL         string // resolved file endpoint
	Path        string // resolved output path
	ContentType string
	Bytes       int64
	Replaced    bool // target existed and was (or would be) replaced
	DryRun      bool
}

// Downloader performs single-attachment downloads.
type Downloader struct {
	// Progress receives the live transfer bar; nil disables it.
	Progress io.Writer
}

// Download resolves the target path, guards against accidental overwrite,
// and streams the attachment file to disk.
//
// Validation is eager: the destination directory and target path are checked
// before any network I/O, so a failed precondition never issues a request.
// The session is cloned by the client, so the caller's session is never
// mutated. The file is written to a temporary path in the destination
// directory and renamed on completion so an interrupted transfer never
// leaves a partial file at the final path.
func (d *Downloader) Download(ctx context.Context, sess *servicenow.Session, req Request) (*Result, error) {
	if req.SysID == "" {
		return nil, ErrEmptySysID
	}

	name := SanitizeFileName(req.FileName)
	if name == "" {
		return nil, fmt.Errorf("%w (got %q)", ErrEmptyFileName, req.FileName)
	}

	dir := req.Dir
	if dir == "" {
		dir = "."
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDestination, dir)
	}

	name = EffectiveFileName(name, req.SysID, req.AppendSysID)
	path := filepath.Join(dir, name)

	exists := false
	if _, err := os.Lstat(path); err == nil {
		exists = true
		if !req.AllowOverwrite {
			return nil, fmt.Errorf("%w: %s (rename with --name, disambiguate with --append-id, or pass --overwrite)",
				ErrFileExists, path)
		}
	}

	client := servicenow.NewClient(sess)

	result := &Result{
		URL:      client.AttachmentURL(req.SysID),
		Path:     path,
		Replaced: exists,
		DryRun:   req.DryRun,
	}

	if req.DryRun {
		log.Debug("dry run, skipping transfer", log.SysID(req.SysID), log.Path(path))
		return result, nil
	}

	body, size, contentType, err := client.DownloadAttachment(ctx, req.SysID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	n, err := d.writeFile(path, body, size, name)
	if err != nil {
		return nil, err
	}

	result.Bytes = n
	result.ContentType = contentType

	log.Debug("attachment downloaded", log.SysID(req.SysID), log.Path(path), "bytes", n)

	return result, nil
}

// writeFile streams src to a temporary file next to the target and renames it
// into place once the transfer completes.
func (d *Downloader) writeFile(path string, src io.Reader, size int64, name string) (int64, error) {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+name+".partial-*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	var dst io.Writer = tmp
	if d.Progress != nil {
		bar := progress.NewTransferBar(d.Progress, size, name)
		dst = io.MultiWriter(tmp, bar)
		defer func() { _ = bar.Finish() }()
	}

	n, err := io.Copy(dst, src)
	if err != nil {
		cleanup()
		return 0, fmt.Errorf("write %s: %w", path, err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return 0, fmt.Errorf("close %s: %w", tmpPath, err)
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return 0, fmt.Errorf("chmod %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return 0, fmt.Errorf("finalize %s: %w", path, err)
	}

	return n, nil
}
