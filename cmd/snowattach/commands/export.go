package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/car1bo/snowattach/internal/attachment"
	"github.com/car1bo/snowattach/internal/display"
	"github.com/car1bo/snowattach/internal/servicenow"
)

var exportCmd = &cobra.Command{
	Use:   "export [attachment_sys_id...]",
	Short: "Download attachments to disk",
	Long: `Download one or more attachments by sys_id, or every attachment of a
record with --record. Items are downloaded one at a time, in order.

When --name is omitted the file name comes from the attachment metadata.
An existing file at the target path aborts the download unless --overwrite
is set; --append-id rewrites the name as {base}_{sys_id}{ext} to avoid
collisions when a record carries same-named attachments.

Examples:
  snowattach export 6e697dcb47a11200e0ef563dbb9a7126
  snowattach export 6e697dcb47a11200e0ef563dbb9a7126 --name scan.pdf --dest /tmp/out
  snowattach export --record incident:9d385017c611228701d22104cc95c371 --append-id
  snowattach export --record incident:9d385017c611228701d22104cc95c371 --dry-run`,
	RunE: runExport,
}

var (
	exportRecord    string
	exportName      string
	exportDest      string
	exportOverwrite bool
	exportAppendID  bool
	exportDryRun    bool
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportRecord, "record", "", "Export all attachments of a record (table:sys_id)")
	exportCmd.Flags().StringVar(&exportName, "name", "", "Target file name (default: name from attachment metadata)")
	exportCmd.Flags().StringVar(&exportDest, "dest", "", "Destination directory (default: current directory)")
	exportCmd.Flags().BoolVar(&exportOverwrite, "overwrite", false, "Replace an existing file at the target path")
	exportCmd.Flags().BoolVar(&exportAppendID, "append-id", false, "Append the attachment sys_id to the file name")
	exportCmd.Flags().BoolVar(&exportDryRun, "dry-run", false, "Report planned downloads without transferring")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportRecord == "" && len(args) == 0 {
		return errors.New("pass attachment sys_ids or --record table:sys_id")
	}
	if exportRecord != "" && len(args) > 0 {
		return errors.New("--record and explicit sys_ids are mutually exclusive")
	}
	if exportName != "" && (exportRecord != "" || len(args) > 1) {
		return errors.New("--name only applies to a single attachment")
	}

	sess, err := buildSession()
	if err != nil {
		return err
	}

	dest := exportDest
	if dest == "" {
		dest = cfg.Download.Dest
	}

	dl := &attachment.Downloader{}
	if !quiet && !exportDryRun && cfg.UI.Progress != "none" {
		dl.Progress = cmd.ErrOrStderr()
	}

	refs, err := collectRefs(cmd.Context(), sess, args)
	if err != nil {
		return err
	}

	var failed int
	for _, ref := range refs {
		if err := exportOne(cmd, sess, dl, dest, ref); err != nil {
			failed++
			fmt.Fprintln(cmd.ErrOrStderr(), display.ErrorMsg("%s: %v", ref.sysID, err))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d attachments failed", failed, len(refs))
	}

	return nil
}

// exportRef pairs an attachment sys_id with its target file name.
type exportRef struct {
	sysID string
	name  string
}

// collectRefs resolves the list of downloads: either the record's full
// attachment listing, or the sys_ids given on the command line with names
// filled in from metadata when --name is not set.
func collectRefs(ctx context.Context, sess *servicenow.Session, args []string) ([]exportRef, error) {
	client := servicenow.NewClient(sess)

	if exportRecord != "" {
		table, recordSysID, err := parseRecordRef(exportRecord)
		if err != nil {
			return nil, err
		}

		attachments, err := client.ListAttachments(ctx, table, recordSysID)
		if err != nil {
			return nil, fmt.Errorf("list attachments: %w", err)
		}

		refs := make([]exportRef, 0, len(attachments))
		for _, att := range attachments {
			refs = append(refs, exportRef{sysID: att.SysID, name: att.FileName})
		}

		return refs, nil
	}

	refs := make([]exportRef, 0, len(args))
	for _, sysID := range args {
		name := exportName
		if name == "" {
			att, err := client.GetAttachment(ctx, sysID)
			if err != nil {
				return nil, fmt.Errorf("resolve attachment %s: %w", sysID, err)
			}
			name = att.FileName
		}
		refs = append(refs, exportRef{sysID: sysID, name: name})
	}

	return refs, nil
}

// exportOne downloads a single attachment and reports the outcome.
func exportOne(cmd *cobra.Command, sess *servicenow.Session, dl *attachment.Downloader, dest string, ref exportRef) error {
	result, err := dl.Download(cmd.Context(), sess, attachment.Request{
		SysID:          ref.sysID,
		FileName:       ref.name,
		Dir:            dest,
		AllowOverwrite: exportOverwrite,
		AppendSysID:    exportAppendID,
		DryRun:         exportDryRun,
	})
	if err != nil {
		if errors.Is(err, attachment.ErrFileExists) {
			fmt.Fprintln(cmd.ErrOrStderr(), display.FileExistsError(targetPath(dest, ref)))
		}

		return err
	}

	out := cmd.OutOrStdout()

	if result.DryRun {
		action := "would download"
		if result.Replaced {
			action = "would overwrite"
		}
		fmt.Fprintln(out, display.InfoMsg("dry run: %s %s -> %s", action, result.URL, result.Path))

		return nil
	}

	if !quiet {
		fmt.Fprintln(out, display.SuccessMsg("%s (%d bytes)", result.Path, result.Bytes))
	}

	return nil
}

// targetPath mirrors the downloader's path resolution for error reporting.
func targetPath(dest string, ref exportRef) string {
	if dest == "" {
		dest = "."
	}
	name := attachment.EffectiveFileName(attachment.SanitizeFileName(ref.name), ref.sysID, exportAppendID)

	return filepath.Join(dest, name)
}
