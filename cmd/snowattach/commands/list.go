package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/car1bo/snowattach/internal/servicenow"
)

var listCmd = &cobra.Command{
	Use:   "list <table> <record_sys_id>",
	Short: "List attachments on a record",
	Long: `List attachment metadata for a single record.

The sys_id column is what 'snowattach export' takes as its argument, so the
two commands compose:

Examples:
  snowattach list incident 9d385017c611228701d22104cc95c371
  snowattach list incident 9d385017c611228701d22104cc95c371 --json`,
	Args: cobra.ExactArgs(2),
	RunE: runList,
}

var listJSON bool

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	table, recordSysID := args[0], args[1]

	sess, err := buildSession()
	if err != nil {
		return err
	}

	client := servicenow.NewClient(sess)

	attachments, err := client.ListAttachments(cmd.Context(), table, recordSysID)
	if err != nil {
		return fmt.Errorf("list attachments: %w", err)
	}

	out := cmd.OutOrStdout()

	if listJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")

		return enc.Encode(attachments)
	}

	if len(attachments) == 0 {
		fmt.Fprintf(out, "No attachments on %s record %s.\n", table, recordSysID)

		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "SYS_ID\tFILE NAME\tSIZE\tCONTENT TYPE\tCREATED"); err != nil {
		return fmt.Errorf("print header: %w", err)
	}

	for _, att := range attachments {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			att.SysID,
			att.FileName,
			att.Size(),
			att.ContentType,
			att.SysCreatedOn); err != nil {
			return fmt.Errorf("print row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush list table: %w", err)
	}

	return nil
}
