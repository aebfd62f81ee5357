package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/car1bo/snowattach/internal/credential"
	"github.com/car1bo/snowattach/internal/display"
	"github.com/car1bo/snowattach/internal/update"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update snowattach to the latest version",
	Long: `Update snowattach to the latest release.

The latest GitHub release is compared against the running version; when a
newer one exists, the binary for this platform is downloaded, verified
against the release checksums, and swapped in place. Restart snowattach
afterwards to run the new version.

Only stable releases are considered unless --pre-release is set.`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

var (
	updatePreRelease bool
	updateCheckOnly  bool
	updateYes        bool
)

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().BoolVarP(&updatePreRelease, "pre-release", "p", false, "Include pre-release versions")
	updateCmd.Flags().BoolVar(&updateCheckOnly, "check", false, "Check for updates without installing")
	updateCmd.Flags().BoolVarP(&updateYes, "yes", "y", false, "Skip confirmation prompt")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	// Anonymous access works for a public repository; a token only raises
	// the rate limit.
	token := credential.ResolveOptional(
		credential.Config("GITHUB_TOKEN", "").WithEnvVars("GITHUB_TOKEN"))

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	checker := update.NewChecker(ctx, token)

	fmt.Fprintln(out, display.InfoMsg("checking for updates"))

	status, err := checker.Check(ctx, update.CheckOptions{
		CurrentVersion:    Version,
		IncludePreRelease: updatePreRelease,
	})
	if err != nil {
		if errors.Is(err, update.ErrNoUpdateAvailable) {
			fmt.Fprintln(out, display.SuccessMsg("already up to date (%s)", Version))

			return nil
		}
		if errors.Is(err, update.ErrDevBuild) {
			fmt.Fprintln(out, display.WarningMsg("dev build (%s), update checks are unavailable", Version))

			return nil
		}

		return fmt.Errorf("check for updates: %w", err)
	}

	fmt.Fprintf(out, "%s\n", display.Bold("Update available"))
	fmt.Fprintf(out, "  %-10s%s\n", "Current:", display.Muted(status.CurrentVersion))
	fmt.Fprintf(out, "  %-10s%s\n", "Latest:", status.LatestVersion)
	if status.ReleaseURL != "" {
		fmt.Fprintf(out, "  %-10s%s\n", "Release:", display.Muted(status.ReleaseURL))
	}

	if updateCheckOnly {
		return nil
	}

	if !updateYes {
		ok, err := confirm(cmd, fmt.Sprintf("Download and install %s?", status.LatestVersion))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, display.Muted("update cancelled"))

			return nil
		}
	}

	installer := update.NewInstaller()
	if writable, _ := installer.IsWritable(); !writable {
		return errors.New("cannot write to the binary directory, try: sudo snowattach update")
	}

	downloadedPath, err := update.NewDownloader().Fetch(ctx, status)
	if err != nil {
		return err
	}

	if err := installer.Install(downloadedPath); err != nil {
		return err
	}

	fmt.Fprintln(out, display.SuccessMsg("updated to %s, restart snowattach to use it", status.LatestVersion))

	return nil
}

// confirm asks a yes/no question on the command's input stream.
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)

	reader := bufio.NewReader(cmd.InOrStdin())
	response, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))

	return response == "y" || response == "yes", nil
}
