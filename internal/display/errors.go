package display

import (
	"fmt"
	"strings"
)

// Suggestion represents a suggested action for error recovery.
type Suggestion struct {
	Command     string
	Description string
}

// ErrorWithSuggestions formats an error message with actionable suggestions.
func ErrorWithSuggestions(message string, suggestions []Suggestion) string {
	var sb strings.Builder

	// Error header
	sb.WriteString(ErrorMsg("%s", message))
	sb.WriteString("\n")

	// Add suggestions if any
	if len(suggestions) > 0 {
		sb.WriteString("\n")
		sb.WriteString(Muted("Suggested actions:"))
		sb.WriteString("\n")
		for _, s := range suggestions {
			sb.WriteString(fmt.Sprintf("  %s %s - %s\n",
				Muted("•"),
				Cyan(s.Command),
				s.Description,
			))
		}
	}

	return sb.String()
}

// Common error messages with suggestions

// FileExistsError returns a formatted error for an existing download target.
func FileExistsError(path string) string {
	return ErrorWithSuggestions(
		fmt.Sprintf("File already exists: %s", path),
		[]Suggestion{
			{Command: "--overwrite", Description: "Replace the existing file"},
			{Command: "--append-id", Description: "Disambiguate the name with the attachment sys_id"},
			{Command: "--name <file>", Description: "Download under a different name"},
		},
	)
}

// NoInstanceError returns a formatted "no instance configured" error.
func NoInstanceError() string {
	return ErrorWithSuggestions(
		"No ServiceNow instance configured",
		[]Suggestion{
			{Command: "--instance <name>", Description: "Pass the instance on the command line"},
			{Command: "SERVICENOW_INSTANCE=<name>", Description: "Set it in the environment or .snowattach/.env"},
			{Command: "~/.snowattach/config.yaml", Description: "Persist it in the config file"},
		},
	)
}
