package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/car1bo/snowattach/internal/credential"
	"github.com/car1bo/snowattach/internal/servicenow"
)

// errNoInstance keeps the top-level error short; the suggestion block is
// printed where the failure is detected.
var errNoInstance = errors.New("no instance configured")

// resolveInstance finds the target instance from flag, env, or config.
func resolveInstance() string {
	if instance != "" {
		return instance
	}

	return credential.ResolveOptional(
		credential.Config("INSTANCE", cfg.Instance).
			WithEnvVars("SERVICENOW_INSTANCE", "SNOW_INSTANCE"))
}

// buildSession assembles the per-invocation session from flags, environment,
// and config file, in that priority order. Each command builds a fresh
// session; nothing is shared between invocations.
func buildSession() (*servicenow.Session, error) {
	inst := resolveInstance()
	if inst == "" {
		return nil, errNoInstance
	}

	sess, err := servicenow.NewSession(inst)
	if err != nil {
		return nil, err
	}

	if mode := credential.ResolveOptional(
		credential.Config("AUTH_MODE", cfg.Auth.Mode)); mode != "" {
		sess.AuthMode = mode
	}

	sess.Username = credential.ResolveOptional(
		credential.Config("USERNAME", cfg.Auth.Username).
			WithEnvVars("SERVICENOW_USERNAME", "SNOW_USER"))
	sess.Password = credential.ResolveOptional(
		credential.Config("PASSWORD", cfg.Auth.Password).
			WithEnvVars("SERVICENOW_PASSWORD", "SNOW_PASSWORD"))
	sess.ClientID = credential.ResolveOptional(
		credential.Config("CLIENT_ID", cfg.Auth.ClientID).
			WithEnvVars("SERVICENOW_CLIENT_ID"))
	sess.ClientSecret = credential.ResolveOptional(
		credential.Config("CLIENT_SECRET", cfg.Auth.ClientSecret).
			WithEnvVars("SERVICENOW_CLIENT_SECRET"))

	if err := sess.Validate(); err != nil {
		return nil, err
	}

	return sess, nil
}

// parseRecordRef splits a "table:sys_id" reference.
func parseRecordRef(ref string) (table, sysID string, err error) {
	table, sysID, ok := strings.Cut(ref, ":")
	if !ok || table == "" || sysID == "" {
		return "", "", fmt.Errorf("invalid record reference %q (want table:sys_id)", ref)
	}

	return table, sysID, nil
}
