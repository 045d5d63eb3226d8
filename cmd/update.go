package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/selfupdate"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update adaptiq to the latest release",
	RunE:  runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	target, _ := cmd.Flags().GetString("version")
	checkOnly, _ := cmd.Flags().GetBool("check")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	out := cmd.OutOrStdout()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()
	checker := selfupdate.NewChecker(selfupdate.WithTimeout(timeout))

	if checkOnly {
		res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if !res.UpdateAvailable {
			return explainUpdateError(out, selfupdate.ErrAlreadyLatest)
		}
		fmt.Fprintf(out, "adaptiq %s is available (running %s): %s\n", res.LatestVersion, version, res.ReleaseURL)
		return nil
	}

	err := checker.Update(ctx, &selfupdate.UpdateInput{
		CurrentVersion: version,
		TargetVersion:  target,
	}, func(p selfupdate.UpdateProgress) {
		slog.Debug("update", "stage", p.Stage)
		fmt.Fprintln(out, p.Message)
	})
	return explainUpdateError(out, err)
}

// explainUpdateError prints the refusals a user can act on and returns
// nil for them. Permission errors get a hint; anything else is returned.
func explainUpdateError(out io.Writer, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, selfupdate.ErrDevBuild):
		fmt.Fprintln(out, "Cannot update a development build. Install a release build first.")
		return nil
	case errors.Is(err, selfupdate.ErrAlreadyLatest):
		fmt.Fprintln(out, "Already running the latest version.")
		return nil
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w\n\nTry running: sudo adaptiq update", err)
	default:
		return err
	}
}

func init() {
	f := updateCmd.Flags()
	f.String("version", "", "Install this release tag instead of the latest, e.g. v1.4.0")
	f.Bool("check", false, "Only report whether an update is available")
	f.Duration("timeout", 2*time.Minute, "Give up when the update takes longer than this")
}
