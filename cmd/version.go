package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"github.com/abhisek/adaptiq/internal/selfupdate"
)

// version is set via -ldflags at build time.
var version = selfupdate.DevVersion

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if short, _ := cmd.Flags().GetBool("short"); short {
			fmt.Fprintln(out, version)
			return
		}
		fmt.Fprintln(out, versionLine(version, revision()))
		if semver.Prerelease(version) != "" {
			fmt.Fprintln(out, "This is a pre-release build.")
		}
	},
}

// versionLine renders "adaptiq v1.2.0 (linux/amd64, go1.25.1, abc1234)".
func versionLine(v, rev string) string {
	line := fmt.Sprintf("adaptiq %s (%s/%s, %s", v, runtime.GOOS, runtime.GOARCH, runtime.Version())
	if rev != "" {
		line += ", " + rev
	}
	return line + ")"
}

// revision is the short VCS commit stamped by the Go toolchain, if any.
func revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}

func init() {
	versionCmd.Flags().Bool("short", false, "Print only the version")
}
