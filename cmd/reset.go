package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the local SQLite database",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Database.Driver != store.DriverSQLite {
			return fmt.Errorf("reset only removes SQLite databases, configured driver is %q", cfg.Database.Driver)
		}
		path := cfg.Database.DSN
		if strings.Contains(path, "mode=memory") {
			return errors.New("database is in memory, nothing to reset")
		}
		path, _, _ = strings.Cut(strings.TrimPrefix(path, "file:"), "?")

		if !yes {
			fmt.Fprintf(cmd.OutOrStdout(), "This deletes all users, content and quiz history in %s.\nType 'yes' to continue: ", path)
			line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if strings.TrimSpace(line) != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		removed := 0
		for _, p := range []string{path, path + "-wal", path + "-shm"} {
			err := os.Remove(p)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return fmt.Errorf("remove %s: %w", p, err)
			}
			removed++
		}
		if removed == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No database at %s.\n", path)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", path)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
