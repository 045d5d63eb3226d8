package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/auth"
	"github.com/abhisek/adaptiq/internal/store"
)

// localEmail identifies the account used by the terminal commands. It has
// no usable password, so it cannot log in to the API.
const localEmail = "local@adaptiq.localhost"

// localUser returns the terminal player's account, creating it on first use.
func localUser(ctx context.Context, st *store.Store) (*store.User, error) {
	u, err := st.Users().GetByEmail(ctx, localEmail)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	name := os.Getenv("USER")
	if name == "" {
		name = "Player"
	}
	u = &store.User{Email: localEmail, Name: name, PasswordHash: "!"}
	if err := st.Users().Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create local user: %w", err)
	}
	return u, nil
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage API accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create <email>",
	Short: "Create an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		password, _ := cmd.Flags().GetString("password")
		admin, _ := cmd.Flags().GetBool("admin")

		if password == "" {
			fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read password: %w", err)
			}
			password = strings.TrimSpace(line)
		}
		if len(password) < 8 {
			return errors.New("password must be at least 8 characters")
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		hash, err := auth.HashPassword(password, cfg.Auth.BcryptCost)
		if err != nil {
			return err
		}
		if name == "" {
			name, _, _ = strings.Cut(args[0], "@")
		}
		u := &store.User{Email: args[0], Name: name, PasswordHash: hash, IsAdmin: admin}
		if err := st.Users().Create(cmd.Context(), u); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return fmt.Errorf("email %s is already registered", args[0])
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", u.Email, u.ID)
		return nil
	},
}

func setAdminCmd(use, short string, admin bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <email>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStoreOnly(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			u, err := st.Users().GetByEmail(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("find %s: %w", args[0], err)
			}
			if err := st.Users().SetAdmin(cmd.Context(), u.ID, admin); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s admin=%v\n", u.Email, admin)
			return nil
		},
	}
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStoreOnly(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		users, err := st.Users().List(cmd.Context())
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "EMAIL\tNAME\tADMIN\tLEVEL\tSTREAK\tCREATED")
		for _, u := range users {
			fmt.Fprintf(tw, "%s\t%s\t%v\t%s\t%d\t%s\n",
				u.Email, u.Name, u.IsAdmin, u.PreferredDifficulty, u.Streak,
				u.CreatedAt.Local().Format("2006-01-02"))
		}
		return tw.Flush()
	},
}

func init() {
	userCreateCmd.Flags().String("name", "", "Display name (default: the email's local part)")
	userCreateCmd.Flags().String("password", "", "Password (prompted when empty)")
	userCreateCmd.Flags().Bool("admin", false, "Grant admin rights")

	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(setAdminCmd("promote", "Grant admin rights", true))
	userCmd.AddCommand(setAdminCmd("demote", "Revoke admin rights", false))
	userCmd.AddCommand(userListCmd)
}
