package cmd

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/ingest"
	"github.com/abhisek/adaptiq/internal/quiz"
	"github.com/abhisek/adaptiq/internal/store"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Manage study material",
}

// contentOwner resolves --user to an account, defaulting to the local player.
func contentOwner(cmd *cobra.Command, st *store.Store) (*store.User, error) {
	email, _ := cmd.Flags().GetString("user")
	if email == "" {
		return localUser(cmd.Context(), st)
	}
	u, err := st.Users().GetByEmail(cmd.Context(), email)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", email, err)
	}
	return u, nil
}

var contentAddCmd = &cobra.Command{
	Use:   "add <file|url>",
	Short: "Add a text, PDF or image file or a web page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		owner, err := contentOwner(cmd, e.store)
		if err != nil {
			return err
		}
		in, err := readSource(cmd.Context(), e.cfg, args[0])
		if err != nil {
			return err
		}
		if title, _ := cmd.Flags().GetString("title"); title != "" {
			in.Title = title
		}
		c, err := e.quiz.AddContent(cmd.Context(), owner.ID, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%s, %d chunks)\n", c.Title, c.ID, c.ChunkCount)
		return nil
	},
}

var contentImportGitCmd = &cobra.Command{
	Use:   "import-git <url>",
	Short: "Import markdown and text notes from a git repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, _ := cmd.Flags().GetString("ref")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		owner, err := contentOwner(cmd, e.store)
		if err != nil {
			return err
		}
		docs, err := ingest.ImportGit(cmd.Context(), args[0], ref)
		if err != nil {
			return err
		}
		n, err := importDocs(cmd.Context(), e.quiz, owner.ID, args[0], docs)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d notes from %s\n", n, len(docs), args[0])
		return nil
	},
}

// importDocs stores each document as content, skipping empty ones.
func importDocs(ctx context.Context, svc *quiz.Service, userID, ref string, docs []ingest.Document) (int, error) {
	n := 0
	for _, d := range docs {
		_, err := svc.AddContent(ctx, userID, quiz.NewContent{
			Title:      d.Title,
			SourceType: quiz.SourceGit,
			SourceRef:  ref,
			Text:       d.Text,
		})
		if errors.Is(err, quiz.ErrNoText) {
			continue
		}
		if err != nil {
			return n, fmt.Errorf("import %s: %w", d.Title, err)
		}
		n++
	}
	return n, nil
}

var contentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List study material",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStoreOnly(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		owner, err := contentOwner(cmd, st)
		if err != nil {
			return err
		}
		list, err := st.Contents().ListByUser(cmd.Context(), owner.ID)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No content yet.")
			return nil
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTITLE\tSOURCE\tCHUNKS\tADDED")
		for _, c := range list {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
				c.ID, truncate(c.Title, 40), c.SourceType, c.ChunkCount,
				c.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		return tw.Flush()
	},
}

func init() {
	contentCmd.PersistentFlags().String("user", "", "Owner email (default: the local player)")
	contentAddCmd.Flags().String("title", "", "Title (default: the file name or detected topic)")
	contentImportGitCmd.Flags().String("ref", "", "Branch to clone (default: the repository's default branch)")

	contentCmd.AddCommand(contentAddCmd)
	contentCmd.AddCommand(contentImportGitCmd)
	contentCmd.AddCommand(contentListCmd)
}
