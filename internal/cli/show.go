package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ALT-F4-LLC/bugport/internal/catalog"
	"github.com/ALT-F4-LLC/bugport/internal/model"
	"github.com/ALT-F4-LLC/bugport/internal/output"
	"github.com/ALT-F4-LLC/bugport/internal/render"
)

type showResult struct {
	Issue       *model.Issue       `json:"issue"`
	Comments    []*model.Comment   `json:"comments"`
	Attachments []model.Attachment `json:"attachments"`
}

var showCmd = &cobra.Command{
	Use:   "show <archive.zip> <id>",
	Short: "Show one converted issue with its comments and attachments",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)

		id, err := model.ParseID(args[1])
		if err != nil {
			return cmdErr(err, output.ErrValidation)
		}

		conn, _, err := openArchiveCatalog(args[0])
		if err != nil {
			return err
		}
		defer conn.Close()

		issue, err := catalog.GetIssue(conn, id)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return cmdErr(fmt.Errorf("issue %s not found in %s", model.FormatID(id), args[0]), output.ErrNotFound)
			}
			return cmdErr(fmt.Errorf("fetching issue: %w", err), output.ErrGeneral)
		}

		comments, err := catalog.ListComments(conn, id)
		if err != nil {
			return cmdErr(fmt.Errorf("fetching comments: %w", err), output.ErrGeneral)
		}

		attachments, err := catalog.ListAttachments(conn, id)
		if err != nil {
			return cmdErr(fmt.Errorf("fetching attachments: %w", err), output.ErrGeneral)
		}

		var message string
		if !w.JSONMode {
			message = render.RenderDetail(issue, comments, attachments)
		}
		w.Success(showResult{Issue: issue, Comments: comments, Attachments: attachments}, message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
