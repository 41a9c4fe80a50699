package cli

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ALT-F4-LLC/bugport/internal/catalog"
	"github.com/ALT-F4-LLC/bugport/internal/filter"
	"github.com/ALT-F4-LLC/bugport/internal/model"
	"github.com/ALT-F4-LLC/bugport/internal/output"
	"github.com/ALT-F4-LLC/bugport/internal/render"
)

type collectionsJSON struct {
	Components []string `json:"components"`
	Versions   []string `json:"versions"`
	Milestones []string `json:"milestones"`
}

type inspectResult struct {
	Issues      []*model.Issue   `json:"issues"`
	Total       int              `json:"total"`
	Files       []string         `json:"files"`
	ByStatus    map[string]int   `json:"by_status"`
	Collections *collectionsJSON `json:"collections"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <archive.zip>",
	Short: "List the issues in an import archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)

		statuses, _ := cmd.Flags().GetStringSlice("status")
		priorities, _ := cmd.Flags().GetStringSlice("priority")
		kinds, _ := cmd.Flags().GetStringSlice("kind")
		where, _ := cmd.Flags().GetString("where")
		board, _ := cmd.Flags().GetBool("board")
		collections, _ := cmd.Flags().GetBool("collections")

		if err := validateFilters(statuses, priorities, kinds); err != nil {
			return cmdErr(err, output.ErrValidation)
		}

		var expr *filter.Expr
		if where != "" {
			var err error
			expr, err = filter.Compile(where)
			if err != nil {
				return cmdErr(err, output.ErrValidation)
			}
		}

		conn, a, err := openArchiveCatalog(args[0])
		if err != nil {
			return err
		}
		defer conn.Close()

		issues, err := catalog.ListIssues(conn, catalog.ListOptions{
			Statuses:   statuses,
			Priorities: priorities,
			Kinds:      kinds,
		})
		if err != nil {
			return cmdErr(fmt.Errorf("listing issues: %w", err), output.ErrGeneral)
		}

		counts := relatedCounts(a)
		issues, err = filter.Apply(expr, issues, counts)
		if err != nil {
			return cmdErr(err, output.ErrValidation)
		}

		total, err := catalog.CountIssues(conn)
		if err != nil {
			return cmdErr(err, output.ErrGeneral)
		}
		byStatus, err := catalog.CountByStatus(conn)
		if err != nil {
			return cmdErr(err, output.ErrGeneral)
		}
		cols, err := loadCollections(conn)
		if err != nil {
			return cmdErr(err, output.ErrGeneral)
		}

		files := a.Files
		if files == nil {
			files = []string{}
		}
		result := inspectResult{
			Issues:      issues,
			Total:       total,
			Files:       files,
			ByStatus:    byStatus,
			Collections: cols,
		}

		var message string
		if !w.JSONMode {
			switch {
			case collections:
				message = render.RenderCollections(render.Collections{
					Components: cols.Components,
					Versions:   cols.Versions,
					Milestones: cols.Milestones,
				})
			case board:
				message = render.RenderBoard(issues, render.BoardOptions{CommentCounts: counts.Comments})
			default:
				message = render.RenderTable(issues)
			}
			w.Info("%d of %d issues, %d attachment files", len(issues), total, len(files))
		}
		w.Success(result, message)
		return nil
	},
}

func validateFilters(statuses, priorities, kinds []string) error {
	for _, s := range statuses {
		if err := model.ValidateStatus(model.Status(s)); err != nil {
			return err
		}
	}
	for _, p := range priorities {
		if err := model.ValidatePriority(model.Priority(p)); err != nil {
			return err
		}
	}
	for _, k := range kinds {
		if err := model.ValidateKind(model.Kind(k)); err != nil {
			return err
		}
	}
	return nil
}

func loadCollections(conn *sql.DB) (*collectionsJSON, error) {
	var cols collectionsJSON
	for kind, dst := range map[string]*[]string{
		catalog.CollectionComponents: &cols.Components,
		catalog.CollectionVersions:   &cols.Versions,
		catalog.CollectionMilestones: &cols.Milestones,
	} {
		names, err := catalog.Collection(conn, kind)
		if err != nil {
			return nil, err
		}
		*dst = names
	}
	return &cols, nil
}

func init() {
	inspectCmd.Flags().StringSlice("status", nil, "Only issues with these statuses")
	inspectCmd.Flags().StringSlice("priority", nil, "Only issues with these priorities")
	inspectCmd.Flags().StringSlice("kind", nil, "Only issues of these kinds")
	inspectCmd.Flags().String("where", "", `Filter expression, e.g. 'reporter == "alice" && comments > 0'`)
	inspectCmd.Flags().Bool("board", false, "Group issues into status columns")
	inspectCmd.Flags().Bool("collections", false, "Show components, versions and milestones instead of issues")
	rootCmd.AddCommand(inspectCmd)
}
