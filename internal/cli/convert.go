package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/ALT-F4-LLC/bugport/internal/archive"
	"github.com/ALT-F4-LLC/bugport/internal/catalog"
	"github.com/ALT-F4-LLC/bugport/internal/config"
	"github.com/ALT-F4-LLC/bugport/internal/convert"
	"github.com/ALT-F4-LLC/bugport/internal/lookup"
	"github.com/ALT-F4-LLC/bugport/internal/mantis"
	"github.com/ALT-F4-LLC/bugport/internal/model"
	"github.com/ALT-F4-LLC/bugport/internal/output"
	"github.com/ALT-F4-LLC/bugport/internal/render"
)

var errCancelled = errors.New("cancelled")

type convertResult struct {
	Output       string `json:"output"`
	DryRun       bool   `json:"dry_run"`
	ArchiveBytes int64  `json:"archive_bytes"`
	Catalog      string `json:"catalog,omitempty"`
	*convert.Report
}

var convertCmd = &cobra.Command{
	Use:   "convert <input.xml> <output.zip>",
	Short: "Convert a Mantis XML export into a Bitbucket import archive",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		inputPath, outputPath := args[0], args[1]

		settings := convertSettings(cmd, getCfg(cmd).Settings)
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		force, _ := cmd.Flags().GetBool("force")

		loc, err := config.ParseLocation(settings.Timezone)
		if err != nil {
			return cmdErr(err, output.ErrValidation)
		}

		if !dryRun {
			if err := confirmOverwrite(w, outputPath, force); err != nil {
				if errors.Is(err, errCancelled) {
					w.Info("Cancelled.")
					return nil
				}
				return err
			}
		}

		opts, err := loadSideFiles(w, settings)
		if err != nil {
			return err
		}
		opts.Location = loc
		opts.Progress = w.Debug

		issues, err := mantis.ReadFile(inputPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return cmdErr(err, output.ErrNotFound)
			}
			return cmdErr(err, output.ErrValidation)
		}
		w.Debug("Read %d issue records from %s", len(issues), inputPath)

		staging, err := archive.NewStaging()
		if err != nil {
			return cmdErr(err, output.ErrGeneral)
		}
		defer staging.Close()
		if opts.Attachments != nil {
			opts.StagingDir = staging.AttachmentsDir
		}

		db, report, err := convert.Run(issues, opts)
		if err != nil {
			return err
		}

		for _, u := range report.UnresolvedUsers {
			w.Warn("No mapping for user %q, using %q", u, settings.DefaultUser)
		}
		for _, m := range report.MissingAttachments {
			w.Warn("Attachment %s for issue %d skipped: %s", m.File, m.IssueID, m.Reason)
		}

		result := convertResult{Output: outputPath, DryRun: dryRun, ArchiveBytes: -1, Catalog: settings.Catalog, Report: report}

		if !dryRun {
			if err := staging.WriteZip(db, outputPath); err != nil {
				return cmdErr(err, output.ErrGeneral)
			}
			info, err := os.Stat(outputPath)
			if err != nil {
				return cmdErr(fmt.Errorf("checking archive: %w", err), output.ErrGeneral)
			}
			result.ArchiveBytes = info.Size()
		}

		if settings.Catalog != "" {
			if err := writeCatalog(settings.Catalog, db); err != nil {
				return cmdErr(err, output.ErrGeneral)
			}
			w.Debug("Catalog written to %s", settings.Catalog)
		}

		var message string
		if !w.JSONMode {
			message = render.RenderSummary(report, outputPath, result.ArchiveBytes)
			if dryRun {
				w.Info("Dry run: no archive written.")
			}
		}
		w.Success(result, message)
		return nil
	},
}

// convertSettings overlays explicitly set flags on the config file values.
func convertSettings(cmd *cobra.Command, s config.Settings) config.Settings {
	flags := map[string]*string{
		"attachments-dir":    &s.AttachmentsDir,
		"default-user":       &s.DefaultUser,
		"user-mapping":       &s.UserMapping,
		"attachment-mapping": &s.AttachmentMapping,
		"notes":              &s.Notes,
		"timezone":           &s.Timezone,
		"catalog":            &s.Catalog,
	}
	for name, dst := range flags {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	return s
}

// loadSideFiles loads the lookup tables named in s. Attachments and notes
// are skipped with a warning when not configured.
func loadSideFiles(w *output.Writer, s config.Settings) (convert.Options, error) {
	opts := convert.Options{DefaultUser: s.DefaultUser}

	users, err := lookup.LoadUserMapping(s.UserMapping)
	if err != nil {
		return opts, err
	}
	opts.Users = users
	w.Debug("Loaded %d user mappings", len(users))

	if s.AttachmentsDir == "" || s.AttachmentMapping == "" {
		w.Warn("No attachments directory or attachment mapping given, skipping attachments")
	} else {
		table, err := lookup.LoadAttachmentMapping(s.AttachmentMapping)
		if err != nil {
			return opts, err
		}
		opts.Attachments = table
		opts.AttachmentsDir = s.AttachmentsDir
	}

	if s.Notes == "" {
		w.Warn("No notes file given, skipping comments")
	} else {
		notes, err := lookup.LoadNotes(s.Notes)
		if err != nil {
			return opts, err
		}
		opts.Notes = notes
	}

	return opts, nil
}

// confirmOverwrite guards an existing output archive. Interactive sessions
// are asked; everything else needs --force.
func confirmOverwrite(w *output.Writer, path string, force bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return cmdErr(fmt.Errorf("checking output: %w", err), output.ErrGeneral)
	}

	if force {
		w.Debug("Overwriting %s", path)
		return nil
	}

	if !w.Interactive() {
		return cmdErr(fmt.Errorf("output %s already exists (use --force to overwrite)", path), output.ErrConflict)
	}

	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("%s already exists. Overwrite it?", path)).
				Affirmative("Yes, overwrite").
				Negative("Cancel").
				Value(&confirmed),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errCancelled
		}
		return cmdErr(fmt.Errorf("interactive form failed: %w", err), output.ErrGeneral)
	}
	if !confirmed {
		return errCancelled
	}
	return nil
}

func writeCatalog(path string, db *model.Database) error {
	conn, err := catalog.Open(path)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := catalog.Initialize(conn); err != nil {
		return fmt.Errorf("initializing catalog: %w", err)
	}
	return catalog.Store(conn, db)
}

func init() {
	convertCmd.Flags().String("attachments-dir", "", "Directory holding the exported attachment files")
	convertCmd.Flags().String("default-user", "", "Target identity for users with no mapping")
	convertCmd.Flags().String("user-mapping", "", "JSON file of source to target user mappings")
	convertCmd.Flags().String("attachment-mapping", "", "JSON file mapping bug IDs to attachment files")
	convertCmd.Flags().String("notes", "", "JSON file of bug notes to convert into comments")
	convertCmd.Flags().String("timezone", "", "IANA time zone for rendered dates (default local)")
	convertCmd.Flags().String("catalog", "", "Also write the converted records to this SQLite file")
	convertCmd.Flags().Bool("dry-run", false, "Convert and report without writing the archive")
	convertCmd.Flags().Bool("force", false, "Overwrite an existing output archive")
	rootCmd.AddCommand(convertCmd)
}
