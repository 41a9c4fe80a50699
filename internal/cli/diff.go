package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ALT-F4-LLC/bugport/internal/archive"
	"github.com/ALT-F4-LLC/bugport/internal/output"
)

type diffResult struct {
	Equal        bool            `json:"equal"`
	Patch        json.RawMessage `json:"patch,omitempty"`
	FilesAdded   []string        `json:"files_added"`
	FilesRemoved []string        `json:"files_removed"`
}

var diffCmd = &cobra.Command{
	Use:   "diff <a.zip> <b.zip>",
	Short: "Compare the documents and attachments of two import archives",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		contextLines, _ := cmd.Flags().GetInt("context")

		from, err := readArchive(args[0])
		if err != nil {
			return err
		}
		to, err := readArchive(args[1])
		if err != nil {
			return err
		}

		d, err := archive.Diff(from.Document, to.Document)
		if err != nil {
			return cmdErr(err, output.ErrValidation)
		}

		added, removed := compareFiles(from.Files, to.Files)
		result := diffResult{
			Equal:        d.Equal && len(added) == 0 && len(removed) == 0,
			Patch:        d.Patch,
			FilesAdded:   added,
			FilesRemoved: removed,
		}

		if result.Equal {
			w.Success(result, "Archives are identical")
			return nil
		}

		if !w.JSONMode {
			var b strings.Builder
			if !d.Equal {
				b.WriteString(d.LineDiff(contextLines))
			}
			for _, f := range added {
				fmt.Fprintf(&b, "+ %s\n", f)
			}
			for _, f := range removed {
				fmt.Fprintf(&b, "- %s\n", f)
			}
			fmt.Fprint(w.Stdout, b.String())
		}

		return &CmdError{
			Err:  fmt.Errorf("archives %s and %s differ", args[0], args[1]),
			Code: output.ErrConflict,
			Data: result,
		}
	},
}

// compareFiles returns the sorted names only in b and only in a.
func compareFiles(a, b []string) (added, removed []string) {
	inA := make(map[string]struct{}, len(a))
	for _, f := range a {
		inA[f] = struct{}{}
	}
	inB := make(map[string]struct{}, len(b))
	for _, f := range b {
		inB[f] = struct{}{}
	}

	added, removed = []string{}, []string{}
	for _, f := range b {
		if _, ok := inA[f]; !ok {
			added = append(added, f)
		}
	}
	for _, f := range a {
		if _, ok := inB[f]; !ok {
			removed = append(removed, f)
		}
	}
	return added, removed
}

func init() {
	diffCmd.Flags().Int("context", 3, "Unchanged lines shown around each change")
	rootCmd.AddCommand(diffCmd)
}
