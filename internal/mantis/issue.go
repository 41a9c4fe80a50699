package mantis

import "strings"

// Issue is one issue record of a Mantis XML export.
type Issue struct {
	// Position is the 1-based index of the record in the export.
	Position int

	ID              string
	Reporter        string
	Handler         string
	Severity        string
	Status          string
	Category        string
	Version         string
	TargetVersion   string
	Summary         string
	Description     string
	Reproducibility string

	StepsToReproduce      Field
	AdditionalInformation Field
	OS                    Field
	OSBuild               string
	Platform              string

	DateSubmitted string
	LastUpdated   string
}

// IssueFromRecord extracts an Issue from a record. Missing fields become
// empty values; nothing here fails.
func IssueFromRecord(position int, rec *Record) *Issue {
	return &Issue{
		Position:              position,
		ID:                    strings.TrimSpace(rec.Text("id")),
		Reporter:              strings.TrimSpace(rec.Text("reporter")),
		Handler:               strings.TrimSpace(rec.Text("handler")),
		Severity:              rec.Text("severity"),
		Status:                rec.Text("status"),
		Category:              strings.TrimSpace(rec.Text("category")),
		Version:               strings.TrimSpace(rec.Text("version")),
		TargetVersion:         strings.TrimSpace(rec.Text("target_version")),
		Summary:               rec.Text("summary"),
		Description:           rec.Text("description"),
		Reproducibility:       rec.Text("reproducibility"),
		StepsToReproduce:      rec.Lookup("steps_to_reproduce"),
		AdditionalInformation: rec.Lookup("additional_information"),
		OS:                    rec.Lookup("os"),
		OSBuild:               rec.Text("os_build"),
		Platform:              rec.Text("platform"),
		DateSubmitted:         strings.TrimSpace(rec.Text("date_submitted")),
		LastUpdated:           strings.TrimSpace(rec.Text("last_updated")),
	}
}
