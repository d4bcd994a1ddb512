package domain

import (
	"fmt"
	"time"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

type IssueKind string

const (
	IssueOrphanOption   IssueKind = "orphan_option"
	IssueMalformedRow   IssueKind = "malformed_row"
	IssueBadNumber      IssueKind = "bad_number"
	IssueMissingHeader  IssueKind = "missing_header"
	IssueSuspiciousText IssueKind = "suspicious_text"
	IssueUnknownKey     IssueKind = "unknown_key"
	IssueLegacySource   IssueKind = "legacy_source"
	IssueImageFetch     IssueKind = "image_fetch"
	IssueDuplicateID    IssueKind = "duplicate_id"
)

// Issue es un problema estructural o de referencia detectado durante un build.
// Solo es fatal en modo estricto.
type Issue struct {
	Severity Severity          `json:"severity"`
	Kind     IssueKind         `json:"kind"`
	Line     int               `json:"rowIndex,omitempty"`
	Message  string            `json:"reason"`
	Snapshot map[string]string `json:"snapshot,omitempty"`
}

func (i Issue) String() string {
	if i.Line > 0 {
		return fmt.Sprintf("%s [%s] linea %d: %s", i.Severity, i.Kind, i.Line, i.Message)
	}
	return fmt.Sprintf("%s [%s]: %s", i.Severity, i.Kind, i.Message)
}

// Errors filtra los issues con severidad error.
func Errors(issues []Issue) []Issue {
	out := []Issue{}
	for _, is := range issues {
		if is.Severity == SeverityError {
			out = append(out, is)
		}
	}
	return out
}

// ImportReport resume una corrida de importación (out/import-report.json).
type ImportReport struct {
	RunID              string    `json:"runId"`
	Timestamp          time.Time `json:"timestamp"`
	Source             string    `json:"source"`
	Encoding           string    `json:"encoding"`
	Headers            []string  `json:"headers"`
	TotalRows          int       `json:"total_rows"`
	HeaderRows         int       `json:"header_rows"`
	OptionRows         int       `json:"option_rows"`
	BlankRows          int       `json:"blank_rows"`
	ProductsCount      int       `json:"products_count"`
	OptionsCount       int       `json:"options_count"`
	MissingImagesCount int       `json:"missing_images_count"`
	MissingPriceCount  int       `json:"missing_price_count"`
	Warnings           []Issue   `json:"warnings"`
}
