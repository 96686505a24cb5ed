package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ReportTypeCSPViolation string = "csp-violation"

	DispositionEnforce string = "enforce"
	DispositionReport  string = "report"
)

// Report is the unified record for both legacy CSP violations and modern
// Reporting API envelopes. A CSP report fills the flattened CSP columns and
// leaves Body empty; a generic report fills URL/Age/Body and leaves the CSP
// columns empty. CreatedAt is assigned on insert and is the authority for
// sort order, not arrival order.
type Report struct {
	ID         uuid.UUID      `gorm:"primaryKey;type:uuid;not null;unique;default:gen_random_uuid()" json:"id"`
	Type       string         `gorm:"size:100;not null;index" json:"type"`
	EndpointID uuid.UUID      `gorm:"type:uuid;not null;index" json:"endpoint_id"`
	Endpoint   Endpoint       `gorm:"foreignKey:EndpointID" json:"-"`
	URL        *string        `gorm:"type:text" json:"url,omitempty"`
	UserAgent  *string        `gorm:"type:text" json:"user_agent,omitempty"`
	Age        *int64         `gorm:"check:age >= 0" json:"age,omitempty"`
	Body       datatypes.JSON `gorm:"type:jsonb" json:"body,omitempty"`

	// CSP columns, set only when Type is "csp-violation".
	DocumentURI        *string `gorm:"type:text" json:"document_uri,omitempty"`
	Referrer           *string `gorm:"type:text" json:"referrer,omitempty"`
	ViolatedDirective  *string `gorm:"size:100" json:"violated_directive,omitempty"`
	EffectiveDirective *string `gorm:"size:100" json:"effective_directive,omitempty"`
	OriginalPolicy     *string `gorm:"type:text" json:"original_policy,omitempty"`
	Disposition        *string `gorm:"size:100" json:"disposition,omitempty"`
	BlockedURI         *string `gorm:"type:text" json:"blocked_uri,omitempty"`
	LineNumber         *int64  `gorm:"check:line_number >= 0" json:"line_number,omitempty"`
	ColumnNumber       *int64  `gorm:"check:column_number >= 0" json:"column_number,omitempty"`
	SourceFile         *string `gorm:"type:text" json:"source_file,omitempty"`
	StatusCode         *int    `gorm:"check:status_code >= 0" json:"status_code,omitempty"`
	ScriptSample       *string `gorm:"size:50" json:"script_sample,omitempty"`

	// Full original request body, retained for audit on the legacy path.
	RawReport datatypes.JSON `gorm:"type:jsonb" json:"raw_report,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:clock_timestamp();index" json:"created_at"`
}
