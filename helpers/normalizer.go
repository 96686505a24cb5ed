package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/reportsink/reportsink/models"
	"github.com/reportsink/reportsink/stores"
	"github.com/reportsink/reportsink/utils"
	"gorm.io/datatypes"
)

// PayloadFormat identifies which of the accepted wire shapes an inbound
// request body matched. It is echoed back to the client for debugging.
type PayloadFormat string

const (
	FormatLegacyCSP    PayloadFormat = "legacy-csp"
	FormatModernArray  PayloadFormat = "modern-array"
	FormatModernSingle PayloadFormat = "modern-single"
	FormatUnrecognized PayloadFormat = "unrecognized"
)

// LegacyCSPReport is the hyphenated payload nested under the "csp-report"
// key of the legacy wire format. Optional fields stay nil when absent so
// they are never stored as explicit nulls.
type LegacyCSPReport struct {
	DocumentURI        string  `json:"document-uri"`
	Referrer           *string `json:"referrer"`
	ViolatedDirective  string  `json:"violated-directive"`
	EffectiveDirective string  `json:"effective-directive"`
	OriginalPolicy     string  `json:"original-policy"`
	Disposition        string  `json:"disposition"`
	BlockedURI         *string `json:"blocked-uri"`
	LineNumber         *int64  `json:"line-number"`
	ColumnNumber       *int64  `json:"column-number"`
	SourceFile         *string `json:"source-file"`
	StatusCode         *int    `json:"status-code"`
	ScriptSample       *string `json:"script-sample"`
}

// ModernReport is a single W3C Reporting API envelope. Body is opaque and
// schema-free by design.
type ModernReport struct {
	Type      string          `json:"type"`
	Age       *float64        `json:"age"`
	URL       string          `json:"url"`
	UserAgent *string         `json:"user_agent"`
	Body      json.RawMessage `json:"body"`
}

// Payload is the closed classification of an inbound request body. Exactly
// one of Legacy or Modern is populated, matching Format.
type Payload struct {
	Format PayloadFormat
	Legacy *LegacyCSPReport
	Modern []json.RawMessage
}

// ClassifyPayload resolves the wire format of a raw request body. Detection
// order: an object carrying a "csp-report" key is legacy, any other object
// is a single modern report, an array is a modern batch, and everything
// else is rejected before any write happens.
func ClassifyPayload(raw []byte) (*Payload, error) {
	trimmed := bytes.TrimSpace(raw)

	if len(trimmed) < 1 {
		return &Payload{Format: FormatUnrecognized}, NewValidationError("The report payload is empty.")
	}

	switch trimmed[0] {
	case '{':
		probe := map[string]json.RawMessage{}
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return &Payload{Format: FormatUnrecognized}, NewValidationError("The report payload is not valid JSON.")
		}

		legacyRaw, ok := probe["csp-report"]
		if !ok {
			return &Payload{Format: FormatModernSingle, Modern: []json.RawMessage{trimmed}}, nil
		}

		legacy := &LegacyCSPReport{}
		if err := json.Unmarshal(legacyRaw, legacy); err != nil {
			return &Payload{Format: FormatUnrecognized}, NewValidationError("The csp-report payload is malformed.")
		}

		return &Payload{Format: FormatLegacyCSP, Legacy: legacy}, nil
	case '[':
		items := []json.RawMessage{}
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return &Payload{Format: FormatUnrecognized}, NewValidationError("The report payload is not valid JSON.")
		}

		return &Payload{Format: FormatModernArray, Modern: items}, nil
	}

	return &Payload{Format: FormatUnrecognized}, NewValidationError("The report payload has an unrecognized shape.")
}

// IngestResult summarizes one ingestion call. For modern batches
// ReportsProcessed counts accepted elements while TotalReports counts the
// submitted ones.
type IngestResult struct {
	Endpoint         string        `json:"endpoint"`
	Format           PayloadFormat `json:"format"`
	ReportsProcessed int           `json:"reports_processed"`
	TotalReports     int           `json:"total_reports"`
}

// Normalizer converts classified payloads into unified report records and
// persists them against a pre-registered endpoint.
type Normalizer struct {
	endpoints stores.EndpointStore
	reports   stores.ReportStore
}

func NewNormalizer(endpoints stores.EndpointStore, reports stores.ReportStore) *Normalizer {
	return &Normalizer{endpoints: endpoints, reports: reports}
}

// Ingest accepts any of the three wire formats.
func (n *Normalizer) Ingest(ctx context.Context, token string, raw []byte, userAgent string) (*IngestResult, error) {
	endpoint, err := n.resolveEndpoint(ctx, token)
	if err != nil {
		return nil, err
	}

	payload, err := ClassifyPayload(raw)
	if err != nil {
		return nil, err
	}

	if payload.Format == FormatLegacyCSP {
		return n.ingestLegacy(ctx, endpoint, payload.Legacy, raw, userAgent)
	}

	return n.ingestModern(ctx, endpoint, payload, userAgent)
}

// IngestLegacy accepts only the legacy csp-report wrapper. Modern payloads
// submitted to a legacy route are rejected without writing anything.
func (n *Normalizer) IngestLegacy(ctx context.Context, token string, raw []byte, userAgent string) (*IngestResult, error) {
	endpoint, err := n.resolveEndpoint(ctx, token)
	if err != nil {
		return nil, err
	}

	payload, err := ClassifyPayload(raw)
	if err != nil {
		return nil, err
	}

	if payload.Format != FormatLegacyCSP {
		return nil, NewValidationError("The report payload is missing the csp-report wrapper.")
	}

	return n.ingestLegacy(ctx, endpoint, payload.Legacy, raw, userAgent)
}

func (n *Normalizer) resolveEndpoint(ctx context.Context, token string) (*models.Endpoint, error) {
	token = strings.TrimSpace(token)

	if len(token) < 1 {
		return nil, ErrEndpointNotFound
	}

	endpoint, err := n.endpoints.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, ErrEndpointNotFound
		}

		return nil, err
	}

	return endpoint, nil
}

func (n *Normalizer) ingestLegacy(ctx context.Context, endpoint *models.Endpoint, legacy *LegacyCSPReport, raw []byte, userAgent string) (*IngestResult, error) {
	if len(strings.TrimSpace(legacy.DocumentURI)) < 1 ||
		len(strings.TrimSpace(legacy.ViolatedDirective)) < 1 ||
		len(strings.TrimSpace(legacy.EffectiveDirective)) < 1 ||
		len(strings.TrimSpace(legacy.OriginalPolicy)) < 1 {
		return nil, NewValidationError("The csp-report payload is missing required fields.")
	}

	disposition := strings.TrimSpace(legacy.Disposition)
	if len(disposition) < 1 {
		disposition = models.DispositionEnforce
	}

	report := &models.Report{
		Type:               models.ReportTypeCSPViolation,
		EndpointID:         endpoint.ID,
		URL:                &legacy.DocumentURI,
		UserAgent:          utils.ToStringPtr(userAgent),
		DocumentURI:        &legacy.DocumentURI,
		Referrer:           legacy.Referrer,
		ViolatedDirective:  &legacy.ViolatedDirective,
		EffectiveDirective: &legacy.EffectiveDirective,
		OriginalPolicy:     &legacy.OriginalPolicy,
		Disposition:        &disposition,
		BlockedURI:         legacy.BlockedURI,
		LineNumber:         legacy.LineNumber,
		ColumnNumber:       legacy.ColumnNumber,
		SourceFile:         legacy.SourceFile,
		StatusCode:         legacy.StatusCode,
		ScriptSample:       legacy.ScriptSample,
		RawReport:          datatypes.JSON(bytes.Clone(bytes.TrimSpace(raw))),
	}

	if err := n.reports.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("could not store report: %w", err)
	}

	return &IngestResult{
		Endpoint:         endpoint.Label,
		Format:           FormatLegacyCSP,
		ReportsProcessed: 1,
		TotalReports:     1,
	}, nil
}

func (n *Normalizer) ingestModern(ctx context.Context, endpoint *models.Endpoint, payload *Payload, userAgent string) (*IngestResult, error) {
	processed := 0

	for i, item := range payload.Modern {
		report, ok := n.buildModern(endpoint, item, userAgent)
		if !ok {
			slog.Warn(fmt.Sprintf("Skipping malformed report %d of %d for endpoint '%s'.", i+1, len(payload.Modern), endpoint.Label))
			continue
		}

		if err := n.reports.Create(ctx, report); err != nil {
			return nil, fmt.Errorf("could not store report: %w", err)
		}

		processed++
	}

	return &IngestResult{
		Endpoint:         endpoint.Label,
		Format:           payload.Format,
		ReportsProcessed: processed,
		TotalReports:     len(payload.Modern),
	}, nil
}

func (n *Normalizer) buildModern(endpoint *models.Endpoint, item json.RawMessage, userAgent string) (*models.Report, bool) {
	modern := &ModernReport{}
	if err := json.Unmarshal(item, modern); err != nil {
		return nil, false
	}

	if len(strings.TrimSpace(modern.Type)) < 1 || len(strings.TrimSpace(modern.URL)) < 1 {
		return nil, false
	}

	report := &models.Report{
		Type:       modern.Type,
		EndpointID: endpoint.ID,
		URL:        &modern.URL,
		UserAgent:  modern.UserAgent,
	}

	if report.UserAgent == nil {
		report.UserAgent = utils.ToStringPtr(userAgent)
	}

	if modern.Age != nil {
		age := int64(*modern.Age)
		report.Age = &age
	}

	if body := bytes.TrimSpace(modern.Body); len(body) > 0 && !bytes.Equal(body, []byte("null")) {
		report.Body = datatypes.JSON(bytes.Clone(body))
	}

	return report, true
}
