package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dukex/flowlint/pkg/migration"
	"github.com/dukex/flowlint/pkg/models"
	"github.com/dukex/flowlint/pkg/services"
)

const (
	outputText = "text"
	outputJSON = "json"
)

var ErrUnknownOutput = errors.New("unknown output format")

type printer struct {
	w      io.Writer
	format string
}

func newPrinter(w io.Writer, format string) (*printer, error) {
	if w == nil {
		w = os.Stdout
	}

	switch format {
	case outputText, outputJSON:
		return &printer{w: w, format: format}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOutput, format)
	}
}

func (p *printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func (p *printer) validation(result models.ValidationResult) error {
	if p.format == outputJSON {
		return p.json(result)
	}

	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)

	for _, e := range result.Errors {
		node := e.NodeID
		if node == "" {
			node = "-"
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Severity, node, e.Kind, e.Message)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	if result.IsValid {
		_, err := fmt.Fprintf(p.w, "valid (%d warnings)\n", len(result.Warnings()))

		return err
	}

	_, err := fmt.Fprintln(p.w, "invalid")

	return err
}

func (p *printer) connection(result models.ConnectionResult) error {
	if p.format == outputJSON {
		return p.json(result)
	}

	if result.IsValid {
		_, err := fmt.Fprintln(p.w, "connection allowed")

		return err
	}

	_, err := fmt.Fprintf(p.w, "connection rejected: %s\n", result.Message)

	return err
}

func (p *printer) suggestions(fieldPath string, suggestions []models.Suggestion) error {
	if p.format == outputJSON {
		return p.json(map[string]any{"field_path": fieldPath, "suggestions": suggestions})
	}

	if len(suggestions) == 0 {
		_, err := fmt.Fprintf(p.w, "no object type matches %q\n", fieldPath)

		return err
	}

	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OBJECT TYPE\tCONFIDENCE\tREASON")

	for _, s := range suggestions {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", s.SuggestedObjectTypeID, s.Confidence, s.Reason)
	}

	return tw.Flush()
}

func (p *printer) plan(plan *services.Plan) error {
	if p.format == outputJSON {
		return p.json(plan)
	}

	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NODE\tKEY\tFIELD\tOBJECT TYPE")

	for _, d := range plan.Detections {
		target := plan.Mapping[d.Value]
		if target == "" {
			target = "?"
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.NodeID, d.ConfigKey, d.Value, target)
	}

	return tw.Flush()
}

func (p *printer) migration(result migration.Result) error {
	if p.format == outputJSON {
		return p.json(result)
	}

	migrated := 0

	for _, r := range result.Results {
		if r.Migrated {
			migrated++
		}
	}

	fmt.Fprintf(p.w, "migrated %d of %d references\n", migrated, len(result.Results))

	for _, e := range result.Errors {
		fmt.Fprintf(p.w, "  %s\n", e)
	}

	return nil
}
