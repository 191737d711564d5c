// Package pipeline orchestrates the two stencil flows: registering a
// template (infer schema, clean, index) and filling a registered
// template with a candidate record.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jackzampolin/stencil/internal/candidate"
	"github.com/jackzampolin/stencil/internal/config"
	"github.com/jackzampolin/stencil/internal/docx"
	"github.com/jackzampolin/stencil/internal/engine"
	"github.com/jackzampolin/stencil/internal/store"
)

// Service wires the engine to the template store and filesystem layout.
type Service struct {
	cfg   *config.Config
	store *store.Store
	log   *slog.Logger
}

// New returns a pipeline service.
func New(cfg *config.Config, st *store.Store, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{cfg: cfg, store: st, log: log}
}

// Store exposes the underlying template store.
func (s *Service) Store() *store.Store { return s.store }

// Register infers a schema from the template at path, writes a cleaned
// copy under the template directory, and indexes both under name. An
// empty name defaults to the file's base name without extension.
func (s *Service) Register(ctx context.Context, path, name string) (*store.Template, error) {
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	log := s.log.With("template", name, "source", path)
	log.Info("registering template")

	doc, err := docx.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening template: %w", err)
	}

	schema := engine.Extract(doc, name, log)
	if len(schema.Sections) == 0 {
		return nil, fmt.Errorf("no sections recognized in %s", path)
	}

	engine.NewCleaner(doc, schema, log).Clean()

	if err := os.MkdirAll(s.cfg.TemplateDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating template directory: %w", err)
	}
	cleanedPath := filepath.Join(s.cfg.TemplateDir, name+".docx")
	if err := doc.Save(cleanedPath); err != nil {
		return nil, fmt.Errorf("saving cleaned template: %w", err)
	}
	schema.SourceFile = cleanedPath

	tmpl := &store.Template{
		Name:        name,
		SourceFile:  path,
		CleanedPath: cleanedPath,
		Schema:      *schema,
	}
	if err := s.store.Put(tmpl); err != nil {
		return nil, err
	}

	log.Info("template registered",
		"sections", len(schema.Sections), "cleaned", cleanedPath)
	return tmpl, nil
}

// Fill loads the named template's cleaned copy, injects the candidate
// record, and writes the result to outPath. An empty outPath derives
// one from the candidate name next to the cleaned copy.
func (s *Service) Fill(ctx context.Context, templateName string, rec *candidate.Record, outPath string) (string, error) {
	jobID := uuid.NewString()
	log := s.log.With("job_id", jobID, "template", templateName)
	log.Info("starting fill", "candidate", rec.FullName)

	tmpl, err := s.store.Get(templateName)
	if err != nil {
		return "", err
	}

	doc, err := docx.Open(tmpl.CleanedPath)
	if err != nil {
		return "", fmt.Errorf("opening cleaned template: %w", err)
	}

	if err := engine.NewFiller(log).Fill(doc, rec); err != nil {
		return "", fmt.Errorf("filling template: %w", err)
	}

	if outPath == "" {
		base := strings.ReplaceAll(rec.FullName, " ", "_")
		if base == "" {
			base = jobID
		}
		outPath = filepath.Join(s.cfg.TemplateDir, fmt.Sprintf("%s_%s.docx", templateName, base))
	}
	if err := doc.Save(outPath); err != nil {
		return "", fmt.Errorf("saving filled document: %w", err)
	}

	log.Info("fill complete", "output", outPath)
	return outPath, nil
}

// FillFile is Fill with the candidate record read from a JSON file.
func (s *Service) FillFile(ctx context.Context, templateName, candidatePath, outPath string) (string, error) {
	rec, err := candidate.Load(candidatePath)
	if err != nil {
		return "", err
	}
	return s.Fill(ctx, templateName, rec, outPath)
}
