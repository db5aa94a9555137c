package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Renderer writes the generated view-models as one JSON file each, named
// after the page data they feed.
type Renderer struct {
	outputDir string
}

// NewRenderer creates a renderer targeting the given directory.
func NewRenderer(outputDir string) *Renderer {
	return &Renderer{outputDir: outputDir}
}

// WriteAll writes every view-model file. Files are written via a temp file
// and rename so a crashed run never leaves a half-written view-model.
func (r *Renderer) WriteAll(result *Result) error {
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	files := map[string]any{
		"members.json":      result.Members,
		"meetings.json":     result.Meetings,
		"dossiers.json":     result.Dossiers,
		"questions.json":    result.Questions,
		"propositions.json": result.Propositions,
		"parties.json":      result.Parties,
		"lobby.json":        result.Lobby,
	}

	for name, data := range files {
		if err := r.writeJSON(name, data); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) writeJSON(name string, data any) error {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	path := filepath.Join(r.outputDir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(encoded, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("publish %s: %w", name, err)
	}
	return nil
}
