package core

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/huangsam/gitwrapped/core/authors"
	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/internal/outwriter"
	"github.com/huangsam/gitwrapped/schema"
)

// ExecuteMappingShow prints the author mapping. JSON output is the mapping file
// format itself, so it can be edited and passed back to mapping set.
func ExecuteMappingShow(cfg *contract.Config) error {
	store := authors.NewStore(cfg.MappingFile)
	m := store.Snapshot()
	if cfg.Output == schema.JSONOut {
		return writeMappingJSON(os.Stdout, m)
	}
	return outwriter.WriteMapping(mappingRows(m), store.Path(), cfg)
}

// ExecuteMappingSet replaces the author mapping with the JSON document at path.
// A path of "-" reads standard input.
func ExecuteMappingSet(w io.Writer, cfg *contract.Config, path string) error {
	raw, err := readMappingInput(path)
	if err != nil {
		return err
	}
	store := authors.NewStore(cfg.MappingFile)
	if err := store.Update(raw); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "✅ Author mapping updated with %d authors (%s)\n", store.Snapshot().Len(), store.Path())
	return nil
}

// ExecuteMappingAdd adds or replaces one canonical author in the mapping.
func ExecuteMappingAdd(w io.Writer, cfg *contract.Config, name string, emails []string, color string) error {
	store := authors.NewStore(cfg.MappingFile)
	entry, err := store.AddAuthor(name, emails, color)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "✅ Mapped %s to [%s] with color %s\n", strings.TrimSpace(name), strings.Join(entry.Emails, ", "), entry.Color)
	return nil
}

func readMappingInput(path string) ([]byte, error) {
	if path == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read mapping from stdin: %w", err)
		}
		return raw, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file: %w", err)
	}
	return raw, nil
}

func writeMappingJSON(w io.Writer, m authors.Mapping) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("error writing JSON output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func mappingRows(m authors.Mapping) []schema.MappingEntry {
	entries := m.Entries()
	rows := make([]schema.MappingEntry, len(entries))
	for i, e := range entries {
		rows[i] = schema.MappingEntry{Name: e.Name, Emails: e.Emails, Color: e.Color}
	}
	return rows
}
