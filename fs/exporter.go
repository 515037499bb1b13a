// Package fs writes conversion output to the local file system.
package fs

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fwojciec/llmfeeder"
)

// Exporter writes Markdown files and export archives into a directory.
// Files are staged under a temporary name and renamed into place, so a
// reader never observes a partially written file.
type Exporter struct {
	dir string
}

// NewExporter creates an Exporter writing into dir.
func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir}
}

// WriteMarkdown saves markdown as {SanitizeFilename(title)}.md, appending
// _1, _2, ... when a file of that name already exists. Returns the path
// written.
func (e *Exporter) WriteMarkdown(title, markdown string) (string, error) {
	base := llmfeeder.SanitizeFilename(title)
	name := base + ".md"
	for n := 1; e.exists(name); n++ {
		name = base + "_" + strconv.Itoa(n) + ".md"
	}
	return e.WriteFile(name, []byte(markdown))
}

// WriteArchive saves an export archive under filename, replacing any file
// of the same name. Returns the path written.
func (e *Exporter) WriteArchive(data []byte, filename string) (string, error) {
	return e.WriteFile(filename, data)
}

// WriteFile atomically writes data to name inside the export directory.
// Returns EINVALID if name is not a plain file name.
func (e *Exporter) WriteFile(name string, data []byte) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", llmfeeder.Errorf(llmfeeder.EINVALID, "invalid export file name %q", name)
	}
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(e.dir, "."+name+".*.tmp")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", err
	}

	path := filepath.Join(e.dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}

func (e *Exporter) exists(name string) bool {
	_, err := os.Stat(filepath.Join(e.dir, name))
	return err == nil
}
