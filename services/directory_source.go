package services

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cyphera/cyphera-autotax/types/business"
	"github.com/pkg/errors"
)

// DirectorySource reads every .yaml and .yml file in one directory, in name
// order. Subdirectories are ignored.
type DirectorySource struct {
	dir string
}

// NewDirectorySource creates a catalog source over dir.
func NewDirectorySource(dir string) *DirectorySource {
	return &DirectorySource{dir: dir}
}

// Describe names the directory for logs and errors.
func (s *DirectorySource) Describe() string {
	return "dir:" + s.dir
}

// Documents reads the catalog files.
func (s *DirectorySource) Documents(ctx context.Context) ([]business.CatalogDocument, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read catalog directory %s", s.dir)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	docs := make([]business.CatalogDocument, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(s.dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read catalog file %s", path)
		}
		docs = append(docs, business.CatalogDocument{Name: name, Data: data})
	}
	return docs, nil
}
