package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/elonfeng/prodradar/pkg/product"
	"go.uber.org/zap"
)

// File reads candidate drops written by scraper jobs. Each path may be a
// JSON file or a glob; every file holds a JSON array of candidates.
type File struct {
	paths []string
	log   *zap.SugaredLogger
}

// NewFile creates a new file source.
func NewFile(paths []string, log *zap.SugaredLogger) *File {
	return &File{paths: paths, log: log}
}

func (f *File) Name() Kind { return KindFile }

func (f *File) Collect(ctx context.Context) ([]Candidate, error) {
	var all []Candidate

	for _, pattern := range f.paths {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}

		for _, path := range matches {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			candidates, err := readCandidates(path)
			if err != nil {
				f.log.Warnw("skip candidate file", "path", path, "error", err)
				continue
			}
			all = append(all, candidates...)
		}
	}

	return all, nil
}

func readCandidates(path string) ([]Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var candidates []Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	var valid []Candidate
	for _, c := range candidates {
		if c.ExternalID == "" || c.Name == "" {
			continue
		}
		if c.Source == "" {
			c.Source = product.SourceManual
		}
		valid = append(valid, c)
	}
	return valid, nil
}
