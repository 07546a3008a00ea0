package scan

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/moddeps/pkg/errors"
	"github.com/matzehuels/moddeps/pkg/manifest"
	"github.com/matzehuels/moddeps/pkg/modgraph"
)

// DefaultExtensions lists the archive extensions scanned by default.
var DefaultExtensions = []string{".jar"}

// Options configures a folder scan.
type Options struct {
	Extensions []string          // Archive extensions, case-insensitive (default: .jar)
	Parsers    []manifest.Parser // Manifest parsers (default: manifest.Parsers with default options)
	Logger     *log.Logger       // Receives skip warnings and debug traces (default: discard)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	if len(opts.Parsers) == 0 {
		opts.Parsers = manifest.Parsers(manifest.Options{})
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return opts
}

// Skip records an archive or entry that was left out of the graph.
type Skip struct {
	Archive string // Archive file name
	Entry   string // Manifest entry path, empty when the whole archive was skipped
	Err     error
}

// Result is the outcome of a folder scan.
type Result struct {
	Graph    *modgraph.Graph
	Archives int    // Archives opened
	Records  int    // Records added to the graph (including overwrites)
	Skipped  []Skip // Archives and entries that failed
}

// Dir scans every archive in dir and folds the records into a new graph.
// Archives are visited in file name order.
func Dir(ctx context.Context, dir string, opts Options) (*Result, error) {
	opts = opts.WithDefaults()

	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open mods folder %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "%s is not a directory", dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read mods folder %s", dir)
	}

	res := &Result{Graph: modgraph.New()}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !hasExtension(e.Name(), opts.Extensions) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		// Stat follows symlinks; launchers often link jars into the folder.
		if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
			opts.Logger.Debug("Not a regular file", "archive", e.Name(), "err", err)
			continue
		}

		records, skips, err := Archive(path, opts.Parsers)
		if err != nil {
			opts.Logger.Warn("Skipping archive", "archive", e.Name(), "err", err)
			res.Skipped = append(res.Skipped, Skip{Archive: e.Name(), Err: err})
			continue
		}
		res.Archives++

		for _, s := range skips {
			opts.Logger.Warn("Skipping manifest", "archive", s.Archive, "entry", s.Entry, "err", s.Err)
		}
		res.Skipped = append(res.Skipped, skips...)

		if len(records) == 0 {
			opts.Logger.Debug("No manifest found", "archive", e.Name())
		}
		for _, r := range records {
			opts.Logger.Debug("Parsed manifest", "archive", e.Name(), "mod", r.ID, "format", r.Format, "deps", len(r.Dependencies))
			res.Graph.Add(r)
			res.Records++
		}
	}
	return res, nil
}

// Archive opens one zip archive and decodes the first entry of each manifest
// format, in entry order. Manifests without an identifier produce no record.
// The returned error is non-nil only when the archive itself cannot be read;
// per-entry failures are returned as skips.
func Archive(path string, parsers []manifest.Parser) ([]*manifest.Record, []Skip, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidArchive, err, "open %s", filepath.Base(path))
	}
	defer r.Close()

	name := filepath.Base(path)
	seen := make(map[string]bool, len(parsers))

	var records []*manifest.Record
	var skips []Skip
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		p, ok := manifest.Detect(f.Name, parsers...)
		if !ok || seen[p.Type()] {
			continue
		}
		seen[p.Type()] = true

		rec, err := parseEntry(f, p)
		switch {
		case err != nil:
			if pe, ok := err.(*errors.ParseError); ok {
				pe.Archive, pe.Entry = name, f.Name
			}
			skips = append(skips, Skip{Archive: name, Entry: f.Name, Err: err})
		case rec != nil:
			rec.Source = name
			records = append(records, rec)
		}
		if len(seen) == len(parsers) {
			break
		}
	}
	return records, skips, nil
}

func parseEntry(f *zip.File, p manifest.Parser) (*manifest.Record, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open entry: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read entry: %w", err)
	}
	return p.Parse(data)
}

func hasExtension(name string, exts []string) bool {
	ext := filepath.Ext(name)
	for _, e := range exts {
		if strings.EqualFold(ext, "."+strings.TrimPrefix(e, ".")) {
			return true
		}
	}
	return false
}
