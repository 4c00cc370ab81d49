package catalog

import (
	"bufio"
	"context"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/logbook/pkg/errors"
	"github.com/agentstation/logbook/pkg/logging"
	"github.com/agentstation/logbook/pkg/logline"
)

// ctxCheckLines is how many lines are read between context checks.
const ctxCheckLines = 4096

// loader performs one scan of the root directory.
type loader struct {
	fsys    fs.FS
	root    string
	report  *LoadReport
	records []Record
}

// run walks the tree and returns the records in encounter order. Only a
// context error aborts the walk.
func (l *loader) run(ctx context.Context) ([]Record, error) {
	log := logging.FromContext(ctx)

	info, err := fs.Stat(l.fsys, ".")
	if err != nil || !info.IsDir() {
		l.report.RootMissing = true
		log.Warn().Str("root", l.root).Msg("Log directory not found or not a directory, catalog is empty")
		return []Record{}, nil
	}

	if err := l.walk(ctx, "."); err != nil {
		return nil, err
	}
	if l.records == nil {
		l.records = []Record{}
	}
	return l.records, nil
}

// walk visits the files of dir in name order, then descends into its
// subdirectories in name order. Symlinked directories are not followed.
func (l *loader) walk(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := fs.ReadDir(l.fsys, dir)
	if err != nil {
		l.report.DirsFailed++
		logging.FromContext(ctx).Error().
			Err(errors.WrapIO("walk", l.source(dir), err)).
			Msg("Skipping unreadable directory")
		return nil
	}

	var subdirs []string
	for _, entry := range entries {
		name := path.Join(dir, entry.Name())
		switch {
		case entry.IsDir():
			subdirs = append(subdirs, name)
			continue
		case entry.Type()&fs.ModeSymlink != 0:
			if info, err := fs.Stat(l.fsys, name); err == nil && info.IsDir() {
				continue
			}
		case !entry.Type().IsRegular():
			continue
		}

		if err := ctx.Err(); err != nil {
			return err
		}
		if err := l.loadFile(ctx, name); err != nil {
			return err
		}
	}

	for _, sub := range subdirs {
		if err := l.walk(ctx, sub); err != nil {
			return err
		}
	}
	return nil
}

// source maps a slash-separated fs path to the path reported on records.
// The root is kept as configured, so "./logs" yields "./logs/app.log".
// Record fingerprints hash this string.
func (l *loader) source(name string) string {
	if name == "." {
		return l.root
	}
	rel := filepath.FromSlash(name)
	if l.root == "" || strings.HasSuffix(l.root, string(filepath.Separator)) {
		return l.root + rel
	}
	return l.root + string(filepath.Separator) + rel
}

// loadFile appends the records of one file. A file that cannot be read is
// dropped as a whole; only context errors are returned.
func (l *loader) loadFile(ctx context.Context, name string) error {
	source := l.source(name)
	log := logging.FromContext(logging.WithSource(ctx, source))
	l.report.FilesScanned++

	records, malformed, err := readRecords(ctx, l.fsys, name, source, log)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		l.report.FilesFailed++
		log.Error().Err(err).Msg("Skipping unreadable log file")
		return nil
	}

	l.report.MalformedLines += malformed
	l.records = append(l.records, records...)
	return nil
}

// readRecords parses every line of one file. Invalid UTF-8 is replaced
// with U+FFFD, blank lines are ignored and malformed lines are counted.
func readRecords(ctx context.Context, fsys fs.FS, name, source string, log *zerolog.Logger) ([]Record, int, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, 0, errors.WrapIO("open", source, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	var (
		records   []Record
		malformed int
		reader    = bufio.NewReader(f)
	)
	for lineNo := 1; ; lineNo++ {
		raw, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, 0, errors.WrapIO("read", source, readErr)
		}
		if lineNo%ctxCheckLines == 0 {
			if err := ctx.Err(); err != nil {
				return nil, 0, err
			}
		}

		line := strings.TrimSpace(strings.ToValidUTF8(raw, "\uFFFD"))
		if line != "" {
			fields, err := logline.Parse(line)
			if err != nil {
				malformed++
				log.Debug().Int("line", lineNo).Str("content", line).Err(err).Msg("Skipping malformed line")
			} else {
				records = append(records, newRecord(fields, source, lineNo))
			}
		}

		if readErr != nil {
			return records, malformed, nil
		}
	}
}
