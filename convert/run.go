package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"logicss/archive"
	"logicss/css"
	"logicss/lint"
	"logicss/logical"
	"logicss/state"
)

// limit for a single style sheet, anything bigger is not worth parsing
const maxStylesheetSize = 64 << 20

// Summary accumulates results of a single run.
type Summary struct {
	Files    int // style sheets processed
	Problems int // findings in report mode
	Changed  int // declarations rewritten in fix mode
	Written  int // files written in fix mode
	Failed   int // style sheets which could not be processed

	errs error
}

// Err returns combined per-file errors.
func (s *Summary) Err() error {
	return s.errs
}

func (s *Summary) fail(err error) {
	s.Failed++
	s.errs = multierr.Append(s.errs, err)
}

// batch keeps state shared by all style sheets of a run.
type batch struct {
	env    *state.LocalEnv
	log    *zap.Logger
	dst    string
	parser *css.Parser
	rule   *lint.Runner
	sum    Summary
}

func newBatch(env *state.LocalEnv, dst string, log *zap.Logger) *batch {
	return &batch{
		env:    env,
		log:    log,
		dst:    dst,
		parser: css.NewParser(log),
		rule:   lint.NewRunner(env.Cfg.Rules.ConvertToLogical.Enabled, env.Mode, log),
	}
}

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Mode = logical.Report
	if cmd.Bool("fix") {
		env.Mode = logical.Fix
	}
	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	// Since zip "standard" does not define file name encoding we may need to
	// force archaic code page for old archives
	if cp := cmd.String("force-zip-cp"); len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil || env.CodePage == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
		}
	}

	if !env.Cfg.Rules.ConvertToLogical.Enabled {
		log.Warn("Rule is disabled in configuration, nothing will be reported or changed", zap.String("rule", lint.RuleName))
	}

	log.Info("Processing starting",
		zap.String("source", src), zap.String("destination", dst), zap.Stringer("mode", env.Mode), zap.Stringer("run", env.RunID))

	b := newBatch(env, dst, log)
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)),
			zap.Int("files", b.sum.Files), zap.Int("problems", b.sum.Problems),
			zap.Int("changed", b.sum.Changed), zap.Int("written", b.sum.Written), zap.Int("failed", b.sum.Failed))
	}(time.Now())

	if err := b.process(ctx, src); err != nil {
		return err
	}
	return b.result()
}

// result turns summary into program outcome.
func (b *batch) result() error {
	if b.sum.Failed > 0 {
		return fmt.Errorf("unable to process %d file(s): %w", b.sum.Failed, b.sum.Err())
	}
	if b.env.Mode == logical.Report && b.sum.Problems > 0 {
		return fmt.Errorf("%d problem(s) found", b.sum.Problems)
	}
	return nil
}

// process determines the input type (directory, archive, or single file) and
// processes accordingly. Path may point inside of an archive, so it is walked
// up until first existing element.
func (b *batch) process(ctx context.Context, src string) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exist - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			return b.processDir(ctx, head)
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		arc, err := isArchiveFile(head)
		if err != nil {
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if arc {
			inner := filepath.ToSlash(strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator)))
			if err := b.processArchive(ctx, head, inner, ""); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			return nil
		}

		if len(tail) != 0 {
			return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}
		// explicitly named file is processed whatever its extension
		b.processFile(ctx, head, filepath.Base(head))
		return nil
	}
	return fmt.Errorf("input source was not found (%s)", src)
}

// processDir walks directory tree in natural order finding style sheets and
// archives and processes them.
func (b *batch) processDir(ctx context.Context, dir string) error {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			b.log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	sort.Sort(natural.StringSlice(paths))

	count := 0
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))

		if b.env.Cfg.Document.HasExtension(path) {
			count++
			b.processFile(ctx, path, rel)
			continue
		}

		arc, err := isArchiveFile(path)
		if err != nil {
			b.log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			continue
		}
		if !arc {
			b.log.Debug("Skipping file, not recognized as style sheet or archive", zap.String("file", path))
			continue
		}
		count++
		if err := b.processArchive(ctx, path, "", filepath.Dir(rel)); err != nil {
			if ctx.Err() != nil {
				return err
			}
			b.log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
			b.sum.fail(fmt.Errorf("%s: %w", path, err))
		}
	}
	if count == 0 {
		b.log.Debug("Nothing to process", zap.String("dir", dir))
	}
	return nil
}

// processArchive walks all files inside archive, finds style sheets under
// "pathIn" and processes them. Output keeps archive relative directory
// "pathOut" followed by path inside of archive.
func (b *batch) processArchive(ctx context.Context, path, pathIn, pathOut string) error {
	count := 0
	err := archive.Walk(ctx, path, pathIn, b.env.CodePage, func(arc string, e archive.Entry) error {
		// file named explicitly is processed whatever its extension
		if e.Name != pathIn && !b.env.Cfg.Document.HasExtension(e.Name) {
			b.log.Debug("Skipping file in archive, not a style sheet", zap.String("archive", arc), zap.String("file", e.Name))
			return nil
		}
		count++

		src := filepath.Join(pathOut, filepath.FromSlash(e.Name))
		data, err := readEntry(e)
		if err != nil {
			b.log.Error("Unable to process file in archive", zap.String("archive", arc), zap.String("file", e.Name), zap.Error(err))
			b.sum.fail(fmt.Errorf("%s: %s: %w", arc, e.Name, err))
			return nil
		}
		b.processData(ctx, data, src)
		return nil
	})
	if err == nil && count == 0 {
		b.log.Debug("Nothing to process", zap.String("archive", path), zap.String("path", pathIn))
	}
	return err
}

func readEntry(e archive.Entry) ([]byte, error) {
	if e.File.UncompressedSize64 > maxStylesheetSize {
		return nil, fmt.Errorf("file is too large (%d bytes)", e.File.UncompressedSize64)
	}
	r, err := e.File.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(io.LimitReader(r, maxStylesheetSize))
}

func (b *batch) processFile(ctx context.Context, path, src string) {
	fi, err := os.Stat(path)
	if err == nil && fi.Size() > maxStylesheetSize {
		err = fmt.Errorf("file is too large (%d bytes)", fi.Size())
	}
	var data []byte
	if err == nil {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		b.log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		b.sum.fail(fmt.Errorf("%s: %w", path, err))
		return
	}
	b.processData(ctx, data, src)
}

// processData handles single style sheet and records its outcome. "src" is
// the source path relative to SOURCE (always including file name).
func (b *batch) processData(ctx context.Context, data []byte, src string) {
	if err := b.processStylesheet(ctx, data, src); err != nil {
		b.log.Error("Unable to process file", zap.String("file", src), zap.Error(err))
		b.sum.fail(fmt.Errorf("%s: %w", src, err))
	}
}

// processStylesheet parses, checks and (in fix mode) writes out single style
// sheet.
func (b *batch) processStylesheet(_ context.Context, data []byte, src string) (rerr error) {
	env := b.env

	var outputName string
	b.log.Debug("Processing style sheet", zap.String("from", src))
	defer func(start time.Time) {
		if r := recover(); r != nil {
			b.log.Error("Processing ended with panic",
				zap.Any("panic", r), zap.String("from", src), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("processing panic: %v", r)
			return
		}
		b.log.Debug("Processing completed", zap.String("from", src), zap.String("to", outputName), zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	if !isStylesheetData(data[:min(len(data), headerSize)]) {
		return errors.New("content is not recognized as style sheet")
	}

	text, err := decodeSource(data)
	if err != nil {
		return err
	}
	b.sum.Files++

	sheet := b.parser.Parse(text.data, src)
	for _, w := range sheet.Warnings {
		b.log.Warn("Style sheet parsing problem", zap.String("file", src), zap.String("problem", w))
	}

	res := b.rule.Run(sheet)
	for _, f := range res.Findings {
		b.log.Warn(f.Message(), zap.String("file", src), zap.Int("line", f.Line), zap.String("rule", f.Rule))
	}
	b.sum.Problems += len(res.Findings)
	b.sum.Changed += len(res.Changes)

	if env.Rpt != nil {
		id := fmt.Sprintf("%04d-%s", b.sum.Files, strings.ReplaceAll(filepath.ToSlash(src), "/", "_"))
		env.Rpt.StoreData("dump/"+id+".txt", dumpStylesheet(src, text.charset, sheet, res))
		env.Rpt.StoreData("source/"+id, data)
	}

	if env.Mode != logical.Fix {
		return nil
	}

	out := data
	if len(res.Changes) > 0 {
		var buf bytes.Buffer
		if _, err := sheet.WriteTo(&buf); err != nil {
			return fmt.Errorf("unable to serialize style sheet: %w", err)
		}
		if out, err = text.encode(buf.Bytes()); err != nil {
			return err
		}
	}

	outputName = buildOutputPath(src, b.dst, len(res.Changes), env)
	if err := writeOutput(outputName, out, env.Overwrite, b.log); err != nil {
		return err
	}
	b.sum.Written++

	if len(res.Changes) > 0 {
		b.log.Info("Style sheet fixed", zap.String("from", src), zap.String("to", outputName), zap.Int("changed", len(res.Changes)))
	}
	return nil
}

// writeOutput writes result refusing to replace existing file unless
// overwrite was requested.
func writeOutput(name string, data []byte, overwrite bool, log *zap.Logger) error {
	if _, err := os.Stat(name); err == nil {
		if !overwrite {
			return fmt.Errorf("output file already exists: %s", name)
		}
		log.Debug("Overwriting existing file", zap.String("file", name))
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(name, data, 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	return nil
}
