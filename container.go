package docxscrub

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"
)

// zipMethodZstd is the APPNOTE-assigned compression method ID for
// Zstandard. Some producers emit it; archive/zip does not know it.
const zipMethodZstd uint16 = 93

func newProcessConfig(opts []ProcessOption) processConfig {
	cfg := processConfig{limits: defaultLimits(), workers: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	if cfg.workers < 1 {
		cfg.workers = 1
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	return cfg
}

// Process rewrites the container at inputPath into a new container at
// outputPath, filtering run text in text-bearing parts through the
// charset and copying every other entry verbatim.
//
// The input is opened read-only and never modified. Output is written to
// a temporary file next to outputPath and renamed into place only after
// the whole container has been rewritten; on any failure the temporary
// file is removed and outputPath is left untouched. Unless
// WithOverwrite is set, an existing outputPath fails with
// ErrOutputExists before any work is done.
//
// Process returns ErrInvalidContainer if inputPath is not a readable ZIP
// package, ErrMalformedXML if a text-bearing part does not parse, and
// ErrLimitExceeded if a configured limit is hit. A part the rewriter
// cannot safely handle is copied verbatim and recorded in
// Summary.Warnings instead of failing the run.
func Process(inputPath, outputPath string, set *Charset, opts ...ProcessOption) (*Summary, error) {
	cfg := newProcessConfig(opts)

	if !cfg.overwrite {
		if _, err := os.Lstat(outputPath); err == nil {
			return nil, fmt.Errorf("%w: %s", ErrOutputExists, outputPath)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	rc, err := zip.OpenReader(inputPath)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) || errors.Is(err, zip.ErrInsecurePath) {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidContainer, inputPath, err)
		}
		return nil, err
	}
	defer rc.Close()

	tmp, err := os.CreateTemp(filepath.Dir(outputPath), ".docxscrub-*")
	if err != nil {
		return nil, err
	}
	tmpName := tmp.Name()

	summary, err := rewriteContainer(&rc.Reader, tmp, set, cfg)
	if err == nil {
		err = tmp.Close()
	} else {
		_ = tmp.Close()
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return nil, err
	}
	if err := os.Rename(tmpName, outputPath); err != nil {
		_ = os.Remove(tmpName)
		return nil, err
	}
	cfg.logger.Info("container rewritten",
		"input", inputPath,
		"output", outputPath,
		"parts", summary.PartsRewritten,
		"removed", summary.TotalRemoved())
	return summary, nil
}

// Scrub rewrites an in-memory container and returns the new container
// bytes. It applies the same semantics as Process minus the file
// handling.
func Scrub(data []byte, set *Charset, opts ...ProcessOption) ([]byte, *Summary, error) {
	cfg := newProcessConfig(opts)
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if errors.Is(err, zip.ErrFormat) || errors.Is(err, zip.ErrInsecurePath) {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidContainer, err)
		}
		return nil, nil, err
	}
	var buf bytes.Buffer
	summary, err := rewriteContainer(zr, &buf, set, cfg)
	if err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), summary, nil
}

// rewriteResult is one rewritten part payload, or the failure that
// stopped it.
type rewriteResult struct {
	data  []byte
	tally Tally
	err   error
}

// rewriteContainer streams zr into a new container on w. Entries are
// emitted strictly in input order. Text-bearing parts go through
// Rewrite; everything else is copied in its stored compressed form with
// identical metadata.
func rewriteContainer(zr *zip.Reader, w io.Writer, set *Charset, cfg processConfig) (*Summary, error) {
	if len(zr.File) > cfg.limits.MaxEntries {
		return nil, fmt.Errorf("%w: container has %d entries", ErrLimitExceeded, len(zr.File))
	}
	zr.RegisterDecompressor(zipMethodZstd, zstdDecompressor)

	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, deflateCompressor)
	zw.RegisterCompressor(zipMethodZstd, zstdCompressor)

	summary := &Summary{Removed: Tally{}}

	// An empty charset makes every rewrite the identity, so the whole
	// run degrades to a verbatim copy of each entry.
	identity := set.Len() == 0

	stop := make(chan struct{})
	defer close(stop)
	results := startRewrites(zr, set, cfg, identity, stop)

	for i, f := range zr.File {
		role := ClassifyPart(f.Name)
		if identity || !role.TextBearing() {
			if err := zw.Copy(f); err != nil {
				return nil, fmt.Errorf("copy %s: %w", f.Name, err)
			}
			summary.EntriesCopied++
			continue
		}
		var res rewriteResult
		if results[i] != nil {
			res = <-results[i]
		} else {
			res = rewriteEntry(f, role, set, cfg.limits)
		}
		if res.err != nil {
			if errors.Is(res.err, ErrUnsupportedPart) {
				// Fail safe: keep the original bytes rather than guess.
				if err := zw.Copy(f); err != nil {
					return nil, fmt.Errorf("copy %s: %w", f.Name, err)
				}
				summary.EntriesCopied++
				summary.Warnings = append(summary.Warnings, fmt.Sprintf("%s: %v", f.Name, res.err))
				cfg.logger.Warn("part copied verbatim", "name", f.Name, "reason", res.err)
				continue
			}
			return nil, fmt.Errorf("%s: %w", f.Name, res.err)
		}
		if err := writeRewritten(zw, f, res.data); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.Name, err)
		}
		summary.PartsRewritten++
		summary.Removed.merge(res.tally)
		cfg.logger.Debug("part rewritten", "name", f.Name, "role", role.String(), "removed", res.tally.Total())
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return summary, nil
}

// startRewrites launches the bounded worker pool rewriting text-bearing
// parts when more than one worker is configured. Each selected entry
// index gets its own single-slot result channel so the writer can
// reassemble output in input order no matter which order rewrites finish
// in. Closing stop stops feeding jobs; in-flight rewrites drain into
// their buffered channels and the workers exit.
func startRewrites(zr *zip.Reader, set *Charset, cfg processConfig, identity bool, stop <-chan struct{}) []chan rewriteResult {
	results := make([]chan rewriteResult, len(zr.File))
	if identity || cfg.workers <= 1 {
		return results
	}
	type job struct {
		idx  int
		file *zip.File
		role PartRole
	}
	var jobs []job
	for i, f := range zr.File {
		role := ClassifyPart(f.Name)
		if role.TextBearing() {
			results[i] = make(chan rewriteResult, 1)
			jobs = append(jobs, job{i, f, role})
		}
	}
	ch := make(chan job)
	for range min(cfg.workers, len(jobs)) {
		go func() {
			for j := range ch {
				results[j.idx] <- rewriteEntry(j.file, j.role, set, cfg.limits)
			}
		}()
	}
	go func() {
		defer close(ch)
		for _, j := range jobs {
			select {
			case ch <- j:
			case <-stop:
				return
			}
		}
	}()
	return results
}

// rewriteEntry inflates one part payload and rewrites it. Entries stored
// with a compression method we cannot inflate degrade to
// ErrUnsupportedPart so the caller copies them verbatim.
func rewriteEntry(f *zip.File, role PartRole, set *Charset, limits Limits) rewriteResult {
	if f.CompressedSize64 > limits.MaxPartCompressed {
		return rewriteResult{err: fmt.Errorf("%w: stored part size %d", ErrLimitExceeded, f.CompressedSize64)}
	}
	if f.UncompressedSize64 > limits.MaxPartUncompressed {
		return rewriteResult{err: fmt.Errorf("%w: part size %d", ErrLimitExceeded, f.UncompressedSize64)}
	}
	r, err := f.Open()
	if err != nil {
		if errors.Is(err, zip.ErrAlgorithm) {
			return rewriteResult{err: fmt.Errorf("%w: %v", ErrUnsupportedPart, err)}
		}
		return rewriteResult{err: err}
	}
	defer r.Close()
	data, err := io.ReadAll(io.LimitReader(r, int64(limits.MaxPartUncompressed)+1))
	if err != nil {
		if errors.Is(err, zip.ErrAlgorithm) {
			return rewriteResult{err: fmt.Errorf("%w: %v", ErrUnsupportedPart, err)}
		}
		return rewriteResult{err: err}
	}
	if uint64(len(data)) > limits.MaxPartUncompressed {
		return rewriteResult{err: fmt.Errorf("%w: part inflated beyond limit", ErrLimitExceeded)}
	}
	out, tally, err := Rewrite(data, role, set)
	if err != nil {
		return rewriteResult{err: err}
	}
	return rewriteResult{data: out, tally: tally}
}

// writeRewritten stores a rewritten payload under the original entry's
// header. Name, timestamps, comment, and extra fields are preserved
// verbatim; sizes and CRC are recomputed by the writer. An entry stored
// with a method we cannot re-encode falls back to Deflate.
func writeRewritten(zw *zip.Writer, f *zip.File, data []byte) error {
	hdr := f.FileHeader
	hdr.CRC32 = 0
	hdr.CompressedSize64 = 0
	hdr.UncompressedSize64 = 0
	switch hdr.Method {
	case zip.Store, zip.Deflate, zipMethodZstd:
	default:
		hdr.Method = zip.Deflate
	}
	ew, err := zw.CreateHeader(&hdr)
	if err != nil {
		return err
	}
	_, err = ew.Write(data)
	return err
}

// deflateCompressor recompresses rewritten entries with klauspost's
// flate, a drop-in for the standard library's.
func deflateCompressor(w io.Writer) (io.WriteCloser, error) {
	return flate.NewWriter(w, flate.DefaultCompression)
}

func zstdCompressor(w io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriter(w)
}

// zstdDecompressor lets text-bearing parts stored with the Zstandard
// method be inflated. Pass-through entries never need it; they are
// copied in their stored form.
func zstdDecompressor(r io.Reader) io.ReadCloser {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return errorReadCloser{err}
	}
	return dec.IOReadCloser()
}

type errorReadCloser struct{ err error }

func (e errorReadCloser) Read([]byte) (int, error) { return 0, e.err }
func (e errorReadCloser) Close() error             { return nil }
