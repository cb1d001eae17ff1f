// Package bytesource loads whole files into memory as viewer buffers.
package bytesource

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"

	"github.com/kobzarvs/hexview/internal/buffer"
	"github.com/kobzarvs/hexview/internal/logger"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrFileRead     = errors.New("file read error")
	ErrAllocation   = errors.New("cannot allocate buffer")
)

const DefaultChunkSize = 100 << 20

// Source provides file bytes to the viewer.
type Source interface {
	Exists(path string) bool
	Size(path string) (int64, error)
	Load(path string) (*buffer.Buffer, error)
}

// Options selects the load strategy and the geometry of produced buffers.
type Options struct {
	// Unlimited reads in ChunkSize pieces with no size cap. Otherwise the
	// file is stat'ed and read in one go, refusing anything above MaxFileSize.
	Unlimited   bool
	ChunkSize   int
	MaxFileSize int64
	RowWidth    int
	PageHeight  int
}

// FileSource reads from the local filesystem.
type FileSource struct {
	opts Options
	fsys fs.FS
}

func NewFileSource(opts Options) *FileSource {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = math.MaxInt
	}
	return &FileSource{opts: opts}
}

// NewFSSource reads paths from fsys instead of the OS filesystem.
func NewFSSource(fsys fs.FS, opts Options) *FileSource {
	s := NewFileSource(opts)
	s.fsys = fsys
	return s
}

func (s *FileSource) Options() Options { return s.opts }

func (s *FileSource) open(path string) (fs.File, error) {
	if s.fsys != nil {
		return s.fsys.Open(path)
	}
	return os.Open(path)
}

func (s *FileSource) Exists(path string) bool {
	if path == "" {
		return false
	}
	f, err := s.open(path)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

func (s *FileSource) Size(path string) (int64, error) {
	f, err := s.open(path)
	if err != nil {
		return 0, openError(path, err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrFileRead, path, err)
	}
	return info.Size(), nil
}

// Load reads the whole file. On error no buffer is returned, so callers
// never observe partially read data.
func (s *FileSource) Load(path string) (*buffer.Buffer, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty file name", ErrFileNotFound)
	}
	f, err := s.open(path)
	if err != nil {
		return nil, openError(path, err)
	}
	defer f.Close()

	var data []byte
	if s.opts.Unlimited {
		data, err = readChunked(f, s.opts.ChunkSize, statSize(f), path)
	} else {
		data, err = s.readWhole(f, path)
	}
	if err != nil {
		logger.Warn("load failed", "path", path, "error", err)
		return nil, err
	}
	logger.Info("file loaded", "path", path, "bytes", len(data), "chunked", s.opts.Unlimited)
	return buffer.New(path, data, s.opts.RowWidth, s.opts.PageHeight), nil
}

func (s *FileSource) readWhole(f fs.File, path string) ([]byte, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileRead, path, err)
	}
	size := info.Size()
	if size < 0 || size > s.opts.MaxFileSize || size > math.MaxInt {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrAllocation, path, size)
	}
	data := make([]byte, size)
	n, err := io.ReadFull(f, data)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileRead, path, err)
	}
	// The file may have shrunk between stat and read.
	return data[:n], nil
}

// readChunked reads r to the end in chunkSize pieces. A non-negative
// sizeHint shrinks the first chunk to sizeHint+1 so small files are read
// with a single allocation.
func readChunked(r io.Reader, chunkSize int, sizeHint int64, path string) ([]byte, error) {
	var data []byte
	next := chunkSize
	if sizeHint >= 0 && sizeHint < int64(chunkSize) {
		next = int(sizeHint) + 1
	}
	for {
		if len(data) > math.MaxInt-next {
			return nil, fmt.Errorf("%w: %s exceeds addressable memory", ErrAllocation, path)
		}
		data = growTo(data, len(data)+next)
		n, err := io.ReadFull(r, data[len(data)-next:])
		data = data[:len(data)-next+n]
		logger.Debug("chunk loaded", "path", path, "bytes", len(data))
		if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrFileRead, path, err)
		}
		next = chunkSize
	}
	// Drop the spare capacity of a mostly empty last chunk.
	if cap(data)-len(data) > len(data)/8 {
		return append([]byte(nil), data...), nil
	}
	return data[:len(data):len(data)], nil
}

// statSize is the size f reports, or -1 when it is unknown.
func statSize(f fs.File) int64 {
	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return -1
	}
	return info.Size()
}

func growTo(b []byte, n int) []byte {
	if n <= cap(b) {
		return b[:n]
	}
	grown := make([]byte, n, max(n, 2*cap(b)))
	copy(grown, b)
	return grown
}

func openError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	return fmt.Errorf("%w: %s: %v", ErrFileRead, path, err)
}
