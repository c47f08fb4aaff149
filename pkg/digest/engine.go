// Package digest computes SHA-256 digests of executable images.
package digest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

// DefaultChunkSize is the read size used when none is configured.
const DefaultChunkSize = 4096

// Reason classifies why a digest could not be produced.
type Reason int

const (
	// PathUnreadable means the file could not be opened for reading.
	PathUnreadable Reason = iota + 1
	// ReadInterrupted means reading failed after the file was opened.
	ReadInterrupted
)

func (r Reason) String() string {
	switch r {
	case PathUnreadable:
		return "path_unreadable"
	case ReadInterrupted:
		return "read_interrupted"
	default:
		return "unknown"
	}
}

// Failure is returned instead of a digest. No partial digest is ever returned with it.
type Failure struct {
	Reason Reason
	Path   string
	Err    error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("digest %s: %s: %v", f.Path, f.Reason, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// IsReason reports whether err is a *Failure with the given reason.
func IsReason(err error, reason Reason) bool {
	var f *Failure
	if !errors.As(err, &f) {
		return false
	}
	return f.Reason == reason
}

// Engine streams files through SHA-256 in fixed-size chunks.
type Engine struct {
	chunkSize int
}

func NewEngine(chunkSize int) *Engine {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Engine{chunkSize: chunkSize}
}

func (e *Engine) ChunkSize() int {
	return e.chunkSize
}

// File returns the lowercase hex SHA-256 of the file at path. The file is opened read-only,
// so other processes (including the one executing it) keep their access.
func (e *Engine) File(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &Failure{Reason: PathUnreadable, Path: path, Err: errors.WithStack(err)}
	}
	defer f.Close()

	sum, err := e.Reader(ctx, f)
	if err != nil {
		return "", &Failure{Reason: ReadInterrupted, Path: path, Err: err}
	}
	return sum, nil
}

// Digest lets the engine serve directly as the scanner's digester.
func (e *Engine) Digest(ctx context.Context, path string) (string, error) {
	return e.File(ctx, path)
}

// Reader hashes r until EOF, checking ctx between chunks.
func (e *Engine) Reader(ctx context.Context, r io.Reader) (string, error) {
	h := sha256.New()
	buf := make([]byte, e.chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return "", errors.WithStack(err)
		}
		n, err := r.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.Wrap(err, "read chunk")
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
