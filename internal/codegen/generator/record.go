package generator

import (
	"hash"
	"io"

	"golang.org/x/crypto/blake2b"

	"github.com/Alia5/safegen/internal/codegen/generator/php"
)

// Digest returns the BLAKE2b-256 digest of data.
func Digest(data []byte) [blake2b.Size256]byte {
	return blake2b.Sum256(data)
}

func newHash() hash.Hash {
	// New256 only fails for keys longer than 64 bytes.
	h, _ := blake2b.New256(nil)
	return h
}

// recordingOutput reports the size and digest of every file closed on it.
type recordingOutput struct {
	php.Output
	onClose func(path string, size int, digest []byte)
}

func (r *recordingOutput) Create(path string) (io.WriteCloser, error) {
	w, err := r.Output.Create(path)
	if err != nil {
		return nil, err
	}
	return &recordingFile{w: w, path: path, h: newHash(), onClose: r.onClose}, nil
}

type recordingFile struct {
	w       io.WriteCloser
	path    string
	h       hash.Hash
	size    int
	onClose func(path string, size int, digest []byte)
}

func (f *recordingFile) Write(p []byte) (int, error) {
	n, err := f.w.Write(p)
	f.h.Write(p[:n])
	f.size += n
	return n, err
}

func (f *recordingFile) Close() error {
	if err := f.w.Close(); err != nil {
		return err
	}
	f.onClose(f.path, f.size, f.h.Sum(nil))
	return nil
}
