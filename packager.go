package pagesnap

import (
	"fmt"
	"os"
	"sync"
)

// BlobRef is a file-backed reference to a finalized document blob.
// It stays retrievable until the caller Releases it.
type BlobRef struct {
	path string

	mu       sync.Mutex
	released bool
}

// Path returns the filesystem path backing the reference.
func (r *BlobRef) Path() string {
	return r.path
}

// URL returns a file:// URL for the reference.
func (r *BlobRef) URL() string {
	return "file://" + r.path
}

// Release removes the backing file. Idempotent; safe to call once the
// caller no longer needs the reference.
func (r *BlobRef) Release() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return nil
	}
	r.released = true
	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("releasing blob reference: %w", err)
	}
	return nil
}

// packageBlob turns serialized document bytes into a GenerationResult:
// a file-backed reference written from the same blob, plus a best-effort
// save to filename when one was requested. The referenced file, the saved
// file, and the returned blob are byte-for-byte identical.
func packageBlob(blob []byte, filename string, warnf func(string, ...any)) (*GenerationResult, error) {
	if len(blob) == 0 {
		return nil, ErrFinalize
	}

	ref, err := os.CreateTemp("", "pagesnap-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("%w: creating blob reference: %v", ErrFinalize, err)
	}
	refPath := ref.Name()

	if _, err := ref.Write(blob); err != nil {
		_ = ref.Close()
		_ = os.Remove(refPath)
		return nil, fmt.Errorf("%w: writing blob reference: %v", ErrFinalize, err)
	}
	if err := ref.Close(); err != nil {
		_ = os.Remove(refPath)
		return nil, fmt.Errorf("%w: closing blob reference: %v", ErrFinalize, err)
	}

	// Persistence is best-effort: a failed save leaves the result intact.
	if filename != "" {
		if err := os.WriteFile(filename, blob, 0o600); err != nil {
			warnf("pagesnap: saving %q: %v", filename, err)
		}
	}

	return &GenerationResult{
		Blob: blob,
		Ref:  &BlobRef{path: refPath},
	}, nil
}
