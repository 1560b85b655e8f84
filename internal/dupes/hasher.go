package dupes

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"sync"

	"github.com/spf13/afero"
)

// DefaultChunkSize bounds per-file memory while amortizing read calls.
const DefaultChunkSize = 8 * 1024

// Hasher computes content digests. MD5 is used for throughput; grouping is
// always within a size bucket, so the digest is never the only key.
type Hasher struct {
	fs         afero.Fs
	chunkSize  int
	bufferPool *sync.Pool
}

// NewHasher creates a hasher reading from fs in chunkSize reads.
func NewHasher(fs afero.Fs, chunkSize int) *Hasher {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Hasher{
		fs:        fs,
		chunkSize: chunkSize,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, chunkSize)
				return &buf
			},
		},
	}
}

// Hash streams rec through MD5. Any failure, including a size that no longer
// matches the walk, is returned as a *HashError.
func (h *Hasher) Hash(ctx context.Context, rec FileRecord) (HashedRecord, error) {
	digest, err := h.digest(ctx, rec)
	if err != nil {
		return HashedRecord{}, &HashError{Path: rec.Path, Err: err}
	}
	return HashedRecord{FileRecord: rec, Digest: digest}, nil
}

func (h *Hasher) digest(ctx context.Context, rec FileRecord) (string, error) {
	file, err := h.fs.Open(rec.Path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	bufPtr := h.bufferPool.Get().(*[]byte)
	defer h.bufferPool.Put(bufPtr)
	buf := *bufPtr

	hasher := md5.New()
	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		n, readErr := file.Read(buf)
		if n > 0 {
			hasher.Write(buf[:n])
			total += int64(n)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return "", readErr
		}
	}

	if total != rec.Size {
		return "", fmt.Errorf("size changed during scan: walked %d bytes, read %d", rec.Size, total)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
