package pipeline

import (
	"errors"
	"io"

	"github.com/deploymenttheory/streamkit/internal/stream"
)

// MaxCloneSize bounds CloneStream: cloning an input this large into
// memory is almost always a caller bug rather than intended behavior.
const MaxCloneSize = 64_000_000

// ErrCloneTooLarge is returned by CloneStream when src reports (or
// turns out to contain) more than MaxCloneSize bytes.
var ErrCloneTooLarge = errors.New("pipeline: stream too large to clone")

// CloneStream reads all of src into memory and returns an independent
// InputStream over the copy. src's own position is left unchanged, and
// the clone is positioned to match it, so cloning is transparent to a
// caller mid-read. It refuses anything over MaxCloneSize.
func CloneStream(src stream.InputStream) (*stream.MemoryBlockStream, error) {
	if full := src.FullSize(); full != stream.SizeUnknown && full > MaxCloneSize {
		return nil, ErrCloneTooLarge
	}

	start := src.Position()

	if m, ok := src.(stream.Mappable); ok {
		if data := m.Map(); data != nil {
			if len(data) > MaxCloneSize {
				return nil, ErrCloneTooLarge
			}
			cp := make([]byte, len(data))
			copy(cp, data)
			clone := stream.NewMemoryBlockStream(cp)
			clone.SetPosition(start)
			return clone, nil
		}
	}

	if !src.SetPosition(0) {
		return nil, errors.New("pipeline: clone source does not support rewinding to read from the start")
	}

	buf := make([]byte, 0, 4096)
	chunk := make([]byte, 4096)
	for {
		n, err := src.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			if len(buf) > MaxCloneSize {
				return nil, ErrCloneTooLarge
			}
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		if src.EndReached() {
			break
		}
	}

	src.SetPosition(start)

	clone := stream.NewMemoryBlockStream(buf)
	clone.SetPosition(start)
	return clone, nil
}
