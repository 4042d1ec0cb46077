package gen

import (
	"bytes"
	"io"
	"sync"
)

// TestCtx is a noop closer, which wraps an io.Writer
// and only meant to be used for tests.
//
type TestCtx struct {
	io.Writer
}

// Open returns the underlying io.Writer.
func (ctx TestCtx) Open(filename string) (io.WriteCloser, error) { return ctx, nil }

// Close always returns nil.
func (ctx TestCtx) Close() error { return nil }

// MemCtx is a GeneratorContext which keeps every opened file
// in memory. It is only meant to be used for tests.
//
type MemCtx struct {
	mu    sync.Mutex
	Files map[string]*bytes.Buffer
}

// Open returns a new in-memory file, replacing any previous one of the same name.
func (ctx *MemCtx) Open(filename string) (io.WriteCloser, error) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	if ctx.Files == nil {
		ctx.Files = make(map[string]*bytes.Buffer)
	}
	b := new(bytes.Buffer)
	ctx.Files[filename] = b
	return TestCtx{Writer: b}, nil
}

// File returns the contents written to filename.
func (ctx *MemCtx) File(filename string) (string, bool) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	b, ok := ctx.Files[filename]
	if !ok {
		return "", false
	}
	return b.String(), true
}
