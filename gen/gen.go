// Package gen contains utils for writing rendered documentation.
package gen

//go:generate mockgen -write_package_comment=false -package=gen -destination=./mock.go github.com/gqlc/gqldoc/gen GeneratorContext

import (
	"context"
	"fmt"
	"io"
)

// GeneratorContext represents the directory to which
// documentation is to be written to.
//
type GeneratorContext interface {
	// Open opens a file in the GeneratorContext (i.e. directory).
	Open(filename string) (io.WriteCloser, error)
}

type genCtx string

var genCtxKey = genCtx("genCtx")

// WithContext returns a prepared context.Context
// with the given GeneratorContext.
//
func WithContext(ctx context.Context, gCtx GeneratorContext) context.Context {
	return context.WithValue(ctx, genCtxKey, gCtx)
}

// Context returns the generator context.
func Context(ctx context.Context) GeneratorContext {
	gCtx, _ := ctx.Value(genCtxKey).(GeneratorContext)
	return gCtx
}

// GeneratorError represents an error from writing a file.
type GeneratorError struct {
	// File is the file being written when the error was encountered.
	File string

	// Format is the output format of the file, e.g. markdown.
	Format string

	// Msg describes the underlying problem.
	Msg string
}

func (e GeneratorError) Error() string {
	return fmt.Sprintf("gen: error occurred writing %s:%s %s", e.Format, e.File, e.Msg)
}
