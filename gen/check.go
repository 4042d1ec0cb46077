package gen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gqlc/gqldoc/doc"
	"github.com/hashicorp/go-multierror"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/afero"
)

// StaleError reports a file whose contents differ from what would be written.
type StaleError struct {
	File string

	// Diff is a human readable diff from the current to the expected contents.
	Diff string
}

func (e StaleError) Error() string {
	return fmt.Sprintf("gen: %s is out of date:\n%s", e.File, e.Diff)
}

// Check compares files with their counterparts in dir, without writing
// anything. Every stale or missing file is reported, along with category
// files in dir that would no longer be written.
//
func Check(fs afero.Fs, dir string, files []File) error {
	var errs *multierror.Error
	dmp := diffmatchpatch.New()

	written := make(map[string]bool, len(files))
	for _, f := range files {
		written[f.Name] = true
	}

	for _, f := range files {
		name := filepath.Join(dir, f.Name)

		cur, err := afero.ReadFile(fs, name)
		if os.IsNotExist(err) {
			errs = multierror.Append(errs, StaleError{File: name, Diff: "file does not exist"})
			continue
		}
		if err != nil {
			return err
		}

		if string(cur) == string(f.Content) {
			continue
		}

		diffs := dmp.DiffMain(string(cur), string(f.Content), false)
		errs = multierror.Append(errs, StaleError{File: name, Diff: dmp.DiffPrettyText(diffs)})
	}

	for _, cat := range doc.Categories {
		for _, ext := range []string{".md", ".html"} {
			base := cat.Slug() + ext
			if written[base] {
				continue
			}

			name := filepath.Join(dir, base)
			exists, err := afero.Exists(fs, name)
			if err != nil {
				return err
			}
			if exists {
				errs = multierror.Append(errs, StaleError{File: name, Diff: "file would no longer be written"})
			}
		}
	}
	return errs.ErrorOrNil()
}
