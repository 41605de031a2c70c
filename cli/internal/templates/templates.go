// Package templates holds the embedded starter kit written by hatch init.
//
// Overview:
//   - Responsibility: Ship a starter hatch.yaml and sample template inside the binary
//   - Key Types: Embedded file system, WriteStarter
//   - Concurrency Model: Read-only embedded data, safe for concurrent use
//   - Error Semantics: ALREADY_EXISTS when a starter file is present and force is off
//   - Performance Notes: Files are copied straight from the embedded FS
//
// Usage:
//
//	written, err := templates.WriteStarter(project, false)
package templates

import (
	"embed"
	"io/fs"
	"sort"

	"go.eggybyte.com/hatch/core/errors"
	"go.eggybyte.com/hatch/internal/projectfs"
)

//go:embed starter
var starterFS embed.FS

// Starter returns the starter kit rooted at its top directory.
func Starter() fs.FS {
	sub, err := fs.Sub(starterFS, "starter")
	if err != nil {
		panic("templates: embedded starter kit missing: " + err.Error())
	}
	return sub
}

// StarterFiles lists the starter kit's file paths in sorted order.
func StarterFiles() ([]string, error) {
	var files []string
	err := fs.WalkDir(Starter(), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, "templates.list", err)
	}
	sort.Strings(files)
	return files, nil
}

// WriteStarter copies the starter kit into the project.
// Nothing is written when a file exists and force is false.
//
// Parameters:
//   - project: Destination project file system
//   - force: Overwrite existing files
//
// Returns:
//   - []string: Written paths relative to the project root
//   - error: ALREADY_EXISTS naming the first existing file, or the write error
func WriteStarter(project *projectfs.ProjectFS, force bool) ([]string, error) {
	files, err := StarterFiles()
	if err != nil {
		return nil, err
	}

	if !force {
		for _, rel := range files {
			exists, err := project.Exists(rel)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, errors.Build(errors.CodeAlreadyExists).
					WithOp("templates.write_starter").
					WithMsgf("%s already exists (use --force to overwrite)", rel).
					WithDetails(rel).
					Err()
			}
		}
	}

	kit := Starter()
	for _, rel := range files {
		data, err := fs.ReadFile(kit, rel)
		if err != nil {
			return nil, errors.Wrap(errors.CodeInternal, "templates.write_starter", err)
		}
		if err := project.WriteFileAtomic(rel, data, 0o644); err != nil {
			return nil, err
		}
	}
	return files, nil
}
