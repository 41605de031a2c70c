// Package projectfs provides root-confined file system operations for generators.
//
// Overview:
//   - Responsibility: Resolve relative paths inside a root, read, glob and write files atomically
//   - Key Types: ProjectFS
//   - Concurrency Model: Stateless apart from the root; concurrent writers to one file are unsupported
//   - Error Semantics: Coded errors (INVALID_ARGUMENT, FILE_NOT_FOUND, INTERNAL)
//   - Performance Notes: Whole-file reads and writes; files are expected to be source-sized
//
// Usage:
//
//	pfs, err := projectfs.New(".", logger)
//	data, mode, err := pfs.ReadFile("web-htmx/src/lib.rs")
//	err = pfs.WriteFileAtomic("web-htmx/src/lib.rs", data, mode)
package projectfs

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"go.eggybyte.com/hatch/core/errors"
	"go.eggybyte.com/hatch/core/log"
)

const tempPattern = ".hatch-tmp-*"

// ProjectFS performs file operations relative to a fixed root directory.
// Every path handed to it is slash- or OS-separated and relative to the root;
// paths that resolve outside the root are rejected.
type ProjectFS struct {
	root   string
	logger log.Logger
}

// New creates a ProjectFS rooted at root.
//
// Parameters:
//   - root: Root directory; made absolute
//   - logger: Logger for write operations (nil discards)
//
// Returns:
//   - *ProjectFS: File system instance
//   - error: INVALID_ARGUMENT when root cannot be made absolute
func New(root string, logger log.Logger) (*ProjectFS, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInvalidArgument, "projectfs.new", err)
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &ProjectFS{root: abs, logger: logger}, nil
}

// Root returns the absolute root directory.
func (p *ProjectFS) Root() string {
	return p.root
}

// Resolve maps rel onto an absolute path inside the root.
func (p *ProjectFS) Resolve(rel string) (string, error) {
	if strings.TrimSpace(rel) == "" {
		return "", errors.New(errors.CodeInvalidArgument, "empty path")
	}

	var full string
	if filepath.IsAbs(rel) {
		full = filepath.Clean(rel)
	} else {
		full = filepath.Join(p.root, filepath.FromSlash(rel))
	}

	inside, err := filepath.Rel(p.root, full)
	if err != nil || inside == ".." || strings.HasPrefix(inside, ".."+string(filepath.Separator)) {
		return "", errors.Build(errors.CodeInvalidArgument).
			WithOp("projectfs.resolve").
			WithMsgf("path %q escapes root %s", rel, p.root).
			Err()
	}
	return full, nil
}

// ReadFile returns the contents and permission bits of rel.
func (p *ProjectFS) ReadFile(rel string) ([]byte, fs.FileMode, error) {
	full, err := p.Resolve(rel)
	if err != nil {
		return nil, 0, err
	}

	info, err := os.Stat(full)
	if err != nil {
		return nil, 0, statError(rel, err)
	}
	if info.IsDir() {
		return nil, 0, errors.Newf(errors.CodeInvalidArgument, "%s is a directory", rel)
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return nil, 0, errors.Wrapf(errors.CodeInternal, "projectfs.read", err, "read %s", rel)
	}
	return data, info.Mode().Perm(), nil
}

// Exists reports whether rel names an existing entry.
func (p *ProjectFS) Exists(rel string) (bool, error) {
	full, err := p.Resolve(rel)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(full); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(errors.CodeInternal, "projectfs.stat", err, "stat %s", rel)
	}
	return true, nil
}

// WriteFileAtomic writes data to rel through a temp file and rename in the same directory.
// Missing parent directories are created. On failure an existing file is left unchanged.
func (p *ProjectFS) WriteFileAtomic(rel string, data []byte, perm fs.FileMode) error {
	full, err := p.Resolve(rel)
	if err != nil {
		return err
	}

	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(errors.CodeInternal, "projectfs.write", err, "create directory for %s", rel)
	}

	tmp, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return errors.Wrapf(errors.CodeInternal, "projectfs.write", err, "create temp file for %s", rel)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(errors.CodeInternal, "projectfs.write", err, "write %s", rel)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(errors.CodeInternal, "projectfs.write", err, "close %s", rel)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return errors.Wrapf(errors.CodeInternal, "projectfs.write", err, "chmod %s", rel)
	}
	if err := os.Rename(tmpPath, full); err != nil {
		return errors.Wrapf(errors.CodeInternal, "projectfs.write", err, "rename into %s", rel)
	}

	success = true
	p.logger.Debug("file written", "path", filepath.ToSlash(rel), "bytes", len(data))
	return nil
}

// AppendFile appends data to an existing file.
func (p *ProjectFS) AppendFile(rel string, data []byte) error {
	full, err := p.Resolve(rel)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return statError(rel, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return errors.Wrapf(errors.CodeInternal, "projectfs.append", err, "append to %s", rel)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(errors.CodeInternal, "projectfs.append", err, "close %s", rel)
	}

	p.logger.Debug("file appended", "path", filepath.ToSlash(rel), "bytes", len(data))
	return nil
}

// Glob returns the regular files under the root matching pattern, as sorted slash paths.
// Patterns support "**" for any number of directories.
func (p *ProjectFS) Glob(pattern string) ([]string, error) {
	pattern = filepath.ToSlash(pattern)
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.Newf(errors.CodeInvalidArgument, "invalid glob pattern %q", pattern)
	}
	for _, elem := range strings.Split(pattern, "/") {
		if elem == ".." {
			return nil, errors.Newf(errors.CodeInvalidArgument, "glob pattern %q escapes root", pattern)
		}
	}
	pattern = strings.TrimPrefix(pattern, "./")

	fsys := os.DirFS(p.root)
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, errors.Wrapf(errors.CodeInvalidArgument, "projectfs.glob", err, "glob %q", pattern)
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		info, err := fs.Stat(fsys, m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if strings.HasPrefix(filepath.Base(m), ".hatch-tmp-") {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)
	return files, nil
}

// StaticBase returns the leading directory of pattern that contains no glob metacharacters.
func StaticBase(pattern string) string {
	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
	if base == "." {
		return ""
	}
	return base
}

func statError(rel string, err error) error {
	if os.IsNotExist(err) {
		return errors.Wrapf(errors.CodeFileNotFound, "projectfs", err, "%s does not exist", rel)
	}
	return errors.Wrapf(errors.CodeInternal, "projectfs", err, "access %s", rel)
}
