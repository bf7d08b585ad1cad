// Package filemock is a filesystem facade built on mockable holders.
//
// FileManager is the interface production code depends on. Live implements
// it over a billy.Filesystem, and Mock implements it by forwarding every
// method to a holder whose default loader is Live. A test overrides the
// holders it cares about and leaves the rest talking to the filesystem.
package filemock

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v6"
	"github.com/go-git/go-billy/v6/osfs"
	"github.com/toejough/mockable"
)

// FileManager is the filesystem surface the code under test uses.
type FileManager interface {
	FileExists(path string) bool
	RemoveItem(path string) error
	CopyItem(src, dst string) error
	// ContentsOfDirectory lists the paths inside dir in sorted order. Hidden
	// entries are skipped unless includeHidden is set. A limit above zero caps
	// the number of paths returned.
	ContentsOfDirectory(dir string, includeHidden bool, limit int) ([]string, error)
	ContentsOfDirectoryAtPath(dir string) ([]string, error)
	CreateDirectory(path string, withIntermediates bool, perm os.FileMode) error
}

// Live is the real FileManager over a billy filesystem.
type Live struct {
	fs billy.Filesystem
}

// NewLive returns a Live FileManager rooted at filesystem.
func NewLive(filesystem billy.Filesystem) *Live {
	return &Live{fs: filesystem}
}

// ContentsOfDirectory implements FileManager.
func (l *Live) ContentsOfDirectory(dir string, includeHidden bool, limit int) ([]string, error) {
	names, err := l.list(dir, includeHidden)
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}

	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, l.fs.Join(dir, name))
	}

	return paths, nil
}

// ContentsOfDirectoryAtPath returns the names of every entry in dir, hidden
// ones included.
func (l *Live) ContentsOfDirectoryAtPath(dir string) ([]string, error) {
	return l.list(dir, true)
}

// CopyItem copies the file at src to dst, replacing dst if it exists.
func (l *Live) CopyItem(src, dst string) error {
	in, err := l.fs.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := l.fs.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	_, copyErr := io.Copy(out, in)
	closeErr := out.Close()

	if copyErr != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, copyErr)
	}

	if closeErr != nil {
		return fmt.Errorf("failed to close %s: %w", dst, closeErr)
	}

	return nil
}

// CreateDirectory creates path. Without intermediates, the parent must
// already exist and path must not.
func (l *Live) CreateDirectory(path string, withIntermediates bool, perm os.FileMode) error {
	if !withIntermediates {
		if _, err := l.fs.Stat(path); err == nil {
			return fmt.Errorf("failed to create %s: %w", path, fs.ErrExist)
		}

		parent := filepath.Dir(path)

		info, err := l.fs.Stat(parent)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}

		if !info.IsDir() {
			return fmt.Errorf("failed to create %s: %s is not a directory: %w", path, parent, fs.ErrInvalid)
		}
	}

	if err := l.fs.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	return nil
}

// FileExists reports whether anything exists at path.
func (l *Live) FileExists(path string) bool {
	_, err := l.fs.Stat(path)
	return err == nil
}

// RemoveItem removes the file or empty directory at path.
func (l *Live) RemoveItem(path string) error {
	if err := l.fs.Remove(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}

	return nil
}

func (l *Live) list(dir string, includeHidden bool) ([]string, error) {
	entries, err := l.fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		if !includeHidden && strings.HasPrefix(name, ".") {
			continue
		}

		names = append(names, name)
	}

	slices.Sort(names)

	return names, nil
}

// Mock is a FileManager whose methods are mockable holders. Each holder's
// default loader is the matching Live method.
//
// The holders show the four shapes a context can take: a single comparable
// input, a single input with a throwing loader, a tuple of same-typed inputs,
// and a tuple of heterogeneous codable inputs.
type Mock struct {
	Exists         *mockable.Mock[string, bool]
	Remove         *mockable.ThrowingMock[string, struct{}]
	Copy           *mockable.ThrowingMock[mockable.Tuple[string], struct{}]
	Contents       *mockable.ThrowingMock[mockable.Tuple[mockable.CodableInput], []string]
	ContentsAtPath *mockable.ThrowingMock[string, []string]
	CreateDir      *mockable.ThrowingMock[mockable.Tuple[mockable.CodableInput], struct{}]
}

// NewMock returns a Mock whose defaults operate on filesystem. The options
// apply to every holder; each holder is named after its method.
func NewMock(filesystem billy.Filesystem, opts ...mockable.Option) *Mock {
	live := NewLive(filesystem)
	named := func(name string) []mockable.Option {
		return append(slices.Clone(opts), mockable.WithName(name))
	}

	return &Mock{
		Exists: mockable.NewMock(live.FileExists, named("FileExists")...),
		Remove: mockable.NewThrowingMock(func(path string) (struct{}, error) {
			return struct{}{}, live.RemoveItem(path)
		}, named("RemoveItem")...),
		Copy: mockable.NewThrowingMock(func(paths mockable.Tuple[string]) (struct{}, error) {
			return struct{}{}, live.CopyItem(paths.At(0), paths.At(1))
		}, named("CopyItem")...),
		Contents: mockable.NewThrowingMock(func(args mockable.Tuple[mockable.CodableInput]) ([]string, error) {
			dir, includeHidden, limit, err := decodeListing(args)
			if err != nil {
				return nil, err
			}

			return live.ContentsOfDirectory(dir, includeHidden, limit)
		}, named("ContentsOfDirectory")...),
		ContentsAtPath: mockable.NewThrowingMock(live.ContentsOfDirectoryAtPath, named("ContentsOfDirectoryAtPath")...),
		CreateDir: mockable.NewThrowingMock(func(args mockable.Tuple[mockable.CodableInput]) (struct{}, error) {
			path, withIntermediates, perm, err := decodeCreate(args)
			if err != nil {
				return struct{}{}, err
			}

			return struct{}{}, live.CreateDirectory(path, withIntermediates, perm)
		}, named("CreateDirectory")...),
	}
}

// NewOSMock returns a Mock whose defaults operate on the host filesystem.
func NewOSMock(opts ...mockable.Option) *Mock {
	return NewMock(osfs.New("/"), opts...)
}

// ContentsOfDirectory implements FileManager.
func (m *Mock) ContentsOfDirectory(dir string, includeHidden bool, limit int) ([]string, error) {
	args, err := mockable.NewCodableTuple(dir, includeHidden, limit)
	if err != nil {
		return nil, err
	}

	return m.Contents.Invoke(args)
}

// ContentsOfDirectoryAtPath implements FileManager.
func (m *Mock) ContentsOfDirectoryAtPath(dir string) ([]string, error) {
	return m.ContentsAtPath.Invoke(dir)
}

// CopyItem implements FileManager.
func (m *Mock) CopyItem(src, dst string) error {
	_, err := m.Copy.Invoke(mockable.NewTuple(src, dst))
	return err
}

// CreateDirectory implements FileManager.
func (m *Mock) CreateDirectory(path string, withIntermediates bool, perm os.FileMode) error {
	args, err := mockable.NewCodableTuple(path, withIntermediates, perm)
	if err != nil {
		return err
	}

	_, err = m.CreateDir.Invoke(args)

	return err
}

// FileExists implements FileManager.
func (m *Mock) FileExists(path string) bool {
	return m.Exists.Invoke(path)
}

// RemoveItem implements FileManager.
func (m *Mock) RemoveItem(path string) error {
	_, err := m.Remove.Invoke(path)
	return err
}

// Reset restores every holder's default loader.
func (m *Mock) Reset() {
	m.Exists.Reset()
	m.Remove.Reset()
	m.Copy.Reset()
	m.Contents.Reset()
	m.ContentsAtPath.Reset()
	m.CreateDir.Reset()
}

func decodeCreate(args mockable.Tuple[mockable.CodableInput]) (string, bool, os.FileMode, error) {
	if args.Len() != 3 {
		return "", false, 0, fmt.Errorf("%w: expected 3 arguments, got %d", mockable.ErrDecoding, args.Len())
	}

	path, err := mockable.Decode[string](args.At(0))
	if err != nil {
		return "", false, 0, err
	}

	withIntermediates, err := mockable.Decode[bool](args.At(1))
	if err != nil {
		return "", false, 0, err
	}

	perm, err := mockable.Decode[os.FileMode](args.At(2))
	if err != nil {
		return "", false, 0, err
	}

	return path, withIntermediates, perm, nil
}

func decodeListing(args mockable.Tuple[mockable.CodableInput]) (string, bool, int, error) {
	if args.Len() != 3 {
		return "", false, 0, fmt.Errorf("%w: expected 3 arguments, got %d", mockable.ErrDecoding, args.Len())
	}

	dir, err := mockable.Decode[string](args.At(0))
	if err != nil {
		return "", false, 0, err
	}

	includeHidden, err := mockable.Decode[bool](args.At(1))
	if err != nil {
		return "", false, 0, err
	}

	limit, err := mockable.Decode[int](args.At(2))
	if err != nil {
		return "", false, 0, err
	}

	return dir, includeHidden, limit, nil
}

// Static checks.
var (
	_ FileManager       = (*Live)(nil)
	_ FileManager       = (*Mock)(nil)
	_ mockable.Resetter = (*Mock)(nil)
)
