package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MockFileSystem provides an in-memory filesystem for testing
type MockFileSystem struct {
	entries    map[string]*MockEntry
	currentDir string
}

// MockEntry is a file or directory in the mock filesystem
type MockEntry struct {
	Content    []byte
	Mode       fs.FileMode
	ModTime    time.Time
	IsDir      bool
	Unreadable bool
}

type mockFileInfo struct {
	name  string
	entry *MockEntry
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return int64(len(m.entry.Content)) }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.entry.Mode }
func (m *mockFileInfo) ModTime() time.Time { return m.entry.ModTime }
func (m *mockFileInfo) IsDir() bool        { return m.entry.IsDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// NewMockFileSystem creates a new MockFileSystem rooted at /workspace
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		entries:    make(map[string]*MockEntry),
		currentDir: "/workspace",
	}
}

// AddFile adds a file, creating missing parent directories
func (mfs *MockFileSystem) AddFile(path string, content []byte) {
	cleanPath := filepath.Clean(path)
	mfs.entries[cleanPath] = &MockEntry{
		Content: content,
		Mode:    0644,
		ModTime: time.Now(),
	}
	mfs.addParents(cleanPath)
}

// AddUnreadableFile adds a file whose reads fail with fs.ErrPermission
func (mfs *MockFileSystem) AddUnreadableFile(path string) {
	mfs.AddFile(path, nil)
	mfs.entries[filepath.Clean(path)].Unreadable = true
}

// AddDir adds a directory, creating missing parent directories
func (mfs *MockFileSystem) AddDir(path string) {
	cleanPath := filepath.Clean(path)
	if _, exists := mfs.entries[cleanPath]; !exists {
		mfs.entries[cleanPath] = &MockEntry{
			Mode:    0755 | fs.ModeDir,
			ModTime: time.Now(),
			IsDir:   true,
		}
	}
	mfs.addParents(cleanPath)
}

func (mfs *MockFileSystem) addParents(cleanPath string) {
	dir := filepath.Dir(cleanPath)
	for dir != "." && dir != "/" && dir != cleanPath {
		if _, exists := mfs.entries[dir]; !exists {
			mfs.entries[dir] = &MockEntry{
				Mode:    0755 | fs.ModeDir,
				ModTime: time.Now(),
				IsDir:   true,
			}
		}
		dir = filepath.Dir(dir)
	}
}

func (mfs *MockFileSystem) ReadFile(path string) ([]byte, error) {
	entry, exists := mfs.entries[filepath.Clean(path)]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if entry.IsDir {
		return nil, &fs.PathError{Op: "read", Path: path, Err: errors.New("is a directory")}
	}
	if entry.Unreadable {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrPermission}
	}
	return entry.Content, nil
}

func (mfs *MockFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	cleanPath := filepath.Clean(path)

	dir := filepath.Dir(cleanPath)
	if dir != "." && dir != "/" {
		if parent, exists := mfs.entries[dir]; !exists || !parent.IsDir {
			return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
		}
	}

	mfs.entries[cleanPath] = &MockEntry{
		Content: data,
		Mode:    perm,
		ModTime: time.Now(),
	}
	return nil
}

// ReadDir lists direct children sorted by name, like os.ReadDir
func (mfs *MockFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	cleanPath := filepath.Clean(path)

	entry, exists := mfs.entries[cleanPath]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if !entry.IsDir {
		return nil, &fs.PathError{Op: "readdirent", Path: path, Err: errors.New("not a directory")}
	}

	var children []fs.DirEntry
	for p, e := range mfs.entries {
		if p != cleanPath && filepath.Dir(p) == cleanPath {
			children = append(children, fs.FileInfoToDirEntry(&mockFileInfo{name: filepath.Base(p), entry: e}))
		}
	}

	sort.Slice(children, func(i, j int) bool {
		return children[i].Name() < children[j].Name()
	})

	return children, nil
}

func (mfs *MockFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	cleanPath := filepath.Clean(path)
	if entry, exists := mfs.entries[cleanPath]; exists && !entry.IsDir {
		return &fs.PathError{Op: "mkdir", Path: path, Err: errors.New("not a directory")}
	}

	current := ""
	for _, part := range strings.Split(cleanPath, string(filepath.Separator)) {
		if part == "" {
			continue
		}
		if current == "" && filepath.IsAbs(cleanPath) {
			current = string(filepath.Separator) + part
		} else {
			current = filepath.Join(current, part)
		}

		if _, exists := mfs.entries[current]; !exists {
			mfs.entries[current] = &MockEntry{
				Mode:    perm | fs.ModeDir,
				ModTime: time.Now(),
				IsDir:   true,
			}
		}
	}
	return nil
}

func (mfs *MockFileSystem) Stat(path string) (fs.FileInfo, error) {
	entry, exists := mfs.entries[filepath.Clean(path)]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return &mockFileInfo{name: filepath.Base(path), entry: entry}, nil
}

func (mfs *MockFileSystem) Exists(path string) bool {
	_, exists := mfs.entries[filepath.Clean(path)]
	return exists
}

func (mfs *MockFileSystem) IsDir(path string) bool {
	entry, exists := mfs.entries[filepath.Clean(path)]
	return exists && entry.IsDir
}

func (mfs *MockFileSystem) Getwd() (string, error) {
	return mfs.currentDir, nil
}

// SetCurrentDir sets the current working directory for the mock
func (mfs *MockFileSystem) SetCurrentDir(dir string) {
	mfs.currentDir = dir
}

// Paths returns every path in the mock filesystem, sorted
func (mfs *MockFileSystem) Paths() []string {
	paths := make([]string, 0, len(mfs.entries))
	for p := range mfs.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
