package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// Shared fixtures
// -----------------------------------------------------------------------------

// minimalSpecYAML returns a spec that passes validateSpec with one module of
// each kind.
func minimalSpecYAML() []byte {
	return []byte(`package: app
modules:
  - name: UserList
    type: "*UserListHandler"
    dependency: UserListDependency
    payload: UserListPayload
    constructor: NewUserListHandler
  - name: UserRow
    type: "*UserRow"
    dependency: UserRowDependency
    payload: UserRowPayload
    configure: Configure
`)
}

// ownerFileSource is an owner file that imports one package the spec uses
// (time) and one it does not (strings).
const ownerFileSource = `package app

//go:generate go run ../../cmd/puregen --spec modules.yaml --out modules.gen.go

import (
	"strings"
	"time"

	_ "embed"
)

var _ = strings.TrimSpace
var _ time.Duration
`

//
// -----------------------------------------------------------------------------
// Small helpers
// -----------------------------------------------------------------------------

// writeTempFile writes a file under dir/name and returns its full path.
func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// readFileString reads a file and returns its contents as string (fatal on error).
func readFileString(t *testing.T, p string) string {
	t.Helper()
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	return string(b)
}

// fakeTempFile is a controllable file-like object for writeFileAtomic tests.
// It lets us force errors on Write and Close without using a real file.
type fakeTempFile struct {
	fileName string
	writeErr error
	closeErr error
}

func (f *fakeTempFile) Name() string { return f.fileName }

func (f *fakeTempFile) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return len(p), nil
}

func (f *fakeTempFile) Close() error {
	return f.closeErr
}

// setWriteFileSeams overrides the global seams used by writeFileAtomic and
// restores them when the test ends. Pass nil for any seam you don't want to
// override. Tests using it must not run in parallel.
func setWriteFileSeams(
	t *testing.T,
	createFn func(string, string) (tempFile, error),
	removeFn func(path string) error,
	chmodFn func(path string, mode os.FileMode) error,
	renameFn func(oldpath, newpath string) error,
) {
	t.Helper()

	origCreate, origRemove, origChmod, origRename := createTempFile, removeFile, chmodFile, renameFile
	t.Cleanup(func() {
		createTempFile, removeFile, chmodFile, renameFile = origCreate, origRemove, origChmod, origRename
	})

	if createFn != nil {
		createTempFile = createFn
	}
	if removeFn != nil {
		removeFile = removeFn
	}
	if chmodFn != nil {
		chmodFile = chmodFn
	}
	if renameFn != nil {
		renameFile = renameFn
	}
}
