package moyface

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	tool, dir := newTestTool(t)
	defer os.RemoveAll(dir)
	defer tool.Close()

	faces := filepath.Join(dir, "faces")
	require.NoError(t, os.MkdirAll(filepath.Join(faces, ".cache"), 0755))

	file := writeTestFace(t, faces)

	// Neither of these should end up in the catalog.
	require.NoError(t, ioutil.WriteFile(filepath.Join(faces, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, ioutil.WriteFile(filepath.Join(faces, ".cache", "stale.bin"), testFace(), 0644))

	require.NoError(t, tool.Scan(faces))

	sha := fmt.Sprintf("%X", sha1.Sum(testFace()))
	rec, err := tool.db.FindBySHA1(sha)
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, 18, rec.ApiVer)
	assert.Equal(t, 0, rec.Revision)
	assert.Equal(t, 240, rec.Width)
	assert.Equal(t, 280, rec.Height)
	assert.Equal(t, 2, rec.Elements)
	assert.Equal(t, 2, rec.Images)

	abs, err := filepath.Abs(file)
	require.NoError(t, err)
	assert.Equal(t, abs, rec.Path)

	var buf bytes.Buffer
	require.NoError(t, tool.ListFaces(&buf))
	assert.Contains(t, buf.String(), abs)
	assert.Contains(t, buf.String(), "2 elements, 2 images")
}

func TestScanUndecodableFile(t *testing.T) {
	tool, dir := newTestTool(t)
	defer os.RemoveAll(dir)
	defer tool.Close()

	faces := filepath.Join(dir, "faces")
	require.NoError(t, os.MkdirAll(faces, 0755))
	require.NoError(t, ioutil.WriteFile(filepath.Join(faces, "junk.bin"), []byte("tiny"), 0644))

	// Logged and skipped, not fatal.
	require.NoError(t, tool.Scan(faces))

	var buf bytes.Buffer
	require.NoError(t, tool.ListFaces(&buf))
	assert.Empty(t, buf.String())
}

func TestFindBySHA1Missing(t *testing.T) {
	tool, dir := newTestTool(t)
	defer os.RemoveAll(dir)
	defer tool.Close()

	rec, err := tool.db.FindBySHA1("0000")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestFaceDBAddReplaces(t *testing.T) {
	tool, dir := newTestTool(t)
	defer os.RemoveAll(dir)
	defer tool.Close()

	rec := &FaceRecord{Path: "/a/face.bin", SHA1: "AB", ApiVer: 18, Revision: 0, Width: 240, Height: 280, Elements: 1, Images: 1}
	require.NoError(t, tool.db.Add(rec))

	rec.Images = 5
	require.NoError(t, tool.db.Add(rec))

	got, err := tool.db.FindBySHA1("AB")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 5, got.Images)
}
