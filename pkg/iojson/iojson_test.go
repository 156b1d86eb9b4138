package iojson

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type request struct {
	Character string `json:"character"`
	Text      string `json:"text"`
}

func TestWriteWith(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	require.NoError(t, WriteWith(&out, &errOut, request{Character: "undertale-sans", Text: "hi"}))

	assert.Equal(t, "{\n  \"character\": \"undertale-sans\",\n  \"text\": \"hi\"\n}\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestWriteWith_MarshalError(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	err := WriteWith(&out, &errOut, map[string]any{"bad": make(chan int)})
	require.Error(t, err)

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "error marshaling output")
}

func TestDecode(t *testing.T) {
	t.Parallel()

	got, err := Decode[request](strings.NewReader(`{"character":"deltarune-susie","text":"hey"}`))
	require.NoError(t, err)
	assert.Equal(t, request{Character: "deltarune-susie", Text: "hey"}, got)

	_, err = Decode[request](strings.NewReader(`{`))
	require.Error(t, err)
}

func TestFileReader_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "req.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"character":"undertale-sans","text":"hi"}`), 0o644))

	fr := FileReader[request]{fileFlagValue: path}
	assert.True(t, fr.Provided())

	got, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, "hi", got.Text)
}

func TestFileReader_MissingFile(t *testing.T) {
	t.Parallel()

	fr := FileReader[request]{fileFlagValue: filepath.Join(t.TempDir(), "nope.json")}
	_, err := fr.Read()
	require.Error(t, err)
}
