package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type legendItem struct {
	Label string
	Color string
}

func TestRender_Legend(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	out, err := r.Render("legend", map[string]any{
		"Items": []legendItem{{Label: "Mag < 1", Color: "#a3f600"}, {Label: "Mag >= 5", Color: "#ff5f65"}},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "background: #a3f600")
	assert.Contains(t, out, "Mag &lt; 1")
	assert.Contains(t, out, "Mag &gt;= 5")
}

func TestRender_LegendAcceptedColors(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	for _, c := range []string{"#abc", "#A3F600", "orange"} {
		out, err := r.Render("legend", map[string]any{
			"Items": []legendItem{{Label: "x", Color: c}},
		})
		require.NoError(t, err)
		assert.Contains(t, out, "background: "+c)
		assert.NotContains(t, out, "ZgotmplZ")
	}
}

func TestRender_NoticeEscapes(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.RenderToBuffer(&buf, "notice", "<script>x</script>"))
	assert.NotContains(t, buf.String(), "<script>")
	assert.Contains(t, buf.String(), `role="status"`)
}

func TestRender_UnknownTemplate(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	_, err = r.Render("missing", nil)
	assert.Error(t, err)
}

func TestNewFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.html"),
		[]byte(`{{define "hello"}}{{with dict "name" .}}hi {{.name}}{{end}}{{end}}`), 0644))

	r, err := NewFromDir(dir)
	require.NoError(t, err)

	out, err := r.Render("hello", "quake")
	require.NoError(t, err)
	assert.Equal(t, "hi quake", out)
}

func TestNewFromDir_Empty(t *testing.T) {
	_, err := NewFromDir(t.TempDir())
	assert.Error(t, err)
}
