package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/MeKo-Tech/mosaic/internal/document"
	"github.com/MeKo-Tech/mosaic/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const detectionsJSON = `{
	"detection_origin": "doctr",
	"pages": [{
		"width": 200, "height": 100,
		"lines": [
			{"word_geometries": [{"top_left": {"x": 5, "y": 2}, "bottom_right": {"x": 95, "y": 10}}], "text": "Hello"},
			{"word_geometries": [{"top_left": {"x": 5, "y": 11}, "bottom_right": {"x": 95, "y": 19}}], "text": "World"}
		],
		"regions": [
			{"id": "r1", "label": "title", "bbox": {"top_left": {"x": 0, "y": 0}, "bottom_right": {"x": 100, "y": 20}}}
		]
	}]
}`

func writeDetections(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "detections.json")
	require.NoError(t, os.WriteFile(path, []byte(detectionsJSON), 0o600))
	return path
}

func TestAssembleCommandJSON(t *testing.T) {
	out, err := executeCommand(t, "assemble", writeDetections(t))
	require.NoError(t, err)

	var doc document.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "doctr", doc.DetectionOrigin)
	require.Len(t, doc.Content, 1)
	assert.Equal(t, document.BlockTitle, doc.Content[0].Type)
	assert.Equal(t, "Hello\nWorld", doc.Content[0].Text)
}

func TestAssembleCommandMarkdown(t *testing.T) {
	out, err := executeCommand(t, "assemble", writeDetections(t), "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "# Hello World")
}

func TestAssembleCommandOutputFile(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "doc.json")
	_, err := executeCommand(t, "assemble", writeDetections(t), "--format", "json", "--output", outFile)
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Hello\nWorld"`)
}

func TestAssembleCommandMissingFile(t *testing.T) {
	_, err := executeCommand(t, "assemble", "/nonexistent/detections.json", "--format", "json")
	assert.Error(t, err)
}

func TestAssembleCommandBadFormat(t *testing.T) {
	_, err := executeCommand(t, "assemble", writeDetections(t), "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestRenderDocumentFormats(t *testing.T) {
	doc := document.New("doctr")
	doc.Append(document.NewBlock(document.BlockTitle, geometry.NewBBox(0, 0, 100, 20), "Heading", 0))

	for _, format := range []string{"json", "markdown", "md", "text", "txt", ""} {
		out, err := renderDocument(doc, format)
		require.NoError(t, err, format)
		assert.NotEmpty(t, out, format)
	}

	_, err := renderDocument(doc, "yaml")
	assert.Error(t, err)
}
