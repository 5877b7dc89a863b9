package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	exporter := NewCSVExporter()

	content, err := exporter.Render(Dataset{
		Headers: []string{"Date", "Goal"},
		Rows: []map[string]string{
			{"Date": "2025-01-06", "Goal": "Reading, chapter 3"},
			{"Date": "2025-01-07"},
		},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Goal", strings.TrimSpace(lines[0]))
	// Values containing the delimiter are quoted.
	assert.Equal(t, `2025-01-06,"Reading, chapter 3"`, strings.TrimSpace(lines[1]))
	// Missing cells render as empty fields.
	assert.Equal(t, "2025-01-07,", strings.TrimSpace(lines[2]))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	exporter := NewCSVExporter()

	_, err := exporter.Render(Dataset{})
	assert.Error(t, err)
}
