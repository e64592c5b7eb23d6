package artifact

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"event-solution/models"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplate(t *testing.T) string {
	t.Helper()

	template := imaging.New(600, 300, color.White)
	path := filepath.Join(t.TempDir(), "template.png")
	require.NoError(t, imaging.Save(template, path))
	return path
}

func TestImageRenderer_Render(t *testing.T) {
	renderer := NewImageRenderer()
	templatePath := writeTemplate(t)

	request := &models.TicketRequest{ID: "req-123", Name: "Ram Shrestha"}
	event := &models.Event{ID: "ev-1", Name: "Tech Summit 2026"}

	artifact, err := renderer.Render(context.Background(), templatePath, request, event)
	require.NoError(t, err)
	require.NotEmpty(t, artifact)

	// The output must be a decodable PNG with the template's size.
	decoded, err := png.Decode(bytes.NewReader(artifact))
	require.NoError(t, err)
	assert.Equal(t, 600, decoded.Bounds().Dx())
	assert.Equal(t, 300, decoded.Bounds().Dy())
}

func TestImageRenderer_Render_MissingTemplate(t *testing.T) {
	renderer := NewImageRenderer()

	_, err := renderer.Render(context.Background(), "/nonexistent/template.png", &models.TicketRequest{}, &models.Event{})
	assert.Error(t, err)
}
