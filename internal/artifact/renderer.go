package artifact

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"

	"event-solution/models"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Renderer produces the ticket artifact for a resolved request.
type Renderer interface {
	Render(ctx context.Context, templatePath string, request *models.TicketRequest, event *models.Event) ([]byte, error)
}

// ImageRenderer stamps the requester details onto the event's ticket
// template image and returns the result as PNG bytes.
type ImageRenderer struct{}

func NewImageRenderer() *ImageRenderer {
	return &ImageRenderer{}
}

func (r *ImageRenderer) Render(_ context.Context, templatePath string, request *models.TicketRequest, event *models.Event) ([]byte, error) {
	template, err := imaging.Open(templatePath)
	if err != nil {
		return nil, fmt.Errorf("render: open template: %w", err)
	}

	canvas := imaging.Clone(template)

	// Stamp the holder block in the lower left of the template.
	baseline := canvas.Bounds().Dy() - 60
	drawLine(canvas, 40, baseline, event.Name)
	drawLine(canvas, 40, baseline+18, request.Name)
	drawLine(canvas, 40, baseline+36, fmt.Sprintf("Ref: %s", request.ID))

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, fmt.Errorf("render: encode png: %w", err)
	}

	return buf.Bytes(), nil
}

func drawLine(dst *image.NRGBA, x, y int, text string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
