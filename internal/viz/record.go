package viz

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"os"
)

const (
	cellW, cellH = 8, 16
	maxGIFFrames = 900
)

var errNoFrames = errors.New("no frames recorded")

// recorder keeps rasterised canvas frames for a GIF.
type recorder struct {
	frames []*image.Paletted
	delay  int
}

func newRecorder(fps int) *recorder {
	if fps <= 0 {
		fps = 60
	}
	return &recorder{delay: max(100/fps, 1)}
}

func (r *recorder) Len() int { return len(r.frames) }

// Capture rasterises the canvas, each braille dot becoming a block of
// pixels in its particle colour. The oldest frames drop past maxGIFFrames.
func (r *recorder) Capture(c *Canvas, th Theme) {
	pal := color.Palette{rgb(string(th.Background))}
	for _, d := range th.Dots {
		pal = append(pal, rgb(string(d)))
	}

	img := image.NewPaletted(image.Rect(0, 0, c.Width*cellW, c.Height*cellH), pal)
	dotW, dotH := cellW/2, cellH/4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := int(c.Grid[row][col] - blankCell)
			if pattern <= 0 {
				continue
			}
			idx := uint8(1 + int(c.Colors[row][col])%len(th.Dots))
			baseX, baseY := col*cellW, row*cellH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, idx)
						}
					}
				}
			}
		}
	}

	r.frames = append(r.frames, img)
	if len(r.frames) > maxGIFFrames {
		r.frames = r.frames[1:]
	}
}

// Save writes the recording to path and drops the frames.
func (r *recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return errNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.delay)
	}
	r.frames = nil

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}

func rgb(hex string) color.RGBA {
	r, g, b := parseHex(hex)
	return color.RGBA{uint8(r), uint8(g), uint8(b), 255}
}
