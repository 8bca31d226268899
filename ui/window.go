package ui

import (
	"context"
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/minaorangina/blackjack/assets"
	"github.com/minaorangina/blackjack/engine"
	"github.com/minaorangina/blackjack/layout"
	"github.com/minaorangina/blackjack/logging"
)

const (
	Title         = "blackjack"
	labelFontSize = 14
	labelPadding  = 8
)

var (
	background = color.Black
	foreground = color.White
	cardFill   = color.RGBA{R: 240, G: 240, B: 230, A: 255}
	cardEdge   = color.RGBA{R: 40, G: 90, B: 40, A: 255}
	cardInk    = color.RGBA{R: 20, G: 20, B: 20, A: 255}
)

type Options struct {
	FPS      int
	FontName string
	FontSize float64
}

// Window is the ebiten front end. ebiten owns the frame loop and calls
// Update at the configured TPS.
type Window struct {
	ctx     context.Context
	engine  *engine.Engine
	res     *assets.Resources
	face    text.Face
	label   text.Face
	sprites map[string]*ebiten.Image
	missing map[string]bool
	fps     int
	logger  logging.Logger
}

func New(ctx context.Context, e *engine.Engine, res *assets.Resources, opts Options, logger logging.Logger) (*Window, error) {
	face, err := res.Face(opts.FontName, opts.FontSize)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", opts.FontName, err)
	}
	label, err := assets.DefaultFace(labelFontSize)
	if err != nil {
		return nil, fmt.Errorf("label font: %w", err)
	}

	logger = logging.OrNop(logger)
	if _, ok := res.Font(opts.FontName); !ok {
		logger.Warnw("font not found, using default", "font", opts.FontName)
	}

	return &Window{
		ctx:     ctx,
		engine:  e,
		res:     res,
		face:    text.NewGoXFace(face),
		label:   text.NewGoXFace(label),
		sprites: map[string]*ebiten.Image{},
		missing: map[string]bool{},
		fps:     opts.FPS,
		logger:  logger,
	}, nil
}

// Run opens the window and blocks until the player quits or ctx is done
func (w *Window) Run() error {
	fps := w.fps
	if fps < 1 {
		fps = engine.DefaultFPS
	}

	ebiten.SetWindowSize(layout.ScreenWidth, layout.ScreenHeight)
	ebiten.SetWindowTitle(Title)
	ebiten.SetTPS(fps)
	ebiten.SetCursorMode(ebiten.CursorModeHidden)
	if err := layout.PrintKeys(os.Stdout); err != nil {
		w.logger.Warnw("could not print keys", "error", err)
	}

	return ebiten.RunGame(w)
}

func (w *Window) Update() error {
	if w.ctx.Err() != nil {
		return ebiten.Termination
	}

	quit, err := w.engine.Step(w.ctx, pollKeys())
	if err != nil {
		return err
	}
	if quit {
		return ebiten.Termination
	}

	return nil
}

func pollKeys() engine.Input {
	return keyInput(inpututil.IsKeyJustPressed, len(inpututil.AppendJustPressedKeys(nil)) > 0)
}

func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	frame := layout.Table(w.engine.State())
	for _, s := range frame.Sprites {
		w.drawCard(screen, s)
	}
	for _, t := range frame.Texts {
		drawText(screen, w.face, t.Text, float64(t.Pos.X), float64(t.Pos.Y), foreground)
	}
}

func (w *Window) Layout(_, _ int) (int, int) {
	return layout.ScreenWidth, layout.ScreenHeight
}

func (w *Window) drawCard(screen *ebiten.Image, s layout.Sprite) {
	img, ok := w.sprite(s.Name)
	if !ok {
		x, y := float32(s.Pos.X), float32(s.Pos.Y)
		vector.DrawFilledRect(screen, x, y, layout.CardWidth, layout.CardHeight, cardFill, false)
		vector.StrokeRect(screen, x, y, layout.CardWidth, layout.CardHeight, 2, cardEdge, false)
		drawText(screen, w.label, s.Card.String(), float64(s.Pos.X+labelPadding), float64(s.Pos.Y+labelPadding), cardInk)
		return
	}

	bounds := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(
		float64(layout.CardWidth)/float64(bounds.Dx()),
		float64(layout.CardHeight)/float64(bounds.Dy()),
	)
	op.GeoM.Translate(float64(s.Pos.X), float64(s.Pos.Y))
	screen.DrawImage(img, op)
}

func (w *Window) sprite(name string) (*ebiten.Image, bool) {
	if img, ok := w.sprites[name]; ok {
		return img, true
	}
	if w.missing[name] {
		return nil, false
	}

	src, ok := w.res.Image(name)
	if !ok {
		w.missing[name] = true
		w.logger.Warnw("sprite not found", "image", name)
		return nil, false
	}

	img := ebiten.NewImageFromImage(src)
	w.sprites[name] = img
	return img, true
}

func drawText(dst *ebiten.Image, face text.Face, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}
