// Command apple1 is the SDL2 windowed front end: it drives the emulated
// machine at its configured clock rate, renders the 40x24 terminal buffer
// with a fixed-width bitmap font, and forwards key-down events to the
// PIA bridge as keyboard input.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/sixfiveoh/apple1/internal/config"
	"github.com/sixfiveoh/apple1/internal/machine"
	"github.com/sixfiveoh/apple1/pia"
)

const (
	glyphWidth  = 7
	glyphHeight = 13
)

func main() {
	fs := flag.CommandLine
	flags := config.RegisterFlags(fs)
	flag.Parse()

	cfg, err := config.Load(*flags.ConfigPath)
	if err != nil {
		log.Fatalf("apple1: %v", err)
	}
	cfg = flags.Apply(cfg)

	m, err := machine.New(cfg)
	if err != nil {
		log.Fatalf("apple1: %v", err)
	}

	sdl.Main(func() {
		if err := run(m, cfg); err != nil {
			log.Fatalf("apple1: %v", err)
		}
	})
}

func run(m *machine.Machine, cfg config.Config) error {
	var runErr error
	sdl.Do(func() {
		runErr = sdl.Init(sdl.INIT_EVERYTHING)
	})
	if runErr != nil {
		return runErr
	}
	defer sdl.Do(func() { sdl.Quit() })

	scale := cfg.ResolutionMultiplier
	if scale <= 0 {
		scale = 1
	}
	winW := int32(glyphWidth * 40 * scale)
	winH := int32(glyphHeight * 24 * scale)

	var window *sdl.Window
	sdl.Do(func() {
		window, runErr = sdl.CreateWindow("Apple 1", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
			winW, winH, sdl.WINDOW_SHOWN)
	})
	if runErr != nil {
		return runErr
	}
	defer sdl.Do(func() { window.Destroy() })

	face := basicfont.Face7x13

	pending := &pia.PendingInput{}
	frameInterval := time.Second / time.Duration(maxInt(cfg.TerminalSpeedHz, 1))
	quit := false

	for !quit {
		sdl.Do(func() {
			for {
				ev := sdl.PollEvent()
				if ev == nil {
					break
				}
				switch e := ev.(type) {
				case *sdl.QuitEvent:
					quit = true
				case *sdl.KeyboardEvent:
					if e.State == sdl.PRESSED {
						if ch, ok := decodeKey(e.Keysym.Sym); ok {
							pending.Value = ch
							pending.Ready = true
						}
					}
				}
			}
		})

		cycles, printed, err := m.Step(pending)
		if err != nil {
			log.Printf("apple1: halted: %v", err)
			quit = true
			continue
		}
		if m.CPU.ClockTimeNs > 0 {
			time.Sleep(time.Duration(cycles) * time.Duration(m.CPU.ClockTimeNs))
		}

		if printed {
			sdl.Do(func() {
				renderErr := renderFrame(window, face, m, scale)
				if renderErr != nil {
					runErr = renderErr
				}
			})
			if runErr != nil {
				return runErr
			}
		}

		time.Sleep(frameInterval / 1000) // yield briefly; real pacing is the CPU clock sleep above
	}
	return nil
}

func renderFrame(window *sdl.Window, face font.Face, m *machine.Machine, scale int) error {
	surface, err := window.GetSurface()
	if err != nil {
		return err
	}

	img := image.NewRGBA(image.Rect(0, 0, int(surface.W), int(surface.H)))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{0x33, 0xFF, 0x33, 0xFF}),
		Face: face,
	}

	for row, line := range m.Terminal.Lines() {
		drawer.Dot = fixed.Point26_6{
			X: fixed.I(2 * scale),
			Y: fixed.I((row + 1) * glyphHeight * scale),
		}
		drawer.DrawString(line)
	}

	pixels := surface.Pixels()
	copy(pixels, img.Pix)

	return window.UpdateSurface()
}

// decodeKey maps an SDL keycode in the printable ASCII range to a byte
// for the PIA bridge; everything else is ignored.
func decodeKey(sym sdl.Keycode) (byte, bool) {
	if sym >= 0x20 && sym < 0x7F {
		return byte(sym), true
	}
	if sym == sdl.K_RETURN {
		return '\r', true
	}
	return 0, false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
