// Command nescore-sdl is the real-time reference host: an SDL window
// showing the PPU's framebuffer, PortAudio audio (portaudio build tag
// only), and keyboard controller input.
package main

import (
	"flag"
	"fmt"
	"os"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/tone-malone/nes-emu/audioout"
	"github.com/tone-malone/nes-emu/cartridgeloader"
	"github.com/tone-malone/nes-emu/hardware/console"
	"github.com/tone-malone/nes-emu/hardware/input"
	"github.com/tone-malone/nes-emu/logger"
	"github.com/tone-malone/nes-emu/memviz"
	"github.com/tone-malone/nes-emu/prefs"
	"github.com/tone-malone/nes-emu/statsview"
)

const (
	screenWidth  = 256
	screenHeight = 240
)

// keymap binds the player 1 keyboard layout to controller bits.
var keymap = map[sdl.Scancode]uint8{
	sdl.SCANCODE_Z:      input.ButtonA,
	sdl.SCANCODE_X:      input.ButtonB,
	sdl.SCANCODE_RSHIFT: input.ButtonSelect,
	sdl.SCANCODE_RETURN: input.ButtonStart,
	sdl.SCANCODE_UP:     input.ButtonUp,
	sdl.SCANCODE_DOWN:   input.ButtonDown,
	sdl.SCANCODE_LEFT:   input.ButtonLeft,
	sdl.SCANCODE_RIGHT:  input.ButtonRight,
}

func main() {
	statsFlag := flag.Bool("stats", false, "launch the statsview debug server")
	memvizPath := flag.String("memviz", "", "dump a memory graph of the console to this path and exit")
	flag.Parse()

	rom := flag.Arg(0)
	if rom == "" {
		fmt.Println("usage: nescore-sdl [-stats] [-memviz path] <rom>")
		os.Exit(10)
	}

	prefHost := prefs.NewHost()
	if dir, err := os.UserConfigDir(); err == nil {
		_ = prefHost.Load(dir + "/nescore/prefs.json")
	}

	if *statsFlag && statsview.Available() {
		statsview.Launch(os.Stdout)
	}

	l := cartridgeloader.NewLoader(rom)
	if err := run(&l, prefHost, *memvizPath); err != nil {
		logger.Logf(logger.Allow, "nescore-sdl", "%v", err)
		fmt.Println(err)
		os.Exit(10)
	}

	if dir, err := os.UserConfigDir(); err == nil {
		_ = os.MkdirAll(dir+"/nescore", 0o755)
		_ = prefHost.Save(dir + "/nescore/prefs.json")
	}
}

func run(l *cartridgeloader.Loader, prefHost *prefs.Host, memvizPath string) error {
	c, err := console.Load(l)
	if err != nil {
		return err
	}
	defer c.Flush()

	if memvizPath != "" {
		return memviz.Dump(memvizPath, c)
	}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("sdl init: %w", err)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow("nescore - "+l.ShortName(),
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		screenWidth*2, screenHeight*2, sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer renderer.Destroy()

	if err := renderer.SetLogicalSize(screenWidth, screenHeight); err != nil {
		fmt.Println("warning: set logical size:", err)
	}
	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "0")

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGB888, sdl.TEXTUREACCESS_STREAMING, screenWidth, screenHeight)
	if err != nil {
		return fmt.Errorf("create texture: %w", err)
	}
	defer texture.Destroy()

	audio := &audioout.Output{}
	if audioout.Available() {
		if err := audio.Open(); err != nil {
			fmt.Println("warning: audio unavailable:", err)
		} else {
			defer audio.Close()
			c.APU.SetSampleRate(audio.SampleRate())
		}
	}

	var pixels [screenWidth * screenHeight]uint32
	var buttons uint8

	running := true
	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch ev := event.(type) {
			case *sdl.QuitEvent:
				running = false
			case *sdl.KeyboardEvent:
				bit, ok := keymap[ev.Keysym.Scancode]
				if !ok {
					continue
				}
				if ev.Type == sdl.KEYDOWN {
					buttons |= bit
				} else {
					buttons &^= bit
				}
			}
		}
		c.SetController(1, buttons)

		frame := c.RunFrame()
		for i, p := range frame {
			pixels[i] = uint32(p.R)<<16 | uint32(p.G)<<8 | uint32(p.B)
		}
		audio.Push(c.AudioSamples())

		pixelBytes := unsafe.Slice((*byte)(unsafe.Pointer(&pixels[0])), len(pixels)*4)
		if err := texture.Update(nil, pixelBytes, screenWidth*4); err != nil {
			fmt.Println("warning: texture update:", err)
		}
		renderer.Clear()
		renderer.Copy(texture, nil, nil)
		renderer.Present()
	}

	prefHost.LastROMPath.Set(l.Filename)
	return nil
}
