// Command nescore-headless runs a ROM with no video output: a plain FPS
// benchmark, or an interactive run driven by raw terminal keypresses when
// the controlling tty supports it.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/tone-malone/nes-emu/cartridgeloader"
	"github.com/tone-malone/nes-emu/hardware/console"
	"github.com/tone-malone/nes-emu/logger"
	"github.com/tone-malone/nes-emu/memviz"
	"github.com/tone-malone/nes-emu/termctl"
)

func main() {
	mode := flag.String("mode", "RUN", "run mode: RUN, FPS")
	memvizPath := flag.String("memviz", "", "dump a memory graph of the console to this path and exit")
	frames := flag.Int("frames", 600, "number of frames to run")
	flag.Parse()

	rom := flag.Arg(0)
	if rom == "" {
		fmt.Println("usage: nescore-headless [-mode RUN|FPS] [-memviz path] [-frames n] <rom>")
		os.Exit(10)
	}

	l := cartridgeloader.NewLoader(rom)

	var err error
	switch strings.ToUpper(*mode) {
	case "RUN":
		err = runHeadless(&l, *memvizPath, *frames)
	case "FPS":
		err = runFPS(&l, *frames)
	default:
		fmt.Printf("* unknown mode (-mode %s)\n", strings.ToUpper(*mode))
		os.Exit(10)
	}

	if err != nil {
		logger.Logf(logger.Allow, "nescore-headless", "%v", err)
		fmt.Println(err)
		os.Exit(10)
	}
}

// runHeadless runs a ROM for a fixed number of frames with no video
// output. If the controlling terminal supports cbreak input it is used
// as a crude keyboard controller.
func runHeadless(l *cartridgeloader.Loader, memvizPath string, frames int) error {
	c, err := console.Load(l)
	if err != nil {
		return err
	}
	defer c.Flush()

	if memvizPath != "" {
		return memviz.Dump(memvizPath, c)
	}

	keys, err := termctl.Open()
	if err == nil {
		defer keys.Close()
	}

	for i := 0; i < frames; i++ {
		if keys != nil {
			c.SetController(1, keys.Poll())
		}
		c.RunFrame()
	}

	return nil
}

// runFPS benchmarks the core's raw execution speed under a CPU profile.
func runFPS(l *cartridgeloader.Loader, frames int) error {
	c, err := console.Load(l)
	if err != nil {
		return err
	}
	defer c.Flush()

	f, err := os.Create("nescore.cpu.profile")
	if err != nil {
		return err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		return err
	}
	defer pprof.StopCPUProfile()

	start := time.Now()
	for i := 0; i < frames; i++ {
		c.RunFrame()
	}
	elapsed := time.Since(start)

	fmt.Printf("%d frames in %s (%.1f fps)\n", frames, elapsed, float64(frames)/elapsed.Seconds())
	return nil
}
