// Command nesem runs a ROM against the emulator core, either
// headlessly for a fixed number of frames (optionally emitting an
// execution trace) or in a window via Ebitengine.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cdebost/nesem/internal/cartridge"
	"github.com/cdebost/nesem/internal/console"
	"github.com/cdebost/nesem/internal/trace"
	"github.com/cdebost/nesem/internal/version"
)

func main() {
	var (
		romPath      = flag.String("rom", "", "path to an iNES ROM file")
		gui          = flag.Bool("gui", false, "open a window and run interactively")
		frames       = flag.Int("frames", 60, "frames to run in headless mode")
		traceFile    = flag.String("trace", "", "write a per-instruction execution trace to this file")
		scale        = flag.Int("scale", 2, "integer pixel scale for -gui")
		printVersion = flag.Bool("version", false, "print version information and exit")
	)
	flag.Parse()

	if *printVersion {
		fmt.Println(version.GetDetailedVersion())
		return
	}

	if *romPath == "" {
		fmt.Fprintln(os.Stderr, "nesem: -rom is required")
		flag.Usage()
		os.Exit(2)
	}

	cart, err := cartridge.LoadFile(*romPath)
	if err != nil {
		log.Fatalf("nesem: loading %s: %v", *romPath, err)
	}

	c := console.New(cart)
	c.Reset()

	var traceOut *os.File
	if *traceFile != "" {
		traceOut, err = os.Create(*traceFile)
		if err != nil {
			log.Fatalf("nesem: %v", err)
		}
		defer traceOut.Close()
	}

	if *gui {
		runGUI(c, *scale)
		return
	}
	runHeadless(c, *frames, traceOut)
}

func runHeadless(c *console.Console, frames int, traceOut *os.File) {
	for frame := 0; frame < frames; frame++ {
		last := c.PPU.Scanline
		for {
			if traceOut != nil {
				fmt.Fprintln(traceOut, trace.Line(c.CPU, c.PPU, c.Mem))
			}
			c.Step()
			if c.PPU.Scanline < last {
				break
			}
			last = c.PPU.Scanline
		}
	}
}
