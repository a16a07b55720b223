package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/halfcrow/iconpack"
	"github.com/halfcrow/iconpack/utils"
)

const helpBanner = `
┬┌─┐┌─┐┌┐┌┌─┐┌─┐┌─┐┬┌─
││  │ ││││├─┘├─┤│  ├┴┐
┴└─┘└─┘┘└┘┴  ┴ ┴└─┘┴ ┴

Multi-resolution icon container generator.
    Version: %s

`

// Version indicates the current build version.
var Version string

var (
	// Flags
	source      = flag.String("in", iconpack.PipeName, "Source image (file, URL or `-` for stdin)")
	destination = flag.String("out", ".", "Destination directory")
	name        = flag.String("name", "icon", "Artifact base name")
	formats     = flag.String("formats", "ico,icns", "Comma separated output formats (ico, icns, png)")
	upscale     = flag.Bool("upscale", false, "Permit upscaling raster sources beyond their native resolution")
	workers     = flag.Int("conc", runtime.NumCPU(), "Number of frames to render concurrently")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, helpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	outputs, err := parseFormats(*formats)
	if err != nil {
		flag.Usage()
		log.Fatal(utils.DecorateText("\n"+err.Error(), utils.ErrorMessage))
	}

	proc := &iconpack.Processor{
		Formats: outputs,
		Name:    *name,
		Upscale: *upscale,
		Workers: *workers,
	}

	// Capture CTRL-C and restore the cursor visibility back.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		if proc.Spinner != nil {
			proc.Spinner.RestoreCursor()
		}
		os.Exit(1)
	}()

	err = proc.Execute(&iconpack.Ops{
		Src: *source,
		Dst: *destination,
	})
	printStatus(*destination, err)
}

// parseFormats converts the comma separated formats flag into the
// pipeline's format list.
func parseFormats(list string) ([]iconpack.Format, error) {
	var outputs []iconpack.Format
	for _, tag := range strings.Split(list, ",") {
		switch strings.TrimSpace(strings.ToLower(tag)) {
		case "ico":
			outputs = append(outputs, iconpack.FormatICO)
		case "icns":
			outputs = append(outputs, iconpack.FormatICNS)
		case "png":
			outputs = append(outputs, iconpack.FormatPNG)
		case "":
		default:
			return nil, fmt.Errorf("unsupported output format %q: use ico, icns or png", tag)
		}
	}
	if len(outputs) == 0 {
		return nil, fmt.Errorf("please provide at least one output format")
	}
	return outputs, nil
}

// printStatus displays the relevant information about the generation process.
func printStatus(dst string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr,
			utils.DecorateText("\nError generating the icons: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\nThe icon files have been saved into: %s %s\n",
		utils.DecorateText(dst, utils.SuccessMessage),
		utils.DefaultColor,
	)
}
