/*
Package iconpack assembles multi-resolution icon containers for the major
desktop platforms from a single vector or raster source image.

The source is rendered once per pixel size required by each platform's size
ladder, then the rendered frames are packed into the Windows ICO container,
the Apple ICNS container, or exported as a raw PNG ladder for Linux desktops.

The package provides a command line interface, supporting various flags for
the different output formats. To check the supported commands type:

	$ iconpack --help

In case you wish to integrate the API in a self constructed environment here
is a simple example:

	package main

	import (
		"fmt"

		"github.com/halfcrow/iconpack"
	)

	func main() {
		p := &iconpack.Processor{
			Formats: []iconpack.Format{iconpack.FormatICO, iconpack.FormatICNS},
		}

		if err := p.Execute(&iconpack.Ops{Src: "logo.svg", Dst: "build/icons"}); err != nil {
			fmt.Printf("Error generating the icons: %s", err.Error())
		}
	}
*/
package iconpack
