// Photo Delivery - prepares event photos for client selection and sorts the
// originals once the client has chosen.
//
// The workflow has two independent steps that only share files on disk:
//
//   - convert: scans the configured source directories in order, numbers
//     every JPEG (session photos first, then party photos, each directory
//     sorted by name), fixes EXIF rotation, and writes foto_001.webp,
//     foto_002.webp, ... for the web selector.
//   - classify: reads the JSON the selector exports, finds each numbered
//     original again by file name, and copies it into one folder per chosen
//     category (ampliacion, impresion, redes_sociales, invitacion,
//     descartada, sin_clasificar).
//
// Usage:
//
//	photo-delivery init                 # Write a sample photo-delivery.toml
//	photo-delivery convert --dry-run    # Preview the numbering
//	photo-delivery convert              # Convert for the selector
//	photo-delivery classify             # Sort originals by client selection
//	photo-delivery classify --selection ~/Downloads/seleccion.json
//
// Expected layout (paths come from the config file):
//
//	event/
//	├── session/edited/   <- source 1, numbered first
//	├── party/edited/     <- source 2, numbered after source 1
//	└── classified/       <- created by classify
//	    ├── ampliacion/
//	    ├── impresion/
//	    ├── redes_sociales/
//	    ├── invitacion/
//	    ├── descartada/
//	    └── sin_clasificar/
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"photo-delivery/cmd"
)

const version = "0.1.0"

func main() {
	root := cmd.NewRootCmd()

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
