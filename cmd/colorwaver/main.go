// colorwaver - four-colour palettes from camera frames
//
// colorwaver extracts a primary, secondary, background and detail colour
// from still images and raw camera frames.
package main

import "github.com/colorwaver/colorwaver/internal/cli"

func main() {
	cli.Execute()
}
