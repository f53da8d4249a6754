// Command okcanvas renders drawable items to image files.
package main

import "github.com/benoitkugler/okcanvas/cmd/okcanvas/commands"

func main() {
	commands.Execute()
}
