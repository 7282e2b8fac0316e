// Command mdrx validates Markdown documents against prompted Markdown
// prescriptions.
package main

import "github.com/jackchuka/mdrx/cmd/mdrx/commands"

func main() {
	commands.Execute()
}
