package main

import "github.com/rapheephat/hiewhub-tui/cmd/hiewhub/commands"

func main() {
	commands.Execute()
}
