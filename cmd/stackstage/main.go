package main

import "github.com/stackstage/stackstage/cmd/stackstage/commands"

func main() {
	commands.Execute()
}
