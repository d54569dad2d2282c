package main

import "github.com/adomenech/cataleg/cmd/cataleg/commands"

func main() {
	commands.Execute()
}
