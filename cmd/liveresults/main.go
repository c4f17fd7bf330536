package main

import "github.com/diogo/liveresults/internal/commands"

func main() {
	commands.Execute()
}
