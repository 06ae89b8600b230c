package main

import "github.com/LavenderBridge/flashcards/cmd"

func main() {
	cmd.Execute()
}
