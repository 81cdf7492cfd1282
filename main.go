package main

import "github.com/veil-notes/veil/cmd"

func main() {
	cmd.Execute()
}
