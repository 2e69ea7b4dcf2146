package main

import "github.com/mbragg-spear/hostsh/cmd"

func main() {
	cmd.Execute()
}
