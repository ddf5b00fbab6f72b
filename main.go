package main

import "github.com/kmarsden/langgen/cmd"

func main() {
	cmd.Execute()
}
