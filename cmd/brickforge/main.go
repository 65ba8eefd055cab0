package main

import "brickforge/internal/cli"

func main() {
	cli.Execute()
}
