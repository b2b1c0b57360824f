package main

import "askbox/internal/cli"

func main() {
	cli.Execute()
}
