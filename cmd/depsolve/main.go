package main

import "avular-packages/internal/cli"

func main() {
	cli.Execute()
}
