package main

import "github.com/allenai/mathfish/internal/cli"

func main() {
	cli.Execute()
}
