package main

import "github.com/mpuigdom/campsched/internal/cli"

func main() {
	cli.Execute()
}
