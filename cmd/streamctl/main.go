package main

import "github.com/vistream-hq/vistream/internal/cli"

func main() {
	cli.Execute()
}
