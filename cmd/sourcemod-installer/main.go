package main

import "sourcemod-installer/internal/cli"

func main() {
	cli.Execute()
}
