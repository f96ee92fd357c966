package main

import "github.com/statlook/statlook-cli/cmd"

func main() {
	cmd.Execute()
}
