package main

import "github.com/chmac/tag-summary/cmd/tagsum/cmd"

func main() {
	cmd.Execute()
}
