package main

import "github.com/opensdd/osdd-release-notes/cmd/release-notes/cmd"

func main() {
	cmd.Execute()
}
