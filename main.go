package main

import "github.com/mizuno-gh/repoview/cmd"

func main() {
	cmd.Execute()
}
