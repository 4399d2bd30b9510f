package main

import "github.com/KaramelBytes/catalogdash/cmd"

func main() {
	cmd.Execute()
}
