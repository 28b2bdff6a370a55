package main

import "github.com/KaramelBytes/waterdata-cli/cmd"

func main() {
	cmd.Execute()
}
