package main

import "github.com/JustAGod1/wifi-dumper/cmd"

func main() {
	cmd.Execute()
}
