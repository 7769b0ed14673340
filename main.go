package main

import "casccopy/cmd"

func main() {
	cmd.Execute()
}
