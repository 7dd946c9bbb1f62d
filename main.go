package main

import "github.com/bmatsuo/goscheme/cmd"

func main() {
	cmd.Execute()
}
