package main

import "github.com/shamanec/umdb/cmd"

func main() {
	cmd.Execute()
}
