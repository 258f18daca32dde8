package main

import "svw.info/untangle/cmd"

func main() {
	cmd.Execute()
}
