package main

import "github.com/theirongolddev/meterstat/cmd"

func main() {
	cmd.Execute()
}
