package main

import "github.com/forPelevin/ffmpeg-english/internal/cli"

func main() {
	cli.Main()
}
