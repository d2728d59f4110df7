package main

import "github.com/kavan-vyas/epe-video-editor/cmd"

func main() {
	cmd.Execute()
}
