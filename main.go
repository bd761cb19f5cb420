package main

import (
	"exusiai.dev/gazeseq/cmd/app"
)

func main() {
	app.Run()
}
