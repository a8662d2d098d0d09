package main

import (
	"os"

	"github.com/myapp-blog/myapp/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
