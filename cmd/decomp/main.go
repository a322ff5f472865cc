package main

import (
	"log"

	"github.com/katalvlaran/massdecomp/cmd/decomp/app"
)

func main() {
	err := app.New().Execute()
	if err != nil {
		log.Fatal(err)
	}
}
