package main

import (
	"fmt"
	"os"

	"github.com/divi255/rgbmon/cmd/rgbmon/internal"
)

func main() {
	if err := internal.RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
