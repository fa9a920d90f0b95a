package main

import (
	"fmt"
	"os"

	"yatube/service"
)

func main() {
	if err := service.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
