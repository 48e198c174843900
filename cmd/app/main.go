package main

import (
	"context"
	"log"

	"github.com/agarwask/SDET-GENIE/internal/application"
)

func main() {
	if err := application.Execute(context.Background()); err != nil {
		log.Fatal(err)
	}
}
