package main

import (
	"log"

	"github.com/remeadows/ProjectPlaguev1-sub001/internal/dashboard"
)

func main() {
	if err := dashboard.Render("build"); err != nil {
		log.Fatal(err)
	}
}
