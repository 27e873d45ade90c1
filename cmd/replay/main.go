package main

import (
	"flag"
	"log"
	"os"

	"github.com/remeadows/ProjectPlaguev1-sub001/internal/engine"
)

func main() {
	input := flag.String("input", "", "Path to tick log file")
	speed := flag.Float64("speed", 1.0, "Playback speed multiplier")
	printOnly := flag.Bool("print-only", false, "Print rows to STDOUT instead of writing to DB")
	flag.Parse()

	if *input == "" {
		log.Fatal("input file required")
	}

	var writer engine.TickWriter
	if *printOnly || os.Getenv("GREPTIMEDB_ENDPOINT") == "" {
		writer = engine.NewJSONStdoutWriter()
	} else {
		endpoint := os.Getenv("GREPTIMEDB_ENDPOINT")
		db := os.Getenv("GREPTIMEDB_DATABASE")
		if db == "" {
			db = "public"
		}
		w, err := engine.NewGreptimeDBWriter(endpoint, db)
		if err != nil {
			log.Fatalf("Failed to init GreptimeDB writer: %v", err)
		}
		writer = w
	}

	if err := engine.ReplayLogFile(*input, writer, *speed); err != nil {
		log.Fatalf("Replay failed: %v", err)
	}
}
