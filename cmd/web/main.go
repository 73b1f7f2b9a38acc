package main

import (
	"flag"

	"hrcell_backend/internal/app"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default config/config.yaml)")
	flag.Parse()

	app.Run(*configPath)
}
