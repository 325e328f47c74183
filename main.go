package main

import (
	"flag"
	"fmt"
	"os"
	"rosterd/internal/di"
	"rosterd/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "c", "config.yaml", "path to the YAML config file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "force debug log level")
	flag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "rosterd: %s\n", err)
		os.Exit(1)
	}
}
