package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	hanabimcp "github.com/peterkuimelis/hanabi/internal/mcp"
)

func main() {
	presets := flag.String("presets", "presets.yaml", "path to presets YAML file")
	flag.Parse()

	hanabimcp.SetPresetsFile(*presets)

	s := server.NewMCPServer("hanabi", "1.0.0")
	hanabimcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
