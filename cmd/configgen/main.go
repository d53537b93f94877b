package main

import (
	"flag"
	"log"

	"github.com/danmuck/bitsctl/internal/config"
)

func defaultPath(kind string) string {
	switch kind {
	case "bitsd":
		return "cmd/bitsd/config.toml"
	case "bitsctl":
		return "cmd/bitsctl/config.toml"
	default:
		log.Fatalf("unknown kind: %s", kind)
		return ""
	}
}

func main() {
	kind := flag.String("kind", "bitsd", "config kind: bitsd|bitsctl")
	output := flag.String("output", "", "output path for config template")
	validate := flag.Bool("validate", false, "validate an existing bitsd config file")
	input := flag.String("input", "", "config path for validation (defaults to per-kind cmd path)")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	if *validate {
		if *kind != "bitsd" {
			log.Fatalf("validation only supports kind bitsd; bitsctl validates its config on load")
		}
		path := *input
		if path == "" {
			path = defaultPath(*kind)
		}
		if _, err := config.LoadServerConfig(path); err != nil {
			log.Fatal(err)
		}
		log.Printf("Validated %s config at %s", *kind, path)
		return
	}

	target := *output
	if target == "" {
		target = defaultPath(*kind)
	}
	if err := config.WriteTemplate(target, *kind, *force); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %s config template to %s", *kind, target)
}
