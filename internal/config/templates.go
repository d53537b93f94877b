package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "bitsd":
		return serverTemplate, nil
	case "bitsctl":
		return cliTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const serverTemplate = `name = "bitsd"
addr = ":9400"
cors_origins = ["http://localhost:3000"]
max_hex_digits = 65536
max_depth = 1024
log_level = "info"
# decode_token = "change-me"
`

const cliTemplate = `mode = "versions"
input = "input.txt"
max_depth = 1024
log_level = "warn"
`
