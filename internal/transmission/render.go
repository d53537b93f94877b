package transmission

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/danmuck/bitsctl/internal/packet"
)

// Mode selects what a report prints.
type Mode string

const (
	ModeVersions Mode = "versions"
	ModeValue    Mode = "value"
	ModeTree     Mode = "tree"
	ModeJSON     Mode = "json"
)

// ParseMode accepts mode names and the numeric aliases 1 (versions) and
// 2 (value).
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "versions", "version", "1":
		return ModeVersions, nil
	case "value", "eval", "2":
		return ModeValue, nil
	case "tree":
		return ModeTree, nil
	case "json":
		return ModeJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, raw)
	}
}

// Document is the JSON form of a report including its tree.
type Document struct {
	*Report
	Tree packet.View `json:"tree"`
}

func (r *Report) Document() (Document, error) {
	if err := r.Err(ModeJSON); err != nil {
		return Document{}, err
	}
	view, err := packet.NewView(r.Root)
	if err != nil {
		return Document{}, err
	}
	return Document{Report: r, Tree: view}, nil
}

// Render formats the report for mode. Versions and value render a single
// integer.
func (r *Report) Render(mode Mode) (string, error) {
	if err := r.Err(mode); err != nil {
		return "", err
	}
	switch mode {
	case ModeVersions:
		return strconv.FormatUint(r.VersionSum, 10), nil
	case ModeValue:
		return strconv.FormatUint(r.Value, 10), nil
	case ModeTree:
		out, err := packet.Format(r.Root)
		if err != nil {
			return "", err
		}
		return strings.TrimSuffix(out, "\n"), nil
	case ModeJSON:
		doc, err := r.Document()
		if err != nil {
			return "", err
		}
		raw, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", err
		}
		return string(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// ReadInput returns the first non-empty line of a flat text file.
func ReadInput(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("transmission: read input (%s): %w", path, err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNoInput, path)
}
