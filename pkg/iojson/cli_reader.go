package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// FileReader decodes a JSON value from the file named by its flag, or from
// piped stdin when the flag is unset.
type FileReader[T any] struct {
	// Name is the flag name, defaults to "file".
	Name string
	// Optional makes a missing file and a terminal stdin return the zero value.
	Optional bool

	fileFlagValue string
	stdin         io.Reader
	isTerminal    func() bool
}

func (fr *FileReader[T]) Flag() *cli.StringFlag {
	name := fr.Name
	if name == "" {
		name = "file"
	}
	return &cli.StringFlag{
		Name:        name,
		Usage:       "path to JSON file (reads from stdin if piped)",
		Destination: &fr.fileFlagValue,
	}
}

func (fr *FileReader[T]) Read() (T, error) {
	var reader io.Reader
	var input T

	if fr.fileFlagValue != "" {
		f, err := os.Open(fr.fileFlagValue)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	} else {
		if fr.stdinIsTerminal() {
			if fr.Optional {
				return input, nil
			}
			return input, fmt.Errorf("no input provided (stdin is a terminal); use --%s flag or pipe JSON input", fr.Flag().Name)
		}
		reader = fr.stdinReader()
	}

	if err := json.NewDecoder(reader).Decode(&input); err != nil {
		if err == io.EOF && fr.Optional {
			return input, nil
		}
		return input, fmt.Errorf("decode JSON: %w", err)
	}

	return input, nil
}

func (fr *FileReader[T]) stdinIsTerminal() bool {
	if fr.isTerminal != nil {
		return fr.isTerminal()
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func (fr *FileReader[T]) stdinReader() io.Reader {
	if fr.stdin != nil {
		return fr.stdin
	}
	return os.Stdin
}
