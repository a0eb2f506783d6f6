package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/banshee-data/pulsewire/internal/pulsewire"
)

const rule = "-------------------------------------------"

// errInvalidEntry is returned when an answer to a prompt is not one of the
// accepted values.
var errInvalidEntry = errors.New("Invalid entry!")

// prompter asks the interactive questions. Answers are whitespace separated
// tokens, so several answers may arrive on one line.
type prompter struct {
	in  io.Reader
	out io.Writer
}

func (p prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	var answer string
	if _, err := fmt.Fscan(p.in, &answer); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return "", errInvalidEntry
		}
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return answer, nil
}

// chooseFile lists paths numbered from 1 and returns the selected one.
func (p prompter) chooseFile(paths []string) (string, error) {
	fmt.Fprintln(p.out, rule)
	for i, path := range paths {
		fmt.Fprintf(p.out, "%d. %s\n", i+1, filepath.Base(path))
	}
	fmt.Fprintln(p.out, rule)
	fmt.Fprintln(p.out)

	answer, err := p.ask("Choose the file you want to decode: ")
	if err != nil {
		return "", err
	}
	fmt.Fprintln(p.out)

	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(paths) {
		return "", errInvalidEntry
	}
	return paths[n-1], nil
}

func (p prompter) chooseRole() (pulsewire.Role, error) {
	answer, err := p.ask("Decode (m)aster or (s)lave data? ")
	if err != nil {
		return 0, err
	}
	switch answer {
	case "m":
		return pulsewire.RoleMaster, nil
	case "s":
		return pulsewire.RoleSlave, nil
	}
	return 0, errInvalidEntry
}

func (p prompter) chooseDiagnostics() (bool, error) {
	answer, err := p.ask("Enable (d)ebug mode or (n)ormal mode? ")
	if err != nil {
		return false, err
	}
	switch answer {
	case "d":
		return true, nil
	case "n":
		return false, nil
	}
	return false, errInvalidEntry
}
