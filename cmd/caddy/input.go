package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword se reemplaza en tests para no tocar la terminal.
var readPassword = term.ReadPassword

// promptLine muestra prompt y lee una línea. Un EOF con texto parcial devuelve ese texto.
func promptLine(reader *bufio.Reader, w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword lee sin eco cuando stdin es una terminal; si no, lee una línea normal.
func promptPassword(reader *bufio.Reader, w io.Writer, prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := promptLine(reader, w, prompt)
		return line, err
	}
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// valueOrPrompt devuelve el flag si vino informado; si no, lo pide por stdin.
func valueOrPrompt(reader *bufio.Reader, w io.Writer, value, prompt string) (string, error) {
	if strings.TrimSpace(value) != "" {
		return value, nil
	}
	return promptLine(reader, w, prompt)
}
