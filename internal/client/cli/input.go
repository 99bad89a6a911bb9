package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
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

// GetRequiredText is GetSimpleText that rejects an empty answer.
func GetRequiredText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	s, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", fmt.Errorf("%s: value required", strings.TrimSuffix(prompt, ":"))
	}
	return s, nil
}

// GetPassword prints a password prompt to w and reads a password
// from the user's terminal without echo.
func GetPassword(w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
