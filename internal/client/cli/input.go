package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/docwatch/internal/client/models"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
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

// GetPassword prints a password prompt to w and reads a password
// from the user's terminal without echo. A newline is printed after
// the read to keep the UI tidy.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetSigners reads signers in the form name=email, one per line, ending on
// an empty line or EOF.
func GetSigners(reader *bufio.Reader, w io.Writer) ([]models.Signer, error) {
	if _, err := fmt.Fprint(w, "Enter signers as name=email (empty line to finish)\n"); err != nil {
		return nil, err
	}

	signers := make([]models.Signer, 0)
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			return signers, nil
		}
		name, email, ok := strings.Cut(line, "=")
		name, email = strings.TrimSpace(name), strings.TrimSpace(email)
		if !ok || name == "" || !strings.Contains(email, "@") {
			return nil, fmt.Errorf("invalid signer %q, want name=email", line)
		}
		signers = append(signers, models.Signer{Name: name, Email: email})
		if err != nil {
			return signers, nil
		}
	}
}
