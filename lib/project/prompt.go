package project

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PromptString asks for a line of input, returning def for an empty answer
// or when the input is closed.
func PromptString(r io.Reader, w io.Writer, prompt string, def string) string {
	fmt.Fprintf(w, "%s (%s): ", prompt, def)

	response, _ := bufio.NewReader(r).ReadString('\n')
	response = strings.TrimSpace(response)

	if response == "" {
		return def
	}

	return response
}

func PromptYN(r io.Reader, w io.Writer, prompt string, def bool) bool {
	if def {
		fmt.Fprintf(w, "%s (Y/n): ", prompt)
	} else {
		fmt.Fprintf(w, "%s (y/N): ", prompt)
	}

	response, _ := bufio.NewReader(r).ReadString('\n')
	response = strings.TrimSpace(response)

	if response == "" {
		return def
	}

	return strings.ToLower(response) == "y"
}
