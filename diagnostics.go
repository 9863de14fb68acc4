package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
	"github.com/pkg/errors"

	"github.com/vyPal/pifront/lib/driver"
)

var (
	errLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	posLabel = color.New(color.FgCyan).SprintFunc()
	caret    = color.New(color.FgGreen, color.Bold).SprintFunc()
)

// reportErrors prints every diagnostic of res and returns how many there
// were.
func reportErrors(w io.Writer, res *driver.Result) int {
	for _, err := range res.Errors {
		reportError(w, res.Source, err)
	}
	return len(res.Errors)
}

// reportError prints err in the form
//
//	file.pi:3:7: error: unexpected ";" (expected expression)
//	    x = ;
//	        ^
//
// The source excerpt is left out when the position does not point into src.
func reportError(w io.Writer, src string, err error) {
	var perr participle.Error
	if !errors.As(err, &perr) {
		fmt.Fprintf(w, "%s %s\n", errLabel("error:"), err)
		return
	}
	pos := perr.Position()
	fmt.Fprintf(w, "%s: %s %s\n", posLabel(pos.String()), errLabel("error:"), perr.Message())

	lines := strings.Split(src, "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return
	}
	line := strings.TrimRight(lines[pos.Line-1], "\r")
	fmt.Fprintf(w, "    %s\n", strings.ReplaceAll(line, "\t", " "))
	if pos.Column >= 1 && pos.Column <= len(line)+1 {
		fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", pos.Column-1), caret("^"))
	}
}
