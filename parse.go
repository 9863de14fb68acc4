package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/vyPal/pifront/lib/driver"
	pilex "github.com/vyPal/pifront/lib/lexer"
	"github.com/vyPal/pifront/lib/printer"
	"github.com/vyPal/pifront/lib/project"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:      "parse",
		Usage:     "Parse pi files and dump the syntax tree",
		Category:  "parse",
		ArgsUsage: "[files...]",
		Description: "Without file arguments the sources listed in piconf.yaml are parsed." +
			"\nSettings from the config file are overridden by flags.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "The directory holding piconf.yaml",
				Value:   ".",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: json, yaml, pretty or none",
			},
			&cli.BoolFlag{
				Name:    "resync",
				Aliases: []string{"r"},
				Usage:   "Skip broken declarations and report every error",
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Usage:   "How many files to parse at once",
			},
			&cli.StringFlag{
				Name:    "input-str",
				Aliases: []string{"s"},
				Usage:   "Parse a string instead of files",
			},
		},
		Action: parse,
	}, &cli.Command{
		Name:      "fmt",
		Usage:     "Reformat pi files",
		Category:  "parse",
		ArgsUsage: "<files...>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Write the result back to the file instead of stdout",
			},
			&cli.BoolFlag{
				Name:    "list",
				Aliases: []string{"l"},
				Usage:   "Only list files whose formatting differs",
			},
		},
		Action: format,
	}, &cli.Command{
		Name:      "tokens",
		Usage:     "Print the token stream of a pi file",
		Category:  "parse",
		ArgsUsage: "<file>",
		Action:    tokens,
	})
}

var formats = []string{"json", "yaml", "pretty", "none"}

// parseSettings merges piconf.yaml, when present, with the command flags.
func parseSettings(c *cli.Context) (project.PiConf, error) {
	var conf project.PiConf
	conf.CreateDefault(".")

	loaded, err := project.GetPiConf(c.String("config"))
	switch {
	case err == nil:
		conf = loaded
		log.Infof("using %s from %s", project.ConfigFile, c.String("config"))
	case !os.IsNotExist(errors.Cause(err)):
		return conf, err
	case c.Args().Len() == 0 && !c.IsSet("input-str"):
		return conf, errors.Errorf("no files given and no %s found", project.ConfigFile)
	}

	if c.IsSet("format") {
		conf.Parser.Output = c.String("format")
	}
	if c.IsSet("resync") {
		conf.Parser.Resync = c.Bool("resync")
	}
	if c.IsSet("jobs") {
		conf.Parser.Parallelism = c.Int("jobs")
	}
	if conf.Parser.Output == "" {
		conf.Parser.Output = "json"
	}
	if !slices.Contains(formats, conf.Parser.Output) {
		return conf, errors.Errorf("unknown output format %q (expected one of %v)", conf.Parser.Output, formats)
	}
	return conf, nil
}

func parse(c *cli.Context) error {
	conf, err := parseSettings(c)
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}

	d := driver.New(driver.Options{
		Resync:      conf.Parser.Resync,
		Parallelism: conf.Parser.Parallelism,
	})

	var results []*driver.Result
	if c.IsSet("input-str") {
		results = []*driver.Result{d.ParseSource("<input>", c.String("input-str"))}
	} else {
		paths := c.Args().Slice()
		if len(paths) == 0 {
			paths, err = conf.Files(c.String("config"))
			if err != nil {
				return cli.Exit(color.RedString("Error: %s", err), 1)
			}
		}
		if len(paths) == 0 {
			return cli.Exit(color.RedString("Error: No files to parse"), 1)
		}
		results, err = d.ParseFiles(c.Context, paths)
		if err != nil {
			return cli.Exit(color.RedString("Error: %s", err), 1)
		}
	}

	failed := 0
	for _, res := range results {
		if reportErrors(os.Stderr, res) > 0 {
			failed++
		}
	}

	if err := writeResults(os.Stdout, conf.Parser.Output, results); err != nil {
		return cli.Exit(color.RedString("Error encoding AST: %s", err), 1)
	}

	if failed > 0 {
		return cli.Exit(color.RedString("%d of %d files failed to parse", failed, len(results)), 1)
	}
	log.Infof("parsed %d files", len(results))
	return nil
}

type fileDump struct {
	Path    string `json:"path" yaml:"path"`
	Program any    `json:"program" yaml:"program"`
}

// writeResults renders the parsed programs in the given format. Files
// without a program are skipped.
func writeResults(w io.Writer, format string, results []*driver.Result) error {
	var dumps []fileDump
	for _, res := range results {
		if res.Program != nil {
			dumps = append(dumps, fileDump{Path: res.Path, Program: printer.Dump(res.Program)})
		}
	}

	switch format {
	case "none":
		return nil
	case "pretty":
		for _, res := range results {
			if res.Program == nil {
				continue
			}
			fmt.Fprintln(w, color.YellowString("// %s", res.Path))
			if err := printer.Fprint(w, res.Program); err != nil {
				return err
			}
		}
		return nil
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(dumps); err != nil {
			return err
		}
		return encoder.Close()
	default:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(dumps)
	}
}

func format(c *cli.Context) error {
	if c.Args().Len() == 0 {
		return cli.Exit(color.RedString("Error: No file specified"), 1)
	}

	d := driver.New(driver.Options{})
	failed := 0
	for _, path := range c.Args().Slice() {
		res, err := d.ParseFile(path)
		if err != nil {
			return cli.Exit(color.RedString("Error: %s", err), 1)
		}
		if reportErrors(os.Stderr, res) > 0 {
			failed++
			continue
		}

		out := printer.Print(res.Program)
		switch {
		case c.Bool("list"):
			if out != res.Source {
				fmt.Println(path)
			}
		case c.Bool("write"):
			if out == res.Source {
				continue
			}
			if err := os.WriteFile(path, []byte(out), 0644); err != nil {
				return cli.Exit(color.RedString("Error writing %s: %s", path, err), 1)
			}
			log.Infof("reformatted %s", path)
		default:
			fmt.Print(out)
		}
	}

	if failed > 0 {
		return cli.Exit(color.RedString("%d files failed to parse", failed), 1)
	}
	return nil
}

func tokens(c *cli.Context) error {
	filename := c.Args().First()
	if filename == "" {
		return cli.Exit(color.RedString("Error: No file specified"), 1)
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return cli.Exit(color.RedString("Error reading %s: %s", filename, err), 1)
	}

	toks, err := pilex.Tokenize(filename, string(src))
	if err != nil {
		reportError(os.Stderr, string(src), err)
		return cli.Exit("", 1)
	}

	names := map[int]string{}
	for name, typ := range pilex.TextScannerLexer.Symbols() {
		names[int(typ)] = name
	}
	for _, tok := range toks {
		fmt.Printf("%d:%-6d %-8s %q\n", tok.Pos.Line, tok.Pos.Column, names[int(tok.Type)], tok.Value)
	}
	return nil
}
