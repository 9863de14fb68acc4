package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/vyPal/pifront/lib/project"
)

const sampleSource = `@pre n >= 0
@post r >= 1
@decreases n
function fact(n: int): int {
    if (n == 0) {
        return 1;
    }
    return n * fact(n - 1);
}
`

func init() {
	commands = append(commands, &cli.Command{
		Name:      "init",
		Usage:     "Initialize a new pi project",
		Category:  "project",
		ArgsUsage: "[directory]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "The name of the project",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Accept the default configuration without asking",
			},
		},
		Action: initProject,
	})
}

func initProject(c *cli.Context) error {
	rootDir := c.Args().First()
	if rootDir == "" {
		rootDir = "."
	}
	ask := func(q string) bool {
		return c.Bool("yes") || project.PromptYN(os.Stdin, os.Stdout, q, false)
	}

	if _, err := os.Stat(rootDir); !os.IsNotExist(err) {
		files, err := os.ReadDir(rootDir)
		if err != nil {
			return cli.Exit(color.RedString("Error: %s", err), 1)
		}

		if len(files) > 0 && !ask("The directory is not empty, continue?") {
			return nil
		}
	} else {
		if err := os.MkdirAll(rootDir, 0755); err != nil {
			return cli.Exit(color.RedString("Error: %s", err), 1)
		}
		fmt.Println("Created directory:", rootDir)
	}

	srcDir := filepath.Join(rootDir, "src")
	if err := os.MkdirAll(srcDir, 0755); err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}

	mainFile := filepath.Join(srcDir, "main.pi")
	if _, err := os.Stat(mainFile); os.IsNotExist(err) {
		if err := os.WriteFile(mainFile, []byte(sampleSource), 0644); err != nil {
			return cli.Exit(color.RedString("Error: %s", err), 1)
		}
		fmt.Println("Created file:", mainFile)
	}

	name := c.String("name")
	if name == "" {
		name = filepath.Base(rootDir)
	}
	conf := project.PiConf{}
	conf.CreateDefault(name)
	if !c.Bool("yes") && !project.PromptYN(os.Stdin, os.Stdout, "Use default configuration?", true) {
		conf.Name = project.PromptString(os.Stdin, os.Stdout, "Project name", conf.Name)
		conf.Description = project.PromptString(os.Stdin, os.Stdout, "Project description", conf.Description)
		conf.Parser.Output = project.PromptString(os.Stdin, os.Stdout, "Output format", conf.Parser.Output)
		conf.Parser.Resync = project.PromptYN(os.Stdin, os.Stdout, "Keep parsing after errors?", conf.Parser.Resync)
	}

	confFile := filepath.Join(rootDir, project.ConfigFile)
	if err := conf.Save(confFile, c.Bool("yes"), ask); err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}
	fmt.Println("Created file:", confFile)

	fmt.Println("----------------------------------------")
	fmt.Println("Project initialized successfully!")
	fmt.Println("Run 'cd", rootDir, "&& pifront parse' to parse the project.")
	fmt.Println("----------------------------------------")

	return nil
}
