package project

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the name of the project file looked up by GetPiConf.
const ConfigFile = "piconf.yaml"

type PiConf struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Sources     []string     `yaml:"sources"`
	Parser      PiConfParser `yaml:"parser"`
}

type PiConfParser struct {
	// Resync keeps parsing after a broken declaration.
	Resync bool `yaml:"resync"`
	// Parallelism bounds how many files are parsed at once. Zero or less
	// means one file at a time.
	Parallelism int `yaml:"parallelism"`
	// Output is the dump format: json, yaml, pretty or none.
	Output string `yaml:"output"`
}

func (c *PiConf) CreateDefault(name string) {
	if name == "." || name == "" {
		name = "NewProject"
	}
	c.Name = name
	c.Description = "A new pi project"
	c.Sources = []string{"src/*.pi"}
	c.Parser = PiConfParser{
		Resync:      false,
		Parallelism: 4,
		Output:      "json",
	}
}

// Save writes the config as YAML. An existing file is only replaced when
// overwrite is set or confirm agrees; confirm may be nil.
func (c *PiConf) Save(path string, overwrite bool, confirm func(string) bool) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		if !overwrite && (confirm == nil || !confirm(path+" already exists. Overwrite?")) {
			return nil
		}
	}

	yml, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "encoding config")
	}

	if err := os.WriteFile(path, yml, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

func GetPiConf(dir string) (PiConf, error) {
	var conf PiConf

	path := filepath.Join(dir, ConfigFile)
	file, err := os.Open(path)
	if err != nil {
		return PiConf{}, errors.Wrapf(err, "opening %s", path)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&conf); err != nil {
		return PiConf{}, errors.Wrapf(err, "decoding %s", path)
	}

	return conf, nil
}

// Files expands the source globs relative to dir. The result is sorted and
// holds each path once.
func (c *PiConf) Files(dir string) ([]string, error) {
	seen := map[string]bool{}
	var files []string
	for _, pattern := range c.Sources {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(dir, pattern)
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "bad source pattern %q", pattern)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}
