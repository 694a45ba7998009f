// Command tztool unpacks and compiles IANA timezone data into binary
// repository files.
//
// The working directory holds the distributions, either as archives
// (tzdata2011n.tar.gz) or unpacked subdirectories (tzdata2011n). Compiling
// writes tzdata<version>/tzdata.repository next to them.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MenoData/TZTool/tzc"
	"github.com/MenoData/TZTool/tzdb/dist"
	"github.com/MenoData/TZTool/tzrepo"
)

// configFile is the optional per-workdir configuration file. Flags given on
// the command line win over its values.
const configFile = "tztool.yaml"

type config struct {
	Workdir string `yaml:"workdir"`
	Version string `yaml:"version"`
	Verbose bool   `yaml:"verbose"`
	LMT     bool   `yaml:"lmt"`
}

type app struct {
	cfg config
	log *logrus.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{log: logrus.New()}

	root := &cobra.Command{
		Use:           "tztool",
		Short:         "Compile IANA timezone data into a binary repository",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.Workdir, "workdir", "tzrepo", "working directory containing timezone data")
	flags.StringVar(&a.cfg.Version, "version", "", "timezone version to use instead of the newest available (example: 2011n)")
	flags.BoolVar(&a.cfg.Verbose, "verbose", false, "print details during execution")
	flags.BoolVar(&a.cfg.LMT, "lmt", false, "include LMT zone entries during compilation")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		fileCfg, err := loadConfig(filepath.Join(a.cfg.Workdir, configFile))
		if err != nil {
			return err
		}
		if !flags.Changed("workdir") && fileCfg.Workdir != "" {
			a.cfg.Workdir = fileCfg.Workdir
		}
		if !flags.Changed("version") && fileCfg.Version != "" {
			a.cfg.Version = fileCfg.Version
		}
		if !flags.Changed("verbose") {
			a.cfg.Verbose = a.cfg.Verbose || fileCfg.Verbose
		}
		if !flags.Changed("lmt") {
			a.cfg.LMT = a.cfg.LMT || fileCfg.LMT
		}
		return a.setup()
	}

	root.AddCommand(newUnpackCmd(a), newCompileCmd(a))
	return root
}

// setup validates the merged configuration and prepares logging.
func (a *app) setup() error {
	if a.cfg.Version != "" && !dist.IsVersion(a.cfg.Version) {
		return fmt.Errorf("unexpected version format: %q", a.cfg.Version)
	}

	info, err := os.Stat(a.cfg.Workdir)
	if err != nil {
		return fmt.Errorf("work directory does not exist: %s", a.cfg.Workdir)
	}
	if !info.IsDir() {
		return fmt.Errorf("directory required: %s", a.cfg.Workdir)
	}

	a.log.SetOutput(os.Stderr)
	if a.cfg.Verbose {
		a.log.SetLevel(logrus.InfoLevel)
	} else {
		a.log.SetLevel(logrus.WarnLevel)
	}
	return nil
}

func loadConfig(path string) (config, error) {
	var cfg config
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func newUnpackCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unpack",
		Short: "Unpack a timezone archive into a subdirectory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			version := a.cfg.Version
			if version == "" {
				archives, _, err := dist.Versions(a.cfg.Workdir)
				if err != nil {
					return err
				}
				for _, v := range archives {
					if version == "" || dist.Newer(v, version) {
						version = v
					}
				}
				if version == "" {
					return fmt.Errorf("archive not found in: %s", a.cfg.Workdir)
				}
			}
			a.log.WithField("version", version).Info("start unpacking")
			if err := dist.Unpack(a.cfg.Workdir, version, a.log); err != nil {
				return err
			}
			fmt.Printf("Version %q unpacked.\n", version)
			return nil
		},
	}
}

func newCompileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compile",
		Short: "Compile timezone data into a repository file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			version := a.cfg.Version
			if version == "" {
				newest, _, err := dist.Newest(a.cfg.Workdir)
				if err != nil {
					return err
				}
				version = newest
			}
			a.log.WithField("version", version).Info("start compiling")

			files, err := dist.Load(a.cfg.Workdir, version)
			if err != nil {
				return err
			}

			repo, err := tzc.Compile(version, files, tzc.Options{LMT: a.cfg.LMT, Log: a.log})
			if err != nil {
				return err
			}
			if err := tzrepo.Validate(repo); err != nil {
				return err
			}

			// Encode to memory first so the output file is only touched
			// after the whole compile has succeeded.
			var buf bytes.Buffer
			if err := repo.Encode(&buf); err != nil {
				return err
			}

			subdir := filepath.Join(a.cfg.Workdir, dist.DirName(version))
			if err := os.MkdirAll(subdir, 0o755); err != nil {
				return fmt.Errorf("cannot create subdirectory for compiled version: %w", err)
			}
			if err := os.WriteFile(filepath.Join(subdir, tzrepo.FileName), buf.Bytes(), 0o644); err != nil {
				return err
			}

			fmt.Printf("Version %q compiled.\n", version)
			return nil
		},
	}
}
