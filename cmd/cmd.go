package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/carlmjohnson/versioninfo"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robinovitch61/thr/internal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	// Version is public so users can optionally specify or override the version
	// at build time by passing in ldflags, e.g.
	//   go build -ldflags "-X github.com/robinovitch61/thr/cmd.Version=vX.Y.Z"
	Version = ""
)

type arg struct {
	cliShort, cfgFileEnvVar, description, defaultString string
	isBool, isInt, defaultIfBool                        bool
	defaultIfInt                                        int
}

var (
	rootNameToArg = map[string]arg{
		"cell-height": {
			cfgFileEnvVar: "cell-height",
			description:   `Pixel height of a terminal row. Default 16`,
			isInt:         true,
		},
		"compact": {
			cfgFileEnvVar: "compact",
			description:   `If present, always use the compact layout. Default false (detected from width and terminal)`,
			isBool:        true,
		},
		"demo": {
			cfgFileEnvVar: "demo",
			description:   `Show a generated thread with this many replies instead of reading a file`,
			isInt:         true,
		},
		"file": {
			cliShort:      "f",
			cfgFileEnvVar: "file",
			description:   `Thread JSON file. Can also be given as the first argument`,
		},
		"help": {
			description: `Print usage`,
		},
		"highlight": {
			cliShort:      "p",
			cfgFileEnvVar: "highlight",
			description:   `Post id to open the thread at`,
		},
		"last-viewed": {
			cfgFileEnvVar: "last-viewed",
			description:   `When the thread was last read, as RFC3339 or a duration ago, e.g. 2h. Defaults to the file's value`,
		},
		"overscan": {
			cfgFileEnvVar: "overscan",
			description:   `Number of posts rendered past each edge of the screen. Default 30`,
			isInt:         true,
		},
		"relative": {
			cliShort:      "r",
			cfgFileEnvVar: "relative",
			description:   `If present, show relative timestamps like "5m ago". Default false (absolute with date separators)`,
			isBool:        true,
		},
		"seed": {
			cfgFileEnvVar: "seed",
			description:   `Random seed for --demo. Default 1`,
			isInt:         true,
			defaultIfInt:  1,
		},
		"user": {
			cliShort:      "u",
			cfgFileEnvVar: "user",
			description:   `Current user id. Their own posts are never unread, and are followed when the thread opened at the bottom`,
		},
		"watch": {
			cliShort:      "w",
			cfgFileEnvVar: "watch",
			description:   `If present, reload the thread when the file changes. Default false`,
			isBool:        true,
		},
	}

	description = fmt.Sprintf(`thr %s
Leo Robinovitch <leorobinovitch@gmail.com>

thr is a terminal viewer for a conversation thread

Home page: https://github.com/robinovitch61/thr`,
		getVersion(),
	)

	rootCmd = &cobra.Command{
		Use:   "thr [file]",
		Short: "thr: thread viewer",
		Long:  description,
		Args:  cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, rootNameToArg)
		},
		Run:     mainEntrypoint,
		Version: getVersion(),
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

// init is called once when the cmd package is loaded
// https://golangdocs.com/init-function-in-golang
func init() {
	cliLong := "help"
	rootCmd.PersistentFlags().BoolP(cliLong, rootNameToArg[cliLong].cliShort, rootNameToArg[cliLong].defaultIfBool, rootNameToArg[cliLong].description)

	for _, cliLong = range []string{
		"cell-height",
		"compact",
		"demo",
		"file",
		"highlight",
		"last-viewed",
		"overscan",
		"relative",
		"seed",
		"user",
		"watch",
	} {
		c := rootNameToArg[cliLong]
		if c.isBool {
			rootCmd.PersistentFlags().BoolP(cliLong, c.cliShort, c.defaultIfBool, c.description)
		} else if c.isInt {
			rootCmd.PersistentFlags().IntP(cliLong, c.cliShort, c.defaultIfInt, c.description)
		} else {
			rootCmd.PersistentFlags().StringP(cliLong, c.cliShort, c.defaultString, c.description)
		}
		_ = viper.BindPFlag(cliLong, rootCmd.PersistentFlags().Lookup(c.cfgFileEnvVar))
	}
	rootCmd.SetVersionTemplate(`{{printf "thr %s\n" .Version}}`)
	rootCmd.Flags().BoolP("version", "v", false, "Show thr version")
}

func initConfig(cmd *cobra.Command, nameToArg map[string]arg) error {
	// bind viper to env vars, e.g. THR_LAST_VIEWED
	viper.SetEnvPrefix("thr")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(filepath.Join(homeDir(), ".config", "thr"))
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	bindFlags(cmd, nameToArg)
	return nil
}

func bindFlags(cmd *cobra.Command, nameToArg map[string]arg) {
	v := viper.GetViper()
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Determine the naming convention of the flags when represented in the config file
		cliLong := f.Name
		viperName := nameToArg[cliLong].cfgFileEnvVar
		if viperName == "" {
			return
		}

		// Apply the viper config value to the flag when the flag is not manually specified
		// and viper has a value from the config file or env var
		if !f.Changed && v.IsSet(viperName) {
			val := v.Get(viperName)
			err := cmd.Flags().Set(cliLong, fmt.Sprintf("%v", val))
			if err != nil {
				fmt.Printf("error setting flag %s: %v\n", cliLong, err)
				os.Exit(1)
			}
		}
	})
}

func mainEntrypoint(cmd *cobra.Command, args []string) {
	initialModel, options := setup(cmd, args)
	program := tea.NewProgram(initialModel, options...)

	if _, err := program.Run(); err != nil {
		fmt.Printf("error on thr startup: %v", err)
		os.Exit(1)
	}
}

func getVersion() string {
	if Version != "" {
		return Version
	}
	return versioninfo.Short()
}

func homeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	return os.Getenv("USERPROFILE") // Windows
}

func getFilePath(cmd *cobra.Command, args []string) string {
	path := cmd.Flags().Lookup("file").Value.String()
	if len(args) > 0 {
		if path != "" && path != args[0] {
			fmt.Println("error: both --file and a file argument given")
			os.Exit(1)
		}
		path = args[0]
	}
	return path
}

func getInt(cmd *cobra.Command, name string, minimum int) int {
	n, err := cmd.Flags().GetInt(name)
	if err != nil {
		fmt.Printf("error parsing %s: %v\n", name, err)
		os.Exit(1)
	}
	if n < minimum {
		fmt.Printf("error: %s must be at least %d\n", name, minimum)
		os.Exit(1)
	}
	return n
}

func getBool(cmd *cobra.Command, name string) bool {
	return cmd.Flags().Lookup(name).Value.String() == "true"
}

func getLastViewed(cmd *cobra.Command) time.Time {
	t, err := parseLastViewed(cmd.Flags().Lookup("last-viewed").Value.String(), time.Now())
	if err != nil {
		fmt.Printf("error parsing last-viewed: %v\n", err)
		os.Exit(1)
	}
	return t
}

// parseLastViewed accepts an RFC3339 time or a duration before now. Empty is the zero time
func parseLastViewed(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is neither an RFC3339 time nor a duration", s)
	}
	if d < 0 {
		return time.Time{}, fmt.Errorf("duration %s is negative", s)
	}
	return now.Add(-d), nil
}

func getConfig(cmd *cobra.Command, args []string) internal.Config {
	c := internal.Config{
		FilePath:           getFilePath(cmd, args),
		CurrentUserID:      cmd.Flags().Lookup("user").Value.String(),
		HighlightedID:      cmd.Flags().Lookup("highlight").Value.String(),
		LastViewedAt:       getLastViewed(cmd),
		RelativeTimestamps: getBool(cmd, "relative"),
		Watch:              getBool(cmd, "watch"),
		CellHeight:         getInt(cmd, "cell-height", 0),
		Overscan:           getInt(cmd, "overscan", 0),
		ForceCompact:       getBool(cmd, "compact"),
		Demo:               getInt(cmd, "demo", 0),
		DemoSeed:           int64(getInt(cmd, "seed", 0)),
		DemoEnd:            time.Now(),
		Location:           time.Local,
		Version:            getVersion(),
	}
	if c.Demo == 0 && c.FilePath == "" {
		fmt.Println("error: a thread file is required, e.g. thr thread.json, or try --demo 100")
		os.Exit(1)
	}
	return c
}

func setup(cmd *cobra.Command, args []string) (internal.Model, []tea.ProgramOption) {
	initialModel := internal.InitialModel(getConfig(cmd, args))
	return initialModel, []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
}
