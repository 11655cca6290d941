package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-opener/pkg/match"
	"github.com/mattsolo1/grove-opener/pkg/models"
)

// AddGlobalFlags registers the flags every command shares, unless the root
// command already provides them.
func AddGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	if flags.Lookup("config") == nil {
		flags.String("config", "", "config file (default is $HOME/.config/fno/config.yaml)")
	}
	if flags.Lookup("verbose") == nil {
		flags.BoolP("verbose", "v", false, "Log resolution details to stderr")
	}
	flags.Bool("cached", false, "Read the vault listing from the index instead of walking the vault")
}

// Load reads the config file named by the --config flag of cmd, the
// environment and defaults into validated settings. The regex delimiter set
// is applied to the matcher as a side effect.
func Load(cmd *cobra.Command) (*models.Settings, error) {
	file, _ := cmd.Flags().GetString("config")
	settings, err := load(file)
	if err != nil {
		return nil, err
	}
	match.SetDelimiters(settings.RegexDelimiters)
	return settings, nil
}

func load(file string) (*models.Settings, error) {
	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("find home directory: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".config", "fno"))
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FNO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := setDefaults(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing default config file is fine, everything has a default.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var settings models.Settings
	hooks := mapstructure.ComposeDecodeHookFunc(
		pickerModeHook,
		mapstructure.StringToSliceHookFunc(","),
	)
	if err := v.Unmarshal(&settings, viper.DecodeHook(hooks)); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := validate(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// pickerModeHook accepts picker names in any case.
func pickerModeHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(models.PickerMode("")) {
		return data, nil
	}
	return models.PickerMode(strings.ToLower(strings.TrimSpace(data.(string)))), nil
}

func setDefaults(v *viper.Viper) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	defaults := models.DefaultSettings

	v.SetDefault("vault", cwd)
	v.SetDefault("picker", string(defaults.Picker))
	v.SetDefault("regex_delimiters", defaults.RegexDelimiters)
	v.SetDefault("directory.root", defaults.Directory.Root)
	v.SetDefault("directory.depth", defaults.Directory.Depth)
	v.SetDefault("directory.include_roots", defaults.Directory.IncludeRoots)
	v.SetDefault("index.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "fno", "index.db"))
	v.SetDefault("index.enabled", false)
	v.SetDefault("scan.extensions", defaults.Scan.Extensions)
	v.SetDefault("scan.include_hidden", defaults.Scan.IncludeHidden)
	return nil
}

func validate(s *models.Settings) error {
	switch s.Picker {
	case models.PickerFlat, models.PickerRecursive:
	default:
		return fmt.Errorf("invalid config: unknown picker %q (want %q or %q)", s.Picker, models.PickerFlat, models.PickerRecursive)
	}
	if s.RegexDelimiters == "" {
		s.RegexDelimiters = match.DefaultDelimiters
	}
	if err := models.ValidateNoteFilterSets(s.NoteFilterSets); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := models.ValidateFolderFilterSets(s.FolderFilterSets); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	vault, err := expandHome(s.Vault)
	if err != nil {
		return err
	}
	s.Vault = vault
	if s.Index.Path != ":memory:" {
		if s.Index.Path, err = expandHome(s.Index.Path); err != nil {
			return err
		}
	}
	return nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
