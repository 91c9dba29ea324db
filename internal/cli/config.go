package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Flag names shared by all commands.
const (
	FlagConfig   = "config"
	FlagVerbose  = "verbose"
	FlagLogLevel = "log-level"
)

// NewViper returns a viper instance reading PREFIX_* environment variables
// and seeded with defaults.
func NewViper(envPrefix string, defaults map[string]any) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("verbose", false)
	v.SetDefault("log_level", "info")
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	return v
}

// AddCommonFlags registers --config, --verbose and --log-level.
func AddCommonFlags(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()
	fs.String(FlagConfig, "", "YAML config file")
	fs.BoolP(FlagVerbose, "v", false, "human-readable debug logging")
	fs.String(FlagLogLevel, "info", "log level (debug, info, warn, error)")
}

// Key maps a flag name to its viper key.
func Key(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}

// BindFlags binds every flag of cmd, local and inherited, to v under its
// underscore key.
func BindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var errs []error
	bind := func(f *pflag.Flag) {
		if err := v.BindPFlag(Key(f.Name), f); err != nil {
			errs = append(errs, fmt.Errorf("bind --%s: %w", f.Name, err))
		}
	}
	cmd.Flags().VisitAll(bind)
	cmd.PersistentFlags().VisitAll(bind)
	cmd.InheritedFlags().VisitAll(bind)
	return errors.Join(errs...)
}

// ReadConfigFile loads path into v. An empty path is a no-op.
func ReadConfigFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// Setup binds flags and loads the --config file. Commands call it from
// PersistentPreRunE.
func Setup(cmd *cobra.Command, v *viper.Viper) error {
	if err := BindFlags(cmd, v); err != nil {
		return err
	}
	return ReadConfigFile(v, v.GetString(FlagConfig))
}

// IntSlice reads key as a list of ints. Environment variables arrive as a
// single string and may be separated by commas or spaces.
func IntSlice(v *viper.Viper, key string) ([]int, error) {
	raw := v.Get(key)
	s, ok := raw.(string)
	if !ok {
		out, err := cast.ToIntSliceE(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		return out, nil
	}

	s = strings.Trim(s, "[]")
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not an integer", key, f)
		}
		out = append(out, n)
	}
	return out, nil
}
