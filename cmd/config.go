// config.go loads flag values from a YAML config file and a dotenv file.

package cmd

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// defaultEnvFile is loaded, when present, if no --env-file is given.
const defaultEnvFile = ".env"

// loadEnv sets the variables of a dotenv file which are not already set.
func loadEnv(fs afero.Fs) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("env-file")
		if name == "" {
			exists, err := afero.Exists(fs, defaultEnvFile)
			if err != nil || !exists {
				return nil
			}
			name = defaultEnvFile
		}

		b, err := afero.ReadFile(fs, name)
		if err != nil {
			return err
		}

		env, err := godotenv.Parse(bytes.NewReader(b))
		if err != nil {
			return fmt.Errorf("gqldoc: invalid env file %s: %w", name, err)
		}

		for k, v := range env {
			if _, ok := os.LookupEnv(k); ok {
				continue
			}
			if err = os.Setenv(k, v); err != nil {
				return err
			}
		}
		zap.S().Infow("loaded env file", "name", name, "vars", len(env))
		return nil
	}
}

// loadConfig sets every flag named in a YAML config file, unless the flag
// was given on the command line. A "source" key stands in for the argument.
//
// Lists and maps set a flag once per element, e.g.
//
//	header:
//	  Authorization: Bearer $TOKEN
//
func loadConfig(fs afero.Fs, source *string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			*source = args[0]
		}

		name, _ := cmd.Flags().GetString("config")
		if name == "" {
			return nil
		}

		b, err := afero.ReadFile(fs, name)
		if err != nil {
			return err
		}

		var cfg map[string]interface{}
		if err = yaml.Unmarshal(b, &cfg); err != nil {
			return fmt.Errorf("gqldoc: invalid config file %s: %w", name, err)
		}

		keys := make([]string, 0, len(cfg))
		for k := range cfg {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			v := cfg[k]
			if k == "source" {
				if *source == "" {
					*source = fmt.Sprint(v)
				}
				continue
			}

			f := cmd.Flags().Lookup(k)
			if f == nil {
				return fmt.Errorf("gqldoc: unknown config key in %s: %s", name, k)
			}
			if f.Changed || k == "config" {
				continue
			}

			if err = setFlag(cmd, k, v); err != nil {
				return fmt.Errorf("gqldoc: invalid config value for %s: %w", k, err)
			}
		}
		zap.S().Infow("loaded config file", "name", name)
		return nil
	}
}

func setFlag(cmd *cobra.Command, name string, v interface{}) error {
	switch val := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			if err := cmd.Flags().Set(name, fmt.Sprintf("%s=%v", k, val[k])); err != nil {
				return err
			}
		}
		return nil
	case []interface{}:
		for _, e := range val {
			if err := cmd.Flags().Set(name, fmt.Sprint(e)); err != nil {
				return err
			}
		}
		return nil
	case nil:
		return nil
	}
	return cmd.Flags().Set(name, fmt.Sprint(v))
}
