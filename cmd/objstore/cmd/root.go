package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aweris/objstore"
)

var rootCmd = &cobra.Command{
	Use:   "objstore",
	Short: "Object storage CLI",
	Long:  "CLI for storing, retrieving and deleting objects in a configured backend.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ~/.config/objstore/config.yaml)")
	rootCmd.PersistentFlags().String("backend", "", "backend type (default: local)")
	rootCmd.PersistentFlags().String("path", "", "storage root for the local backend")
	rootCmd.PersistentFlags().StringArray("setting", nil, "extra backend setting as key=value (repeatable)")

	viper.BindPFlag("backend", rootCmd.PersistentFlags().Lookup("backend"))
	viper.BindPFlag("path", rootCmd.PersistentFlags().Lookup("path"))
}

func initConfig() {
	if cfg := rootCmd.PersistentFlags().Lookup("config").Value.String(); cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(configDir())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("OBJSTORE")
	viper.AutomaticEnv()
	viper.SetDefault("backend", "local")

	viper.ReadInConfig()
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "objstore")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "objstore")
	}
	return ".objstore"
}

// openBackend builds the backend from config file, env and flags. Flag
// settings come last so they win over the config file.
func openBackend(cmd *cobra.Command) (objstore.Backend, error) {
	var kv []string
	if path := viper.GetString("path"); path != "" {
		kv = append(kv, "path", path)
	}
	for key, value := range viper.GetStringMapString("settings") {
		kv = append(kv, key, value)
	}

	extra, _ := cmd.Flags().GetStringArray("setting")
	for _, s := range extra {
		key, value, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --setting %q, want key=value", s)
		}
		kv = append(kv, key, value)
	}

	return objstore.New(viper.GetString("backend"), objstore.NewSettings(kv...))
}

func closeBackend(b objstore.Backend, err *error) {
	if c, ok := b.(io.Closer); ok {
		if cerr := c.Close(); cerr != nil && *err == nil {
			*err = cerr
		}
	}
}
