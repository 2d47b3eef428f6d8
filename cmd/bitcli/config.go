package main

import (
	"fmt"
	"path/filepath"
	"reflect"

	"github.com/spacemeshos/smutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const defaultConfigFileName = "config.toml"

var (
	defaultHomeDir    = filepath.Join(smutil.GetUserHomeDirectory(), "bitcodec")
	defaultConfigFile = filepath.Join(defaultHomeDir, defaultConfigFileName)
)

type Config struct {
	ConfigFile  string `mapstructure:"config"`
	Endianness  string `mapstructure:"endianness"`
	ElementBits uint   `mapstructure:"element-bits"`
	LogLevel    string `mapstructure:"loglevel"`
	InputFile   string `mapstructure:"file"`
	InputHex    string `mapstructure:"hex"`
	Debug       bool   `mapstructure:"debug"`
}

func defaultConfig() *Config {
	return &Config{
		ConfigFile:  defaultConfigFile,
		Endianness:  "big",
		ElementBits: 8,
		LogLevel:    "info",
	}
}

func setFlags(cmd *cobra.Command, cfg *Config) {
	flags := cmd.PersistentFlags()

	flags.StringVar(&cfg.ConfigFile, "config",
		cfg.ConfigFile, "Path to configuration file")

	flags.StringVar(&cfg.Endianness, "endianness",
		cfg.Endianness, "Per-element bit order of the input: big | little")

	flags.UintVar(&cfg.ElementBits, "element-bits",
		cfg.ElementBits, "Element width of the input, in bits: 8, 16, 32 or 64")

	flags.StringVar(&cfg.LogLevel, "loglevel",
		cfg.LogLevel, "Log level (debug, info, warn, error)")

	flags.StringVar(&cfg.InputFile, "file",
		cfg.InputFile, "Path to a binary input file")

	flags.StringVar(&cfg.InputHex, "hex",
		cfg.InputHex, "Input bytes as a hex string")

	flags.BoolVar(&cfg.Debug, "debug",
		cfg.Debug, "Dump the merged config before running")

	err := viper.BindPFlags(flags)
	if err != nil {
		panic(err)
	}
}

func loadConfig(cmd *cobra.Command) (*Config, error) {
	// Read in the config file if passed as param using viper.
	fileLocation := smutil.GetCanonicalPath(viper.GetString("config"))
	vip := viper.New()

	_ = loadConfigFile(fileLocation, vip)

	// Load config if it was loaded to our viper.
	cfg := defaultConfig()
	err := vip.Unmarshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %v", err)
	}

	// Ensure cli args are higher priority than the config file.
	ensureCLIFlags(cmd, cfg)

	return cfg, nil
}

func loadConfigFile(fileLocation string, vip *viper.Viper) error {
	if fileLocation == "" {
		fileLocation = defaultConfigFile
	}

	vip.SetConfigFile(fileLocation)
	if err := vip.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %v", err)
	}

	return nil
}

func ensureCLIFlags(cmd *cobra.Command, cfg *Config) {
	p := reflect.TypeOf(*cfg)
	elem := reflect.ValueOf(cfg).Elem()

	cmd.Root().PersistentFlags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed {
			return
		}

		for i := 0; i < p.NumField(); i++ {
			if p.Field(i).Tag.Get("mapstructure") != f.Name {
				continue
			}

			var val interface{}
			switch p.Field(i).Type.String() {
			case "bool":
				val = viper.GetBool(f.Name)
			case "string":
				val = viper.GetString(f.Name)
			case "uint":
				val = viper.GetUint(f.Name)
			default:
				val = viper.Get(f.Name)
			}

			elem.Field(i).Set(reflect.ValueOf(val))
			return
		}
	})
}
