package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app       = "shortlister"
	envPrefix = "SHORTLISTER"
)

type Config struct {
	Inputs    *InputsConfig    `mapstructure:"inputs"`
	Workers   int              `mapstructure:"workers" validate:"gte=0,lte=256"`
	Shortlist *ShortlistConfig `mapstructure:"shortlist"`
	Store     *StoreConfig     `mapstructure:"store"`
}

type InputsConfig struct {
	Candidates string `mapstructure:"candidates"`
	Employer   string `mapstructure:"employer"`
	Exclusions string `mapstructure:"exclusions"`
	Profile    string `mapstructure:"profile"`
}

type ShortlistConfig struct {
	Limit             int `mapstructure:"limit" validate:"gte=0"`
	MinimumPercentage int `mapstructure:"minimum-percentage" validate:"gte=0,lte=100"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "shortlister ranks candidates against an employer's requirements and keeps the shortlists",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "a config file (default is shortlister.yaml in current directory)")
	flags.BoolP("debug", "d", false, "verbose/debug output")
	flags.BoolP("json", "j", false, "json format for logging")
	flags.StringP("candidates", "c", "", "JSON file with candidates")
	flags.StringP("employer", "e", "", "JSON file with the employer and its requirements")
	flags.StringP("exclusions", "x", "", "JSON file with candidate exclusions. Default is unset.")
	flags.StringP("profile", "p", "", "JSON file with the employer profile. Default is unset.")
	flags.String("store", "", "SQLite database for ranking runs. Default is unset.")

	for key, flag := range map[string]string{
		"debug":             "debug",
		"json":              "json",
		"inputs.candidates": "candidates",
		"inputs.employer":   "employer",
		"inputs.exclusions": "exclusions",
		"inputs.profile":    "profile",
		"store.path":        "store",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			log.Fatalf("binding %s flag: %v", flag, err)
		}
	}
}

func initConfig() {
	// A missing .env is fine, it only provides defaults for the environment.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Flags alone are a valid configuration, a broken config file is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	if config.Shortlist == nil {
		config.Shortlist = &ShortlistConfig{}
	}
	if config.Store == nil {
		config.Store = &StoreConfig{}
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// requireInputs checks the inputs needed to rank candidates. Only the commands
// that rank call it, history works with a store alone.
func (c *Config) requireInputs() error {
	var missing []string
	if c.Inputs == nil || strings.TrimSpace(c.Inputs.Candidates) == "" {
		missing = append(missing, "inputs.candidates")
	}
	if c.Inputs == nil || strings.TrimSpace(c.Inputs.Employer) == "" {
		missing = append(missing, "inputs.employer")
	}

	if len(missing) > 0 {
		return fmt.Errorf("required inputs are not set: %s", strings.Join(missing, ", "))
	}
	return nil
}
