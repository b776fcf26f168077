package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/credkit/pkg/models"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/knadh/stuffbin"
	flag "github.com/spf13/pflag"
	"github.com/zerodha/logf"
)

const (
	sampleConfigFile = "config.sample.toml"
	tplDir           = "/static/templates/"
)

// Output templates shipped in static/templates, one per command.
var tplNames = []string{cmdPassword, cmdStrength, cmdOTP}

// Conf is the validated application configuration.
type Conf struct {
	App struct {
		LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`
	} `koanf:"app"`

	Password models.PasswordPolicy   `koanf:"password"`
	Strength models.StrengthCriteria `koanf:"strength"`

	OTP struct {
		TTL        time.Duration `koanf:"ttl" validate:"gt=0"`
		CodeLength int           `koanf:"code_length" validate:"gt=0,lte=32"`
	} `koanf:"otp"`
}

func initFlags() *flag.FlagSet {
	// Register --help handler.
	f := flag.NewFlagSet("config", flag.ContinueOnError)
	f.Usage = func() {
		fmt.Println("usage: credkit [flags] password|strength [password]|otp")
		fmt.Println(f.FlagUsages())
		os.Exit(0)
	}
	f.StringSlice("config", []string{"config.toml"},
		"Path to one or more TOML config files to load in order")
	f.Bool("new-config", false, "Generate a sample config.toml in the current directory")
	f.Bool("version", false, "Show build version")
	f.String("template", "", "Path to a template file that overrides the command's output template")
	f.Int("count", 1, "Number of passwords to generate")
	f.String("key", "", "OTP key. A random key is generated if empty")

	// Config overrides. These mirror the config keys.
	f.String("app.log_level", "info", "Log level: debug, info, warn, error")
	f.Int("password.length", 16, "Generated password length")
	f.Bool("password.uppercase", true, "Include uppercase letters")
	f.Bool("password.lowercase", true, "Include lowercase letters")
	f.Bool("password.numbers", true, "Include numbers")
	f.Bool("password.special", true, "Include special characters")
	f.Int("strength.min_length", 8, "Minimum password length")
	f.Bool("strength.require_uppercase", true, "Require an uppercase letter")
	f.Bool("strength.require_lowercase", true, "Require a lowercase letter")
	f.Bool("strength.require_numbers", true, "Require a number")
	f.Bool("strength.require_special", true, "Require a special character")
	f.Duration("otp.ttl", 300*time.Second, "OTP lifetime")
	f.Int("otp.code_length", 6, "Number of digits in an OTP")

	return f
}

func initConfig(f *flag.FlagSet, args []string) {
	if err := f.Parse(args); err != nil {
		lo.Fatal("error parsing flags", "error", err)
	}

	// Display version.
	if ok, _ := f.GetBool("version"); ok {
		fmt.Println(buildString)
		os.Exit(0)
	}

	// Read the config files.
	cFiles, _ := f.GetStringSlice("config")
	for _, f := range cFiles {
		if err := ko.Load(file.Provider(f), toml.Parser()); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				lo.Debug("config file not found", "file", f)
				continue
			}
			lo.Fatal("error reading config", "file", f, "error", err)
		}
		lo.Debug("read config", "file", f)
	}

	// Load environment variables and merge into the loaded config.
	if err := ko.Load(env.Provider("CREDKIT_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "CREDKIT_")), "__", ".", -1)
	}), nil); err != nil {
		lo.Error("error loading env config", "error", err)
	}

	if err := ko.Load(posflag.Provider(f, ".", ko), nil); err != nil {
		lo.Fatal("error loading flags", "error", err)
	}
}

// loadConf unmarshals and validates the loaded config.
func loadConf(ko *koanf.Koanf) (Conf, error) {
	var c Conf
	if err := ko.UnmarshalWithConf("", &c, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return c, err
	}

	if err := validator.New().Struct(c); err != nil {
		var vErrs validator.ValidationErrors
		if !errors.As(err, &vErrs) {
			return c, err
		}

		msgs := make([]string, 0, len(vErrs))
		for _, e := range vErrs {
			msgs = append(msgs, fmt.Sprintf("%s: failed '%s'", strings.ToLower(e.Namespace()), e.Tag()))
		}
		return c, fmt.Errorf("invalid config: %s", strings.Join(msgs, ", "))
	}

	return c, nil
}

func initLogger(level string) *logf.Logger {
	opts := logf.Opts{
		Writer:       os.Stderr,
		EnableCaller: true,
		Level:        logf.InfoLevel,
	}

	switch level {
	case "debug":
		opts.Level = logf.DebugLevel
	case "warn":
		opts.Level = logf.WarnLevel
	case "error":
		opts.Level = logf.ErrorLevel
	}

	l := logf.New(opts)
	return &l
}

func initFS(exe string) stuffbin.FileSystem {
	// Read stuffed data from self.
	fs, err := stuffbin.UnStuff(exe)
	if err != nil {
		// Binary is unstuffed or is running in dev mode.
		// Fall back to the local filesystem.
		if err == stuffbin.ErrNoID {
			fs, err = stuffbin.NewLocalFS("/", "static/", sampleConfigFile)
			if err != nil {
				log.Fatalf("error falling back to local filesystem: %v", err)
			}
		} else {
			log.Fatalf("error reading stuffed binary: %v", err)
		}
	}

	return fs
}

// initTemplates compiles the output templates from the filesystem.
func initTemplates(fs stuffbin.FileSystem) (*template.Template, error) {
	tpl := template.New("credkit").Funcs(sprig.TxtFuncMap())
	for _, n := range tplNames {
		b, err := fs.Read(tplDir + n + ".tpl")
		if err != nil {
			return nil, fmt.Errorf("error reading template %s: %v", n, err)
		}
		if _, err := tpl.New(n).Parse(string(b)); err != nil {
			return nil, fmt.Errorf("error parsing template %s: %v", n, err)
		}
	}

	return tpl, nil
}

// overrideTemplate replaces the named output template with the file at path.
func overrideTemplate(tpl *template.Template, name, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading template %s: %v", path, err)
	}
	if _, err := tpl.New(name).Parse(string(b)); err != nil {
		return fmt.Errorf("error parsing template %s: %v", path, err)
	}
	return nil
}

// newConfigFile writes the sample config to path unless it already exists.
func newConfigFile(fs stuffbin.FileSystem, path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return fmt.Errorf("%s exists. Remove it to generate a new one", path)
	}

	b, err := fs.Read("/" + sampleConfigFile)
	if err != nil {
		return fmt.Errorf("error reading sample config: %v", err)
	}

	return os.WriteFile(path, b, 0644)
}
