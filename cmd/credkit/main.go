package main

import (
	"io"
	"os"
	"text/template"

	"github.com/knadh/credkit/pkg/otp"
	"github.com/knadh/credkit/pkg/random"
	"github.com/knadh/koanf/v2"
	"github.com/knadh/stuffbin"
	"github.com/zerodha/logf"
)

// App is the global app context that groups the necessary
// controls (config, OTP manager, templates etc.) used by the commands.
type App struct {
	conf Conf
	src  random.Source
	otp  *otp.Manager
	lo   *logf.Logger
	tpl  *template.Template
	fs   stuffbin.FileSystem

	in  io.Reader
	out io.Writer
}

var (
	lo = initLogger("info")
	ko = koanf.New(".")

	// Version of the build injected at build time.
	buildString = "unknown"
)

func main() {
	f := initFlags()
	initConfig(f, os.Args[1:])

	fs := initFS(os.Args[0])

	// Generate a new config file and quit.
	if ok, _ := f.GetBool("new-config"); ok {
		if err := newConfigFile(fs, "config.toml"); err != nil {
			lo.Fatal("error generating config", "error", err)
		}
		lo.Info("config.toml generated. Edit it and run the app")
		os.Exit(0)
	}

	conf, err := loadConf(ko)
	if err != nil {
		lo.Fatal("error loading config", "error", err)
	}
	lo = initLogger(conf.App.LogLevel)

	tpl, err := initTemplates(fs)
	if err != nil {
		lo.Fatal("error loading templates", "error", err)
	}

	src := random.New()
	mgr, err := otp.New(otp.Conf{
		TTL:        conf.OTP.TTL,
		CodeLength: conf.OTP.CodeLength,
	}, otp.WithRandom(src), otp.WithLogger(lo))
	if err != nil {
		lo.Fatal("error initializing OTP manager", "error", err)
	}

	app := &App{
		conf: conf,
		src:  src,
		otp:  mgr,
		lo:   lo,
		tpl:  tpl,
		fs:   fs,
		in:   os.Stdin,
		out:  os.Stdout,
	}

	args := f.Args()
	if len(args) == 0 {
		f.Usage()
		return
	}

	// Optional user template for the command's output.
	if path := ko.String("template"); path != "" {
		if err := overrideTemplate(app.tpl, args[0], path); err != nil {
			lo.Fatal("error loading template", "error", err)
		}
	}

	os.Exit(app.run(args[0], args[1:], ko))
}
