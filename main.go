package main

import (
	"context"
	"expvar"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/vearne/ifsniff/biz"
	"github.com/vearne/ifsniff/capture"
	"github.com/vearne/ifsniff/config"
	"github.com/vearne/ifsniff/consts"
	"github.com/vearne/ifsniff/filter"
	"github.com/vearne/ifsniff/model"
	"github.com/vearne/ifsniff/plugin"
	slog "github.com/vearne/simplelog"
)

const banner string = `
    _  ____               _  ________
   (_)/ __/_____ ____    (_)/ __/ __/
  / // /_ / ___// __ \  / // /_/ /_  
 / // __/(__  )/ / / / / // __/ __/  
/_//_/  /____//_/ /_/ /_//_/ /_/     
`

var settings config.AppSettings
var version bool

func init() {
	flag.BoolVar(&version, "version", false,
		"print version")
	settings.RegisterFlags(flag.CommandLine)
}

func main() {
	printBanner()

	adjustLogLevel()

	if path := config.ConfigPathFromArgs(os.Args[1:]); path != "" {
		if err := config.Load(flag.CommandLine, path); err != nil {
			exitOnError("load config error:%v", err)
		}
	}
	flag.Parse()
	if version {
		fmt.Println("service:", consts.AppName)
		fmt.Println("Version", consts.Version)
		fmt.Println("BuildTime", consts.BuildTime)
		fmt.Println("GitTag", consts.GitTag)
		return
	}
	if err := settings.Validate(); err != nil {
		exitOnError("invalid settings:%v", err)
	}

	printSettings(&settings)

	os.Exit(run(&settings))
}

func run(settings *config.AppSettings) int {
	ifaces, err := selectInterfaces(settings)
	if err != nil {
		slog.Error("enumerate interfaces error:%v", err)
		return 1
	}
	for _, ifi := range ifaces {
		slog.Info("interface: %v", ifi)
	}

	var diag io.WriteCloser
	if settings.DiagFile != "" {
		w, err := plugin.NewDiagFile(settings.DiagFile, &plugin.DiagFileConfig{
			MaxSize:    settings.DiagFileMaxSize,
			MaxBackups: settings.DiagFileMaxBackups,
			MaxAge:     settings.DiagFileMaxAge,
		})
		if err != nil {
			slog.Error("create diag file error:%v", err)
			return 1
		}
		diag = w
	}
	output, err := plugin.NewStdOutput(settings.Codec, diag)
	if err != nil {
		slog.Error("create output error:%v", err)
		return 1
	}
	defer output.Close()

	if settings.StatsAddr != "" {
		go serveStats(settings.StatsAddr)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if settings.ExitAfter > 0 {
		slog.Info("Running %s for a duration of %s", consts.AppName, settings.ExitAfter)
		ctx, cancel = context.WithTimeout(ctx, settings.ExitAfter)
		defer cancel()
	}
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT)
		select {
		case sig := <-c:
			slog.Info("got signal %v, stopping", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	supervisor := biz.NewSupervisor(capture.NewOpener(settings.Options), output, biz.SupervisorConfig{
		RunID:         uuid.NewString(),
		Policy:        settings.CrashPolicy,
		DiagRateLimit: settings.DiagRateLimit,
	})
	if err = supervisor.Run(ctx, ifaces); err != nil {
		slog.Error("exit: %v", err)
		return 1
	}
	return 0
}

func selectInterfaces(settings *config.AppSettings) ([]model.Interface, error) {
	ifaces, err := capture.NewLister(settings.Engine).List()
	if err != nil {
		return nil, err
	}

	chain := filter.NewFilterChain()
	if settings.IncludeInterfaceMatch != "" {
		f, err := filter.NewNameMatchIncludeFilter(settings.IncludeInterfaceMatch)
		if err != nil {
			return nil, err
		}
		chain.AddIncludeFilter(f)
	}
	if settings.UpOnly {
		chain.AddIncludeFilter(filter.UpIncludeFilter{})
	}
	if len(settings.ExcludeInterface) > 0 {
		chain.AddExcludeFilters(filter.NewNameExcludeFilter(settings.ExcludeInterface...))
	}
	return filter.Apply(chain, ifaces), nil
}

func serveStats(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/debug/vars", expvar.Handler())
	slog.Info("serving stats on http://%s/debug/vars", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("stats server error:%v", err)
	}
}

// printBanner keeps stdout for capture events only.
func printBanner() {
	fmt.Fprint(os.Stderr, banner)
}

func printSettings(settings *config.AppSettings) {
	slog.Info("engine, %v", settings.Engine.String())
	slog.Info("snaplen, %v", settings.Snaplen)
	slog.Info("promisc, %v", settings.Promiscuous)
	slog.Info("buffer-size, %v", settings.BufferSize.String())
	slog.Info("buffer-timeout, %v", settings.BufferTimeout)
	slog.Info("include-interface-match, %v", settings.IncludeInterfaceMatch)
	slog.Info("exclude-interface, %v", settings.ExcludeInterface)
	slog.Info("up-only, %v", settings.UpOnly)
	slog.Info("codec, %v", settings.Codec)
	slog.Info("diag-file, %v", settings.DiagFile)
	slog.Info("diag-rate-limit, %v", settings.DiagRateLimit)
	slog.Info("crash-policy, %v", settings.CrashPolicy.String())
	slog.Info("stats-addr, %v", settings.StatsAddr)
}

func exitOnError(format string, args ...interface{}) {
	slog.Error(format, args...)
	os.Exit(1)
}

func adjustLogLevel() {
	logLevel := os.Getenv("SIMPLE_LOG_LEVEL")
	if len(logLevel) > 0 {
		return
	}
	slog.SetLevel(slog.InfoLevel)
}
