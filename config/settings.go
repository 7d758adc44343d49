// Package config holds the ifsniff settings and their command line flags.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/vearne/ifsniff/biz"
	"github.com/vearne/ifsniff/capture"
	"github.com/vearne/ifsniff/consts"
	"github.com/vearne/ifsniff/protocol"
)

// MultiStringOption is a string flag that may be given several times.
// For example: --exclude-interface=lo --exclude-interface=docker0
type MultiStringOption struct {
	Params *[]string
}

func (h *MultiStringOption) String() string {
	if h.Params == nil {
		return ""
	}
	return fmt.Sprint(*h.Params)
}

// Set gets called multiple times for each flag with same name
func (h *MultiStringOption) Set(value string) error {
	if h.Params == nil {
		return nil
	}

	*h.Params = append(*h.Params, value)
	return nil
}

// AppSettings is the full configuration of one ifsniff process.
// The json tags are the flag names, so a settings file uses the same keys.
type AppSettings struct {
	ExitAfter  time.Duration `json:"exit-after"`
	ConfigFile string        `json:"config"`

	// ######################## selection ########################
	IncludeInterfaceMatch string   `json:"include-interface-match"`
	ExcludeInterface      []string `json:"exclude-interface"`
	UpOnly                bool     `json:"up-only"`

	// ######################## capture ########################
	capture.Options

	// ######################## output ########################
	Codec string `json:"codec"`
	// DiagFile additionally writes diagnostics to a rotating file.
	DiagFile string `json:"diag-file"`
	// MaxSize is the maximum size in megabytes of the file before it gets rotated.
	DiagFileMaxSize int `json:"diag-file-max-size"`
	// MaxBackups is the maximum number of old files to retain.
	DiagFileMaxBackups int `json:"diag-file-max-backups"`
	// MaxAge is the maximum number of days to retain old files.
	DiagFileMaxAge int `json:"diag-file-max-age"`
	// read errors reported per worker per second, 0 means no limit
	DiagRateLimit int `json:"diag-rate-limit"`

	// --- other ---
	CrashPolicy biz.CrashPolicy `json:"crash-policy"`
	StatsAddr   string          `json:"stats-addr"`
}

// RegisterFlags binds every setting to a flag of fs and sets the defaults.
func (s *AppSettings) RegisterFlags(fs *flag.FlagSet) {
	fs.DurationVar(&s.ExitAfter, "exit-after", 0, "exit after specified duration")
	fs.StringVar(&s.ConfigFile, "config", "",
		`load settings from a JSON file, keys are flag names, flags given on the command line win:
                ifsniff --config=/etc/ifsniff.json`)

	// #################### selection ######################
	fs.StringVar(&s.IncludeInterfaceMatch, "include-interface-match", "",
		`only capture on interfaces whose name matches the regular expression:
                ifsniff --include-interface-match="^(eth|en)"`)
	fs.Var(&MultiStringOption{Params: &s.ExcludeInterface}, "exclude-interface",
		`do not capture on the interface, may be repeated:
                ifsniff --exclude-interface=lo --exclude-interface=docker0`)
	fs.BoolVar(&s.UpOnly, "up-only", false, "skip interfaces that are down")

	// #################### capture ######################
	s.Engine = capture.EnginePcap
	fs.Var(&s.Engine, "engine", "capture engine: libpcap, af_packet or raw_socket")
	fs.IntVar(&s.Snaplen, "snaplen", 0, "bytes captured per frame, 0 derives it from the interface MTU")
	fs.BoolVar(&s.Promiscuous, "promisc", true, "put interfaces into promiscuous mode")
	fs.Var(&s.BufferSize, "buffer-size", "kernel capture buffer size, e.g. 8mb, 0 keeps the engine default")
	fs.DurationVar(&s.BufferTimeout, "buffer-timeout", capture.DefaultBufferTimeout,
		"longest time a single read blocks, bounds how fast workers notice a stop request")

	// #################### output ######################
	fs.StringVar(&s.Codec, "codec", "simple", "output format: simple or json")
	fs.StringVar(&s.DiagFile, "diag-file", "", "also write diagnostics to this rotating file")
	fs.IntVar(&s.DiagFileMaxSize, "diag-file-max-size", 100,
		"MaxSize is the maximum size in megabytes of the diagnostic file before it gets rotated.")
	fs.IntVar(&s.DiagFileMaxBackups, "diag-file-max-backups", 10,
		"MaxBackups is the maximum number of old diagnostic files to retain.")
	fs.IntVar(&s.DiagFileMaxAge, "diag-file-max-age", 30,
		"MaxAge is the maximum number of days to retain old diagnostic files.")
	fs.IntVar(&s.DiagRateLimit, "diag-rate-limit", 0,
		`read error diagnostics printed per worker per second, 0 means every read error is printed.
                A handle that keeps failing is retried with a growing pause (1ms up to 1s),
                set a limit to also keep stderr quiet in that case`)

	// #################### other ######################
	s.CrashPolicy = biz.CrashPolicyExit
	fs.Var(&s.CrashPolicy, "crash-policy",
		`what a crashed worker does to the process:
                exit      stop all workers and exit with status 1
                continue  report the crash and keep the other workers running`)
	fs.StringVar(&s.StatsAddr, "stats-addr", "",
		`serve capture counters on /debug/vars:
                ifsniff --stats-addr=127.0.0.1:6060`)
}

// Validate checks the settings that flag parsing cannot.
func (s *AppSettings) Validate() error {
	if protocol.GetCodec(s.Codec) == nil {
		return errors.Wrapf(consts.ErrUnknownCodec, "%q", s.Codec)
	}
	if s.CrashPolicy != biz.CrashPolicyExit && s.CrashPolicy != biz.CrashPolicyContinue {
		return errors.Wrapf(consts.ErrUnknownPolicy, "%q", s.CrashPolicy)
	}
	if s.Snaplen < 0 {
		return errors.Errorf("invalid snaplen %d", s.Snaplen)
	}
	if s.BufferSize < 0 {
		return errors.Errorf("invalid buffer-size %v", s.BufferSize)
	}
	if s.BufferTimeout <= 0 {
		return errors.Errorf("buffer-timeout must be positive, got %v", s.BufferTimeout)
	}
	if s.DiagRateLimit < 0 {
		return errors.Errorf("invalid diag-rate-limit %d", s.DiagRateLimit)
	}
	return nil
}
