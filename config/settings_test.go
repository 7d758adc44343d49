package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vearne/ifsniff/biz"
	"github.com/vearne/ifsniff/capture"
	"github.com/vearne/ifsniff/consts"
)

func newFlagSet(s *AppSettings) *flag.FlagSet {
	fs := flag.NewFlagSet("ifsniff", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	s.RegisterFlags(fs)
	return fs
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ifsniff.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func jsonKeys(typ reflect.Type) []string {
	var keys []string
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.Anonymous {
			keys = append(keys, jsonKeys(field.Type)...)
			continue
		}
		tag := strings.Split(field.Tag.Get("json"), ",")[0]
		if tag != "" && tag != "-" {
			keys = append(keys, tag)
		}
	}
	return keys
}

func TestEverySettingHasAFlag(t *testing.T) {
	var s AppSettings
	fs := newFlagSet(&s)
	for _, key := range jsonKeys(reflect.TypeOf(s)) {
		assert.NotNil(t, fs.Lookup(key), key)
	}
}

func TestDefaults(t *testing.T) {
	var s AppSettings
	fs := newFlagSet(&s)
	require.NoError(t, fs.Parse(nil))
	assert.Equal(t, capture.EnginePcap, s.Engine)
	assert.Equal(t, "simple", s.Codec)
	assert.Equal(t, biz.CrashPolicyExit, s.CrashPolicy)
	assert.Equal(t, capture.DefaultBufferTimeout, s.BufferTimeout)
	assert.True(t, s.Promiscuous)
	assert.Empty(t, s.ExcludeInterface)
	assert.NoError(t, s.Validate())
}

func TestParseFlags(t *testing.T) {
	var s AppSettings
	fs := newFlagSet(&s)
	require.NoError(t, fs.Parse([]string{
		"--engine=af_packet",
		"--exclude-interface=lo",
		"--exclude-interface", "docker0",
		"--buffer-size=4mb",
		"--crash-policy=continue",
		"--codec=json",
		"--diag-rate-limit=5",
		"--exit-after=1m",
	}))
	assert.Equal(t, capture.EngineAFPacket, s.Engine)
	assert.Equal(t, []string{"lo", "docker0"}, s.ExcludeInterface)
	assert.EqualValues(t, 4<<20, s.BufferSize)
	assert.Equal(t, biz.CrashPolicyContinue, s.CrashPolicy)
	assert.Equal(t, 5, s.DiagRateLimit)
	assert.Equal(t, time.Minute, s.ExitAfter)
	assert.NoError(t, s.Validate())

	assert.Error(t, newFlagSet(&AppSettings{}).Parse([]string{"--engine=pf_ring"}))
	assert.Error(t, newFlagSet(&AppSettings{}).Parse([]string{"--crash-policy=ignore"}))
}

func TestLoadFileThenFlags(t *testing.T) {
	path := writeConfig(t, `{
		"engine": "raw_socket",
		"snaplen": 1600,
		"up-only": true,
		"exclude-interface": ["lo", "virbr0"],
		"buffer-timeout": "500ms",
		"codec": "json",
		"diag-rate-limit": 10
	}`)

	var s AppSettings
	fs := newFlagSet(&s)
	require.NoError(t, Load(fs, path))
	require.NoError(t, fs.Parse([]string{"--codec=simple"}))

	assert.Equal(t, capture.EngineRawSocket, s.Engine)
	assert.Equal(t, 1600, s.Snaplen)
	assert.True(t, s.UpOnly)
	assert.Equal(t, []string{"lo", "virbr0"}, s.ExcludeInterface)
	assert.Equal(t, 500*time.Millisecond, s.BufferTimeout)
	assert.Equal(t, 10, s.DiagRateLimit)
	// the command line wins
	assert.Equal(t, "simple", s.Codec)
}

func TestLoadErrors(t *testing.T) {
	fs := newFlagSet(&AppSettings{})
	assert.Error(t, Load(fs, filepath.Join(t.TempDir(), "missing.json")))
	assert.Error(t, Load(fs, writeConfig(t, `{"engine":`)))
	assert.Error(t, Load(fs, writeConfig(t, `{"output-grpc": "grpc://127.0.0.1:35001"}`)))
	assert.Error(t, Load(fs, writeConfig(t, `{"snaplen": "big"}`)))
}

func TestConfigPathFromArgs(t *testing.T) {
	assert.Equal(t, "a.json", ConfigPathFromArgs([]string{"--up-only", "--config=a.json"}))
	assert.Equal(t, "b.json", ConfigPathFromArgs([]string{"-config", "b.json", "--codec=json"}))
	assert.Equal(t, "", ConfigPathFromArgs([]string{"--codec=json"}))
	assert.Equal(t, "", ConfigPathFromArgs([]string{"--", "--config=c.json"}))
	assert.Equal(t, "", ConfigPathFromArgs([]string{"config=d.json"}))
}

func TestValidate(t *testing.T) {
	valid := func() AppSettings {
		var s AppSettings
		require.NoError(t, newFlagSet(&s).Parse(nil))
		return s
	}

	s := valid()
	s.Codec = "protobuf"
	assert.ErrorIs(t, s.Validate(), consts.ErrUnknownCodec)

	s = valid()
	s.CrashPolicy = "ignore"
	assert.ErrorIs(t, s.Validate(), consts.ErrUnknownPolicy)

	s = valid()
	s.Snaplen = -1
	assert.Error(t, s.Validate())

	s = valid()
	s.BufferTimeout = 0
	assert.Error(t, s.Validate())

	s = valid()
	s.DiagRateLimit = -3
	assert.Error(t, s.Validate())
}
