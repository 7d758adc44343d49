package plugin

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/natefinch/lumberjack.v2"
)

func IsValidDir(dirPath string) error {
	info, err := os.Stat(dirPath)
	if err != nil {
		return errors.Wrap(err, "invalid directory")
	}
	if !info.IsDir() {
		return errors.Errorf("%v is not directory", dirPath)
	}
	return nil
}

type DiagFileConfig struct {
	// MaxSize is the maximum size in megabytes of the file before it gets rotated.
	MaxSize int `json:"maxSize"`
	// MaxBackups is the maximum number of old files to retain.
	MaxBackups int `json:"maxBackups"`
	// MaxAge is the maximum number of days to retain old files based on the
	// timestamp encoded in their filename.
	MaxAge int `json:"maxAge"`
}

// NewDiagFile returns a rotating writer for diagnostic lines. The parent
// directory of path must exist.
func NewDiagFile(path string, cf *DiagFileConfig) (*lumberjack.Logger, error) {
	if err := IsValidDir(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cf.MaxSize, // megabytes
		MaxBackups: cf.MaxBackups,
		MaxAge:     cf.MaxAge, //days
		Compress:   true,
	}, nil
}
