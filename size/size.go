// Package size wraps goreplay's human readable byte sizes ("8mb", "0x10kb")
// so the same value works as a flag and in a JSON settings file.
package size

import (
	"encoding/json"
	"math"
	"strings"

	gsize "github.com/buger/goreplay/size"
	"github.com/pkg/errors"
)

// Size is a number of bytes.
type Size gsize.Size

// Set parses s and stores the result. An empty string leaves the value untouched.
func (siz *Size) Set(s string) error {
	if s == "" {
		return nil
	}
	var v gsize.Size
	if err := v.Set(s); err != nil {
		return errors.Wrapf(err, "invalid size %q", s)
	}
	if err := checkOverflow(s); err != nil {
		return err
	}
	*siz = Size(v)
	return nil
}

func (siz *Size) String() string {
	return (*gsize.Size)(siz).String()
}

// UnmarshalJSON accepts either a plain number or a size string.
func (siz *Size) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*siz = Size(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Errorf("size must be a number or a string: %s", data)
	}
	return siz.Set(s)
}

// checkOverflow rejects sizes whose number times unit does not fit an int64.
func checkOverflow(s string) error {
	if len(s) < 2 {
		return nil
	}
	var shift uint
	switch strings.ToLower(s[len(s)-2:]) {
	case "kb":
		shift = 10
	case "mb":
		shift = 20
	case "gb":
		shift = 30
	case "tb":
		shift = 40
	default:
		return nil
	}
	var n gsize.Size
	if err := n.Set(s[:len(s)-2]); err != nil {
		return errors.Wrapf(err, "invalid size %q", s)
	}
	if int64(n) > math.MaxInt64>>shift {
		return errors.Errorf("size %q overflows int64", s)
	}
	return nil
}
