package filter

import (
	"regexp"

	"github.com/pkg/errors"
	"github.com/vearne/ifsniff/model"
)

type NameMatchIncludeFilter struct {
	r *regexp.Regexp
}

func NewNameMatchIncludeFilter(expr string) (*NameMatchIncludeFilter, error) {
	var f NameMatchIncludeFilter
	var err error
	f.r, err = regexp.Compile(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "interface match %q", expr)
	}
	return &f, nil
}

func (f *NameMatchIncludeFilter) Filter(ifi model.Interface) bool {
	return f.r.MatchString(ifi.Name)
}

// UpIncludeFilter passes interfaces that are administratively up.
type UpIncludeFilter struct{}

func (UpIncludeFilter) Filter(ifi model.Interface) bool {
	return ifi.IsUp()
}
