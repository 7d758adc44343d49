package filter

import (
	"github.com/vearne/ifsniff/model"
	"github.com/vearne/ifsniff/util"
)

type NameExcludeFilter struct {
	exclude *util.StringSet
}

func NewNameExcludeFilter(names ...string) *NameExcludeFilter {
	var f NameExcludeFilter
	f.exclude = util.NewStringSet(names...)
	return &f
}

func (f *NameExcludeFilter) Filter(ifi model.Interface) bool {
	return !f.exclude.Has(ifi.Name)
}
