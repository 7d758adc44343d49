package util

import "sort"

// StringSet is a set of interface names. It is not safe for concurrent use.
type StringSet struct {
	internal map[string]struct{}
}

func NewStringSet(items ...string) *StringSet {
	set := &StringSet{internal: make(map[string]struct{}, len(items))}
	set.AddAll(items)
	return set
}

func (set *StringSet) Add(str string) {
	set.internal[str] = struct{}{}
}

// AddIfAbsent adds str and reports whether it was not present before.
func (set *StringSet) AddIfAbsent(str string) bool {
	if set.Has(str) {
		return false
	}
	set.Add(str)
	return true
}

func (set *StringSet) AddAll(itemSlice []string) {
	for _, item := range itemSlice {
		set.internal[item] = struct{}{}
	}
}

func (set *StringSet) Has(str string) bool {
	_, ok := set.internal[str]
	return ok
}

func (set *StringSet) Remove(str string) {
	delete(set.internal, str)
}

// ToArray returns the members in sorted order.
func (set *StringSet) ToArray() []string {
	res := make([]string, 0, len(set.internal))
	for key := range set.internal {
		res = append(res, key)
	}
	sort.Strings(res)
	return res
}

func (set *StringSet) Size() int {
	return len(set.internal)
}
