// Package filter selects the interfaces that get a capture worker.
package filter

import "github.com/vearne/ifsniff/model"

type Filter interface {
	// Filter :If true, a worker is started for the interface
	Filter(ifi model.Interface) bool
}

type FilterChain struct {
	includeFilters []Filter
	excludeFilters []Filter
}

func NewFilterChain() *FilterChain {
	var chain FilterChain
	chain.includeFilters = make([]Filter, 0)
	chain.excludeFilters = make([]Filter, 0)
	return &chain
}

func (c *FilterChain) AddIncludeFilter(f Filter) {
	c.includeFilters = append(c.includeFilters, f)
}

func (c *FilterChain) AddExcludeFilters(f Filter) {
	c.excludeFilters = append(c.excludeFilters, f)
}

func (c *FilterChain) Filter(ifi model.Interface) bool {
	for _, f := range c.includeFilters {
		if !f.Filter(ifi) {
			return false
		}
	}

	for _, f := range c.excludeFilters {
		if !f.Filter(ifi) {
			return false
		}
	}
	return true
}

// Apply keeps the interfaces accepted by f, in their original order.
func Apply(f Filter, ifaces []model.Interface) []model.Interface {
	selected := make([]model.Interface, 0, len(ifaces))
	for _, ifi := range ifaces {
		if f.Filter(ifi) {
			selected = append(selected, ifi)
		}
	}
	return selected
}
