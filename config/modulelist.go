package config

import (
	"bufio"
	"bytes"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"unicode"
)

// ModuleList records which registry modules are generated.
// Modules not mentioned in the file are enabled.
type ModuleList struct {
	Enabled map[string]bool
}

func NewModuleList() *ModuleList {
	return &ModuleList{
		Enabled: make(map[string]bool),
	}
}

// IsEnabled reports whether the module with the given registry name
// should be generated.
func (ml *ModuleList) IsEnabled(name string) bool {
	enabled, ok := ml.Enabled[name]
	return !ok || enabled
}

// LoadModuleListFromFile parses a module list. Missing files yield an
// empty list.
func LoadModuleListFromFile(filename string) (*ModuleList, error) {
	f, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return NewModuleList(), nil
		}
		return nil, err
	}
	defer f.Close()

	res := NewModuleList()

	type section int
	const (
		sectionNone section = iota
		sectionEnabled
		sectionDisabled
	)

	currSection := sectionNone
	sc := bufio.NewScanner(f)
	for lineNum := 1; sc.Scan(); lineNum++ {
		makeErr := func(format string, a ...any) error {
			return fmt.Errorf("%v: line %v: %v", filename, lineNum, fmt.Errorf(format, a...))
		}

		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			switch line {
			case "[enabled]":
				currSection = sectionEnabled
			case "[disabled]":
				currSection = sectionDisabled
			default:
				return nil, makeErr("invalid section name %v", line)
			}
			continue
		}
		fields := strings.FieldsFunc(line, unicode.IsSpace)
		name := fields[0]
		switch currSection {
		case sectionNone:
			return nil, makeErr("expected module name \"%v\" to be under a section ([enabled] or [disabled])", name)
		case sectionEnabled:
			if v, ok := res.Enabled[name]; ok && !v {
				return nil, makeErr("cannot have module \"%v\" in both [enabled] and [disabled] sections", name)
			}
			res.Enabled[name] = true
		case sectionDisabled:
			if v, ok := res.Enabled[name]; ok && v {
				return nil, makeErr("cannot have module \"%v\" in both [enabled] and [disabled] sections", name)
			}
			res.Enabled[name] = false
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%v: %w", filename, err)
	}
	return res, nil
}

// SaveToFile writes the list sorted by name. Modules in
// moduleDescriptions that are not listed yet are added as enabled,
// with their description as a trailing comment.
func (ml *ModuleList) SaveToFile(filename string, moduleDescriptions map[string]string) error {
	isEnabled := maps.Clone(ml.Enabled)
	for name := range moduleDescriptions {
		if _, ok := isEnabled[name]; !ok {
			isEnabled[name] = true
		}
	}

	var enabledModules []string
	var disabledModules []string
	for name, enabled := range isEnabled {
		if enabled {
			enabledModules = append(enabledModules, name)
		} else {
			disabledModules = append(disabledModules, name)
		}
	}
	slices.Sort(enabledModules)
	slices.Sort(disabledModules)

	var res bytes.Buffer
	fmt.Fprintln(&res, "# This file lists the registry modules glgen knows about.")
	fmt.Fprintln(&res, "# Move a module under [disabled] to stop generating it.")
	fmt.Fprintln(&res, "# The list is updated and sorted on every run.")

	writeModules := func(ms []string) {
		maxCol0Len := 0
		for _, name := range ms {
			maxCol0Len = max(maxCol0Len, len(name))
		}
		for _, name := range ms {
			if desc, ok := moduleDescriptions[name]; ok && desc != "" {
				fmt.Fprintf(&res, "%v %v# %v\n", name, strings.Repeat(" ", maxCol0Len-len(name)), desc)
			} else {
				fmt.Fprintln(&res, name)
			}
		}
	}
	fmt.Fprintln(&res)
	fmt.Fprintln(&res, "[enabled]")
	writeModules(enabledModules)
	fmt.Fprintln(&res)
	fmt.Fprintln(&res, "[disabled]")
	writeModules(disabledModules)

	return os.WriteFile(filename, res.Bytes(), 0666)
}
