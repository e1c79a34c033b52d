package types

import "sort"

// EnvVar is a single variable assignment to inject
type EnvVar struct {
	Name  string
	Value string
}

// InjectionSpec is an ordered mapping of variable names to values.
// Iteration order is insertion order; setting an existing name replaces
// its value in place. The zero value is an empty spec ready to use.
type InjectionSpec struct {
	vars  []EnvVar
	index map[string]int
}

// NewInjectionSpec creates a spec holding vars in the given order
func NewInjectionSpec(vars ...EnvVar) *InjectionSpec {
	s := &InjectionSpec{}
	for _, v := range vars {
		s.Set(v.Name, v.Value)
	}
	return s
}

// InjectionSpecFromMap builds a spec from an unordered map, sorting names
// so the rendered output is deterministic.
func InjectionSpecFromMap(m map[string]string) *InjectionSpec {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	s := &InjectionSpec{}
	for _, name := range names {
		s.Set(name, m[name])
	}
	return s
}

// Set assigns value to name, appending name if it is new
func (s *InjectionSpec) Set(name, value string) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[name]; ok {
		s.vars[i].Value = value
		return
	}
	s.index[name] = len(s.vars)
	s.vars = append(s.vars, EnvVar{Name: name, Value: value})
}

// Get returns the value for name
func (s *InjectionSpec) Get(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	i, ok := s.index[name]
	if !ok {
		return "", false
	}
	return s.vars[i].Value, true
}

// Len returns the number of variables
func (s *InjectionSpec) Len() int {
	if s == nil {
		return 0
	}
	return len(s.vars)
}

// Vars returns a copy of the variables in insertion order
func (s *InjectionSpec) Vars() []EnvVar {
	if s == nil {
		return nil
	}
	out := make([]EnvVar, len(s.vars))
	copy(out, s.vars)
	return out
}

// Names returns the variable names in insertion order
func (s *InjectionSpec) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.vars))
	for i, v := range s.vars {
		names[i] = v.Name
	}
	return names
}
