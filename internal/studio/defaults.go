package studio

// defaultStudios seeds a registry file that does not exist yet.
var defaultStudios = []Studio{
	{Name: "CzechVR", Patterns: []string{`czech[\s._-]*vr`}},
	{Name: "VRBangers", Patterns: []string{`vr[\s._-]*bangers`}},
	{Name: "WankzVR", Patterns: []string{`wankz[\s._-]*vr`}},
	{Name: "BaDoinkVR", Patterns: []string{`badoink[\s._-]*vr`, `badoink`}},
	{Name: "NaughtyAmericaVR", Patterns: []string{`naughty[\s._-]*america[\s._-]*vr`, `navr`}},
	{Name: "SexBabesVR", Patterns: []string{`sex[\s._-]*babes[\s._-]*vr`}},
	{Name: "VRConk", Patterns: []string{`vr[\s._-]*conk`}},
	{Name: "MilfVR", Patterns: []string{`milf[\s._-]*vr`}},
	{Name: "VirtualRealPorn", Patterns: []string{`virtual[\s._-]*real[\s._-]*porn`}},
}

// Default returns a registry populated with the built-in studios.
func Default() *Registry {
	r, _ := NewRegistry(DefaultStudios())
	return r
}

// DefaultStudios returns a copy of the built-in studio list.
func DefaultStudios() []Studio {
	out := make([]Studio, 0, len(defaultStudios))
	for _, s := range defaultStudios {
		out = append(out, Studio{Name: s.Name, Patterns: append([]string(nil), s.Patterns...)})
	}
	return out
}
