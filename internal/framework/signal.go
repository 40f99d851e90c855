package framework

import "sort"

// Signal summarises a file listing for local inference.
type Signal struct {
	ExtensionHistogram map[string]int
	MarkerFiles        map[string]bool
}

// ComputeSignal derives a Signal from the union of candidates and selection.
func ComputeSignal(candidates, selection []string) Signal {
	sig := Signal{
		ExtensionHistogram: map[string]int{},
		MarkerFiles:        map[string]bool{},
	}
	seen := map[string]bool{}
	for _, list := range [][]string{candidates, selection} {
		for _, p := range list {
			if seen[p] {
				continue
			}
			seen[p] = true
			if ext := Extension(p); ext != "" {
				sig.ExtensionHistogram[ext]++
			}
			for _, key := range recognise(p) {
				sig.MarkerFiles[key] = true
			}
		}
	}
	return sig
}

// markerTags returns the tags of the recognised markers, in catalog order.
func (s Signal) markerTags() []Marker {
	present := map[string]bool{}
	for key := range s.MarkerFiles {
		if m, ok := markerFor(key); ok {
			present[m.Tag] = true
		}
	}
	var out []Marker
	for _, m := range markers {
		if present[m.Tag] {
			out = append(out, m)
		}
	}
	return out
}

// majorityLanguage returns the language of the most frequent recognised
// extension. Ties go to the lexicographically smaller extension.
func (s Signal) majorityLanguage() (Language, bool) {
	exts := make([]string, 0, len(s.ExtensionHistogram))
	for ext := range s.ExtensionHistogram {
		if _, ok := languagesByExtension[ext]; ok {
			exts = append(exts, ext)
		}
	}
	if len(exts) == 0 {
		return Language{}, false
	}
	sort.Slice(exts, func(i, j int) bool {
		ci, cj := s.ExtensionHistogram[exts[i]], s.ExtensionHistogram[exts[j]]
		if ci != cj {
			return ci > cj
		}
		return exts[i] < exts[j]
	})
	return languagesByExtension[exts[0]], true
}
