package langs

// Pivot is the canonical intermediate language. All message content is
// normalized to the pivot before translation, so any language pair is two
// hops instead of a pairwise matrix.
const Pivot = "en"

// Choice pairs a human-readable language name with its ISO 639-1 code.
type Choice struct {
	Name string
	Code string
}

var choices = []Choice{
	{"Hindi", "hi"},
	{"Tamil", "ta"},
	{"Telugu", "te"},
	{"Kannada", "kn"},
	{"Malayalam", "ml"},
	{"Spanish", "es"},
	{"French", "fr"},
	{"German", "de"},
	{"Japanese", "ja"},
	{"English", "en"},
}

var byName = func() map[string]string {
	m := make(map[string]string, len(choices))
	for _, c := range choices {
		m[c.Name] = c.Code
	}
	return m
}()

var byCode = func() map[string]string {
	m := make(map[string]string, len(choices))
	for _, c := range choices {
		m[c.Code] = c.Name
	}
	return m
}()

// Choices returns the registry in display order.
func Choices() []Choice {
	return append([]Choice(nil), choices...)
}

// Code resolves a display name to its language code.
func Code(name string) (string, bool) {
	code, ok := byName[name]
	return code, ok
}

// Name resolves a language code to its display name.
func Name(code string) (string, bool) {
	name, ok := byCode[code]
	return name, ok
}

// Supported reports whether code is in the registry.
func Supported(code string) bool {
	_, ok := byCode[code]
	return ok
}
