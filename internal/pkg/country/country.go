package country

import "strings"

// canonicalByCode maps ISO-2 and ISO-3 codes to the display name used by the
// remote holiday data. Extend here; every consumer shares this one table.
var canonicalByCode = map[string]string{
	"ES": "España", "ESP": "España",
	"US": "United States", "USA": "United States",
	"GB": "United Kingdom", "GBR": "United Kingdom",
	"FR": "France", "FRA": "France",
	"DE": "Germany", "DEU": "Germany",
	"IT": "Italy", "ITA": "Italy",
	"PT": "Portugal", "PRT": "Portugal",
}

// codesByName is the reverse index, built once at init.
var codesByName = func() map[string][]string {
	index := make(map[string][]string)
	for code, name := range canonicalByCode {
		index[name] = append(index[name], code)
	}
	return index
}()

// Normalize maps an ISO-2 code, an ISO-3 code or an already-canonical display
// name to the canonical display name. Unknown identifiers pass through
// unchanged so holiday matching degrades to "no match" instead of failing.
func Normalize(identifier string) string {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return trimmed
	}
	if name, ok := canonicalByCode[strings.ToUpper(trimmed)]; ok {
		return name
	}
	return trimmed
}

// Known reports whether identifier resolves to an entry of the canonical table.
func Known(identifier string) bool {
	trimmed := strings.TrimSpace(identifier)
	if _, ok := canonicalByCode[strings.ToUpper(trimmed)]; ok {
		return true
	}
	_, ok := codesByName[trimmed]
	return ok
}

// Codes returns the ISO codes registered for a canonical display name.
func Codes(name string) []string {
	return codesByName[name]
}
