// File path: internal/countries/countries.go
package countries

import "strings"

// canonicalNames is the allow-list of country names the service will store.
// Provider responses and caller-supplied locations must normalize onto one
// of these names or be rejected.
var canonicalNames = []string{
	"Afghanistan", "Albania", "Algeria", "Argentina", "Armenia", "Australia",
	"Austria", "Azerbaijan", "Bangladesh", "Belarus", "Belgium", "Bolivia",
	"Bosnia and Herzegovina", "Brazil", "Bulgaria", "Cambodia", "Cameroon",
	"Canada", "Chile", "China", "Colombia", "Costa Rica", "Croatia", "Cuba",
	"Cyprus", "Czechia", "Denmark", "Dominican Republic", "Ecuador", "Egypt",
	"El Salvador", "Estonia", "Ethiopia", "Finland", "France", "Georgia",
	"Germany", "Ghana", "Greece", "Guatemala", "Honduras", "Hungary",
	"Iceland", "India", "Indonesia", "Iran", "Iraq", "Ireland", "Israel",
	"Italy", "Jamaica", "Japan", "Jordan", "Kazakhstan", "Kenya", "Kuwait",
	"Latvia", "Lebanon", "Lithuania", "Luxembourg", "Malaysia", "Mexico",
	"Moldova", "Mongolia", "Morocco", "Myanmar", "Nepal", "Netherlands",
	"New Zealand", "Nicaragua", "Nigeria", "North Macedonia", "Norway",
	"Pakistan", "Panama", "Paraguay", "Peru", "Philippines", "Poland",
	"Portugal", "Qatar", "Romania", "Russia", "Saudi Arabia", "Senegal",
	"Serbia", "Singapore", "Slovakia", "Slovenia", "South Africa",
	"South Korea", "Spain", "Sri Lanka", "Sweden", "Switzerland", "Syria",
	"Taiwan", "Tanzania", "Thailand", "Tunisia", "Turkey", "Uganda",
	"Ukraine", "United Arab Emirates", "United Kingdom", "United States",
	"Uruguay", "Uzbekistan", "Venezuela", "Vietnam", "Yemen", "Zambia",
	"Zimbabwe",
}

// aliases maps common alternate spellings onto canonical names. Keys are
// stored in folded form (lowercase, punctuation stripped).
var aliases = map[string]string{
	"usa":                      "United States",
	"us":                       "United States",
	"united states of america": "United States",
	"america":                  "United States",
	"uk":                       "United Kingdom",
	"great britain":            "United Kingdom",
	"britain":                  "United Kingdom",
	"england":                  "United Kingdom",
	"uae":                      "United Arab Emirates",
	"emirates":                 "United Arab Emirates",
	"czech republic":           "Czechia",
	"republic of korea":        "South Korea",
	"korea":                    "South Korea",
	"republic of ireland":      "Ireland",
	"holland":                  "Netherlands",
	"the netherlands":          "Netherlands",
	"russian federation":       "Russia",
	"turkiye":                  "Turkey",
	"burma":                    "Myanmar",
	"viet nam":                 "Vietnam",
	"macedonia":                "North Macedonia",
}

var index map[string]string

func init() {
	index = make(map[string]string, len(canonicalNames)+len(aliases))
	for _, name := range canonicalNames {
		index[fold(name)] = name
	}
	for alias, name := range aliases {
		index[alias] = name
	}
}

// Normalize maps a free-form location string onto the canonical allow-list.
// The second return is false when the value is blank or not recognized.
func Normalize(raw string) (string, bool) {
	folded := fold(raw)
	if folded == "" {
		return "", false
	}
	name, ok := index[folded]
	return name, ok
}

func fold(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	value = strings.ReplaceAll(value, ".", "")
	return strings.Join(strings.Fields(value), " ")
}
