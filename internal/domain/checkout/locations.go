package checkout

import "sort"

// stateCities is the fixed table of delivery states and their cities.
// The selected state constrains the valid city set.
var stateCities = map[string][]string{
	"Abuja":  {"Asokoro", "Garki", "Gwarinpa", "Maitama", "Wuse"},
	"Enugu":  {"Enugu North", "Enugu South", "Nsukka"},
	"Kano":   {"Fagge", "Kano Municipal", "Nassarawa"},
	"Lagos":  {"Ikeja", "Ikorodu", "Lekki", "Surulere", "Victoria Island", "Yaba"},
	"Oyo":    {"Ibadan", "Ogbomosho", "Oyo Town"},
	"Rivers": {"Eleme", "Obio-Akpor", "Port Harcourt"},
}

// States returns the deliverable states in sorted order
func States() []string {
	states := make([]string, 0, len(stateCities))
	for state := range stateCities {
		states = append(states, state)
	}
	sort.Strings(states)
	return states
}

// CitiesForState returns the valid cities for a state, nil for unknown states
func CitiesForState(state string) []string {
	cities, ok := stateCities[state]
	if !ok {
		return nil
	}
	out := make([]string, len(cities))
	copy(out, cities)
	return out
}

// IsValidCity reports whether city is deliverable within state
func IsValidCity(state, city string) bool {
	for _, c := range stateCities[state] {
		if c == city {
			return true
		}
	}
	return false
}
