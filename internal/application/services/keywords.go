package services

// KeywordEntry binds one service type to the word forms users type for it.
type KeywordEntry struct {
	ServiceType string
	Terms       []string
}

// KeywordTable is the ordered fallback used for category detection when the
// category collection is unavailable. Order matters: the first matching
// entry wins, same as iteration order over the dynamic category list.
type KeywordTable []KeywordEntry

// DefaultKeywordTable covers the common service categories so search keeps
// working when the category collection cannot be fetched.
func DefaultKeywordTable() KeywordTable {
	return KeywordTable{
		{ServiceType: "groomer", Terms: []string{"groomer", "groomers", "grooming"}},
		{ServiceType: "veterinarian", Terms: []string{"veterinarian", "veterinarians", "veterinary", "vet", "vets"}},
		{ServiceType: "dog_park", Terms: []string{"dog park", "dog parks", "bark park"}},
		{ServiceType: "trainer", Terms: []string{"trainer", "trainers", "training", "obedience"}},
		{ServiceType: "boarding", Terms: []string{"boarding", "kennel", "kennels", "daycare"}},
		{ServiceType: "sitter", Terms: []string{"sitter", "sitters", "pet sitting", "dog walker", "dog walking"}},
	}
}
