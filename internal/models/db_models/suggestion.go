package db_models

type SuggestionBundle struct {
	Activities []string `json:"activities"`
	Movies     []string `json:"movies"`
	Songs      []string `json:"songs"`
	Food       []string `json:"food"`
}

// IsComplete reports whether every category holds at least one item.
func (b SuggestionBundle) IsComplete() bool {
	return len(b.Activities) > 0 && len(b.Movies) > 0 && len(b.Songs) > 0 && len(b.Food) > 0
}

// Normalized replaces nil lists with empty ones so the bundle always encodes as arrays.
func (b SuggestionBundle) Normalized() SuggestionBundle {
	return SuggestionBundle{
		Activities: nonNil(b.Activities),
		Movies:     nonNil(b.Movies),
		Songs:      nonNil(b.Songs),
		Food:       nonNil(b.Food),
	}
}

func EmptySuggestionBundle() SuggestionBundle {
	return SuggestionBundle{}.Normalized()
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
