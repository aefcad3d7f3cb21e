package db_models

// MoodTags is the fixed vocabulary users pick from when posting.
var MoodTags = []string{
	"happy",
	"calm",
	"grateful",
	"excited",
	"hopeful",
	"content",
	"tired",
	"sad",
	"lonely",
	"anxious",
	"stressed",
	"angry",
}

func IsMoodTag(tag string) bool {
	for _, t := range MoodTags {
		if t == tag {
			return true
		}
	}
	return false
}
