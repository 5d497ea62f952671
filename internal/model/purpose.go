package model

import "strings"

// purposeNames are the usage profiles offered in the purpose slot. They are
// not hardware and have no catalog.
var purposeNames = []string{
	"1080p Gaming",
	"1440p Gaming",
	"4K Gaming",
	"Programmera/Utveckla",
	"AI/Machine Learning",
	"3D Rendering",
	"Video Redigering",
	"Basic Användning",
}

// PurposeProfiles returns a fresh copy of the usage-profile list. Each
// profile has price 0 and an id derived from its name ("4k-gaming").
func PurposeProfiles() []*Component {
	out := make([]*Component, 0, len(purposeNames))
	for _, name := range purposeNames {
		out = append(out, &Component{
			ID:       purposeID(name),
			Name:     name,
			Category: CategoryPurpose,
			Attrs:    PurposeAttrs{},
		})
	}
	return out
}

func purposeID(name string) string {
	id := strings.ToLower(name)
	id = strings.NewReplacer("/", "-", " ", "-").Replace(id)
	return id
}
