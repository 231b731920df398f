package classify

import (
	"photo-delivery/internal/config"
	"photo-delivery/internal/selection"
)

// Category is a classification outcome. Each has exactly one folder.
type Category string

const (
	Amplify      Category = "amplify"
	Print        Category = "print"
	Social       Category = "social"
	Invitation   Category = "invitation"
	Discard      Category = "discard"
	Unclassified Category = "unclassified"
)

// Categories lists every category in report order.
var Categories = []Category{Amplify, Print, Social, Invitation, Discard, Unclassified}

// Folders maps categories to folder names under the destination root.
type Folders map[Category]string

// FoldersFromConfig builds the folder map from the [classify.folders] section.
func FoldersFromConfig(f config.Folders) Folders {
	return Folders{
		Amplify:      f.Amplify,
		Print:        f.Print,
		Social:       f.Social,
		Invitation:   f.Invitation,
		Discard:      f.Discard,
		Unclassified: f.Unclassified,
	}
}

// Targets returns the categories a photo is copied into. A photo with no
// record, or a record with no flag set, goes to Unclassified and nowhere else.
func Targets(rec selection.Record, found bool) []Category {
	if !found {
		return []Category{Unclassified}
	}

	var targets []Category
	if rec.Amplify {
		targets = append(targets, Amplify)
	}
	if rec.Print {
		targets = append(targets, Print)
	}
	if rec.Social {
		targets = append(targets, Social)
	}
	if rec.Invitation {
		targets = append(targets, Invitation)
	}
	if rec.Discard {
		targets = append(targets, Discard)
	}
	if len(targets) == 0 {
		return []Category{Unclassified}
	}
	return targets
}
