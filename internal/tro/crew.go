package tro

import (
	"errors"
	"fmt"

	"github.com/trokit/aerotro/internal/messages"
)

var (
	// ErrCrewMissing means the model has no "crew" entry.
	ErrCrewMissing = errors.New(`model has no "crew" entry`)
	// ErrCrewShape means the "crew" entry is not a list of strings.
	ErrCrewShape = errors.New(`model "crew" entry is not a list of strings`)
)

// AddCrewEntry appends a localized crew line such as "1 patient" or
// "3 patients" to the model's crew list. The message key is "TROView."+key
// for a count of one and "TROView."+key+"s" otherwise.
func AddCrewEntry(model *Map, msgs *messages.Catalog, key string, count int) error {
	v, ok := model.Get("crew")
	if !ok {
		return ErrCrewMissing
	}
	crew, ok := v.(*List)
	if !ok {
		return fmt.Errorf("%w: got %T", ErrCrewShape, v)
	}
	for _, item := range crew.items {
		if _, ok := item.(String); !ok {
			return fmt.Errorf("%w: item is %T", ErrCrewShape, item)
		}
	}

	msgKey := "TROView." + key
	if count != 1 {
		msgKey += "s"
	}
	crew.Append(String(msgs.Format(msgKey, count)))
	return nil
}

type crewCategory struct {
	key   string
	count int
}

func (b *Builder) addCrew() {
	c := b.unit.Crew
	b.model.Set("crew", NewList())
	b.model.Set("crewTotal", Int(c.Total()))

	categories := []crewCategory{
		{"officer", c.Officers},
		{"enlisted", c.Enlisted},
		{"gunner", c.Gunners},
		{"pilot", c.Pilots},
		{"bayPersonnel", c.BayPersonnel},
		{"passenger", c.Passengers},
		{"marine", c.Marines},
		{"baMarine", c.BattleArmorMarines},
		{"patient", c.Patients},
	}
	for _, cat := range categories {
		if cat.count <= 0 {
			continue
		}
		if err := AddCrewEntry(b.model, b.msgs, cat.key, cat.count); err != nil {
			b.logger.Error("Failed to add crew entry", "key", cat.key, "error", err)
		}
	}
}
