package engine

import (
	"fmt"

	"tick/internal/models"
)

// AddTag creates a tag with a generated color and returns its id
func (e *Engine) AddTag(name string) string {
	id := e.newID()
	e.tags = append(e.tags, models.Tag{ID: id, Name: name, Color: autoColor(id)})
	e.persist()
	return id
}

// UpdateTag replaces the stored tag with the same id
func (e *Engine) UpdateTag(tag models.Tag) {
	for i := range e.tags {
		if e.tags[i].ID == tag.ID {
			e.tags[i] = tag
			e.persist()
			return
		}
	}
}

// DeleteTag removes a tag. Task references to the deleted id are left in
// place; a dangling tag id is valid and treated as absent on lookup.
func (e *Engine) DeleteTag(id string) {
	kept := e.tags[:0]
	for _, t := range e.tags {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	e.tags = kept

	if e.view.TagID == id {
		e.view.TagID = ""
	}
	e.persist()
}

// TagName resolves a tag id to its name, or "" for a dangling reference
func (e *Engine) TagName(id string) string {
	for _, t := range e.tags {
		if t.ID == id {
			return t.Name
		}
	}
	return ""
}

// autoColor derives a stable, well-distributed HSL color from an id by
// spreading hues with the golden ratio. The generated value is stored on
// the entity so exports stay self-contained.
func autoColor(id string) string {
	var hash int32
	for _, c := range id {
		hash = c + ((hash << 5) - hash)
	}
	seed := hash
	if seed < 0 {
		seed = -seed
	}

	frac := float64(seed) * 0.618033988749895
	frac -= float64(int64(frac))
	hue := int(360 * frac)

	return fmt.Sprintf("hsl(%d, 60%%, 45%%)", hue)
}
