package models

// Validate checks the group title and slug.
func (g *Group) Validate() error {
	return validate.Struct(g)
}
