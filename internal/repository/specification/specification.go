package specification

import "gorm.io/gorm"

// Specification is one composable query constraint. Repositories apply a
// list of them in order onto the base query.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
