// Package types holds the shared data structures used across the
// application. Keeping them in one place prevents import cycles: storage,
// validate, and the console handlers all import types without depending on
// each other.
package types

// Group is the campus a student is enrolled at. It is a closed enumeration:
// Downtown and Burnaby are the only valid values.
type Group string

const (
	GroupDowntown Group = "Downtown"
	GroupBurnaby  Group = "Burnaby"
)

// Groups lists every group in display order. Grouped listings walk this
// slice, so Downtown records always come before Burnaby records.
var Groups = []Group{GroupDowntown, GroupBurnaby}

// Valid reports whether g is one of the enumeration members.
func (g Group) Valid() bool {
	return g == GroupDowntown || g == GroupBurnaby
}

func (g Group) String() string { return string(g) }

// Student represents a student record in our system.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  — controls how the field appears when encoded to JSON.
//
//  2. validate:"..." — rules checked by the go-playground/validator
//     package before a record is allowed into a store. A record that fails
//     any rule is rejected as a whole; stores never hold a partial record.
type Student struct {
	ID      int     `json:"id"      validate:"gt=0"`
	Name    string  `json:"name"    validate:"required,alpha"`
	Age     int     `json:"age"     validate:"gt=18"`
	Program string  `json:"program" validate:"required,alpha"`
	GPA     float64 `json:"gpa"     validate:"gte=0,lte=5"`
	Group   Group   `json:"group"   validate:"oneof=Downtown Burnaby"`
}
