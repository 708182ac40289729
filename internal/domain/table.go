package domain

// TableSection represents the section of the dining room a table belongs to
type TableSection string

const (
	SectionIndoor  TableSection = "indoor"
	SectionWindow  TableSection = "window"
	SectionBar     TableSection = "bar"
	SectionOutdoor TableSection = "outdoor"
	SectionPrivate TableSection = "private"
)

// Table represents a physical table in the venue.
// Inventory is immutable during a booking transaction: capacity and
// section never change while reservations are being committed.
type Table struct {
	ID       int64
	Number   int
	Capacity int
	Section  TableSection
}

// CustomerSections sections a customer-origin reservation may occupy.
// Outdoor and private seating is assigned by staff only.
var CustomerSections = []TableSection{
	SectionIndoor,
	SectionWindow,
	SectionBar,
}

// AllSections every section of the venue
var AllSections = []TableSection{
	SectionIndoor,
	SectionWindow,
	SectionBar,
	SectionOutdoor,
	SectionPrivate,
}

// IsValid returns true if the section is one of the known sections
func (s TableSection) IsValid() bool {
	for _, known := range AllSections {
		if s == known {
			return true
		}
	}
	return false
}

// CustomerBookable returns true if customer-origin reservations may be
// assigned to this section
func (s TableSection) CustomerBookable() bool {
	for _, allowed := range CustomerSections {
		if s == allowed {
			return true
		}
	}
	return false
}

// SectionIn returns true if the table's section is in the allowed set
func (t Table) SectionIn(allowed []TableSection) bool {
	for _, s := range allowed {
		if t.Section == s {
			return true
		}
	}
	return false
}

// TotalCapacity returns the combined seat count of the given tables
func TotalCapacity(tables []Table) int {
	total := 0
	for _, t := range tables {
		total += t.Capacity
	}
	return total
}
