package models

// EventType is the life event a horizon is scanned for.
type EventType string

const (
	EventMarriage     EventType = "marriage"
	EventCareer       EventType = "career"
	EventInvestment   EventType = "investment"
	EventMove         EventType = "move"
	EventStudy        EventType = "study"
	EventHealth       EventType = "health"
	EventRelationship EventType = "relationship"
)

// AllEventTypes lists every supported event type.
var AllEventTypes = []EventType{
	EventMarriage, EventCareer, EventInvestment, EventMove, EventStudy, EventHealth, EventRelationship,
}

func (e EventType) Valid() bool {
	for _, v := range AllEventTypes {
		if v == e {
			return true
		}
	}
	return false
}

// ParseEventType returns the event type for s, or false when s is not one of the seven.
func ParseEventType(s string) (EventType, bool) {
	e := EventType(s)
	return e, e.Valid()
}

// Category is a life area the attribution analyzer explains.
type Category string

const (
	CategoryCareer       Category = "career"
	CategoryFinance      Category = "finance"
	CategoryRelationship Category = "relationship"
	CategoryHealth       Category = "health"
	CategoryTravel       Category = "travel"
	CategoryEducation    Category = "education"
)

// AllCategories lists the six categories in report order.
var AllCategories = []Category{
	CategoryCareer, CategoryFinance, CategoryRelationship, CategoryHealth, CategoryTravel, CategoryEducation,
}

func (c Category) Valid() bool {
	for _, v := range AllCategories {
		if v == c {
			return true
		}
	}
	return false
}

// ParseCategory returns the category for s, or false when unknown.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	return c, c.Valid()
}

var categoryProxies = map[Category]EventType{
	CategoryCareer:       EventCareer,
	CategoryFinance:      EventInvestment,
	CategoryRelationship: EventRelationship,
	CategoryHealth:       EventHealth,
	CategoryTravel:       EventMove,
	CategoryEducation:    EventStudy,
}

// ProxyEvent is the event type whose score stands in for the category when
// the caller does not supply category scores.
func (c Category) ProxyEvent() (EventType, bool) {
	e, ok := categoryProxies[c]
	return e, ok
}
