package task

// Category groups tasks by area of life.
type Category string

// Known categories. Unrecognized values resolve to CategoryOther.
const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryHealth   Category = "health"
	CategoryFinance  Category = "finance"
	CategoryHome     Category = "home"
	CategoryStudy    Category = "study"
	CategoryShopping Category = "shopping"
	CategoryTravel   Category = "travel"
	CategoryOther    Category = "other"
)

// Priority is the urgency of a task.
type Priority string

// Known priorities. Unrecognized values resolve to PriorityMedium.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Status is the lifecycle state of a task, independent of the Done flag.
type Status string

// Known statuses. Unrecognized values resolve to StatusPending.
const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var categoryLabels = map[Category]string{
	CategoryWork:     "Work",
	CategoryPersonal: "Personal",
	CategoryHealth:   "Health",
	CategoryFinance:  "Finance",
	CategoryHome:     "Home",
	CategoryStudy:    "Study",
	CategoryShopping: "Shopping",
	CategoryTravel:   "Travel",
	CategoryOther:    "Other",
}

var priorityRanks = map[Priority]int{
	PriorityLow:    1,
	PriorityMedium: 2,
	PriorityHigh:   3,
	PriorityUrgent: 4,
}

var statusLabels = map[Status]string{
	StatusPending:   "Pending",
	StatusCompleted: "Completed",
	StatusCancelled: "Cancelled",
}

// ResolveCategory maps an identifier to a known category.
// Unknown or empty identifiers fall back to CategoryOther, so stored data
// always carries an enumerated value even when legacy records are read back.
func ResolveCategory(id string) Category {
	if _, ok := categoryLabels[Category(id)]; ok {
		return Category(id)
	}
	return CategoryOther
}

// ResolvePriority maps an identifier to a known priority, defaulting to
// PriorityMedium.
func ResolvePriority(id string) Priority {
	if _, ok := priorityRanks[Priority(id)]; ok {
		return Priority(id)
	}
	return PriorityMedium
}

// ResolveStatus maps an identifier to a known status, defaulting to
// StatusPending.
func ResolveStatus(id string) Status {
	if _, ok := statusLabels[Status(id)]; ok {
		return Status(id)
	}
	return StatusPending
}

// Label returns the display label for the category.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return categoryLabels[CategoryOther]
}

// Label returns the display label for the status.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return statusLabels[StatusPending]
}

// Rank returns the numeric rank of the priority (urgent=4 .. low=1).
// Unknown priorities rank as medium.
func (p Priority) Rank() int {
	if r, ok := priorityRanks[p]; ok {
		return r
	}
	return priorityRanks[PriorityMedium]
}

// Categories returns all known categories in a stable display order.
func Categories() []Category {
	return []Category{
		CategoryWork, CategoryPersonal, CategoryHealth, CategoryFinance,
		CategoryHome, CategoryStudy, CategoryShopping, CategoryTravel,
		CategoryOther,
	}
}

// Priorities returns all known priorities from lowest to highest.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

// Statuses returns all known statuses.
func Statuses() []Status {
	return []Status{StatusPending, StatusCompleted, StatusCancelled}
}
