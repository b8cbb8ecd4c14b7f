package models

// Department - служба, отвечающая на вызов
type Department string

const (
	DepartmentFire    Department = "fire"
	DepartmentPolice  Department = "police"
	DepartmentMedical Department = "medical"
)

// Departments возвращает все службы в фиксированном порядке
func Departments() []Department {
	return []Department{DepartmentFire, DepartmentPolice, DepartmentMedical}
}

func (d Department) Valid() bool {
	switch d {
	case DepartmentFire, DepartmentPolice, DepartmentMedical:
		return true
	}
	return false
}

func (d Department) String() string { return string(d) }

// Severity - уровень серьезности инцидента или триггера
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Priority - приоритет тревоги. Critical на этом уровне схлопывается в high.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// PriorityFor переводит серьезность в приоритет тревоги
func PriorityFor(s Severity) (Priority, bool) {
	switch s {
	case SeverityCritical, SeverityHigh:
		return PriorityHigh, true
	case SeverityMedium:
		return PriorityMedium, true
	case SeverityLow:
		return PriorityLow, true
	}
	return "", false
}
