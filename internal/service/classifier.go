package service

import "github.com/Too-lit247/my-guardian/internal/models"

// DefaultDepartment получает все неизвестные типы тревог
const DefaultDepartment = models.DepartmentPolice

var (
	fireAlertTypes = []string{
		"building_fire", "wildfire", "gas_leak", "explosion", "hazmat_incident", "fire_detected",
	}
	policeAlertTypes = []string{
		"robbery", "assault", "traffic_violation", "domestic_dispute", "suspicious_activity",
		"fear_detected", "panic_button",
	}
	medicalAlertTypes = []string{
		"heart_attack", "traffic_accident", "overdose", "fall_injury", "allergic_reaction",
		"high_heart_rate", "fall_detected",
	}

	// fireCompoundTypes порождают вспомогательные тревоги для скорой и полиции
	fireCompoundTypes = map[string]struct{}{
		"fire_detected":   {},
		"building_fire":   {},
		"wildfire":        {},
		"gas_leak":        {},
		"explosion":       {},
		"hazmat_incident": {},
	}
)

// DepartmentClassifier сопоставляет тип тревоги службе по фиксированной таблице
type DepartmentClassifier struct {
	table    map[string]models.Department
	fallback models.Department
}

func NewDepartmentClassifier() *DepartmentClassifier {
	table := make(map[string]models.Department, len(fireAlertTypes)+len(policeAlertTypes)+len(medicalAlertTypes))
	for _, t := range fireAlertTypes {
		table[t] = models.DepartmentFire
	}
	for _, t := range policeAlertTypes {
		table[t] = models.DepartmentPolice
	}
	for _, t := range medicalAlertTypes {
		table[t] = models.DepartmentMedical
	}
	return &DepartmentClassifier{table: table, fallback: DefaultDepartment}
}

// Classify никогда не завершается ошибкой: незнакомый тип уходит в службу по умолчанию
func (c *DepartmentClassifier) Classify(alertType string) models.Department {
	if d, ok := c.table[alertType]; ok {
		return d
	}
	return c.fallback
}

// IsFireCompound сообщает, требует ли тип тревоги веерной рассылки в другие службы
func IsFireCompound(alertType string) bool {
	_, ok := fireCompoundTypes[alertType]
	return ok
}
