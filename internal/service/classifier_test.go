package service

import (
	"testing"

	"github.com/Too-lit247/my-guardian/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestClassify_FixedExamples(t *testing.T) {
	c := NewDepartmentClassifier()

	assert.Equal(t, models.DepartmentFire, c.Classify("building_fire"))
	assert.Equal(t, models.DepartmentPolice, c.Classify("robbery"))
	assert.Equal(t, models.DepartmentMedical, c.Classify("heart_attack"))
	assert.Equal(t, models.DepartmentPolice, c.Classify("unknown_tag_xyz"))
}

func TestClassify_Vocabulary(t *testing.T) {
	c := NewDepartmentClassifier()
	cases := map[string]models.Department{
		"wildfire":            models.DepartmentFire,
		"gas_leak":            models.DepartmentFire,
		"explosion":           models.DepartmentFire,
		"hazmat_incident":     models.DepartmentFire,
		"fire_detected":       models.DepartmentFire,
		"assault":             models.DepartmentPolice,
		"traffic_violation":   models.DepartmentPolice,
		"domestic_dispute":    models.DepartmentPolice,
		"suspicious_activity": models.DepartmentPolice,
		"fear_detected":       models.DepartmentPolice,
		"panic_button":        models.DepartmentPolice,
		"traffic_accident":    models.DepartmentMedical,
		"overdose":            models.DepartmentMedical,
		"fall_injury":         models.DepartmentMedical,
		"allergic_reaction":   models.DepartmentMedical,
		"high_heart_rate":     models.DepartmentMedical,
		"fall_detected":       models.DepartmentMedical,
	}
	for alertType, want := range cases {
		assert.Equal(t, want, c.Classify(alertType), alertType)
	}
}

func TestClassify_TotalAndPure(t *testing.T) {
	c := NewDepartmentClassifier()

	for _, input := range []string{"", " ", "BUILDING_FIRE", "device_offline", "injury", "\x00"} {
		assert.NotPanics(t, func() { c.Classify(input) })
		assert.Equal(t, DefaultDepartment, c.Classify(input), "input %q", input)
		assert.Equal(t, c.Classify(input), c.Classify(input))
	}
}

func TestIsFireCompound(t *testing.T) {
	for _, alertType := range []string{"fire_detected", "building_fire", "wildfire", "gas_leak", "explosion", "hazmat_incident"} {
		assert.True(t, IsFireCompound(alertType), alertType)
	}
	// вспомогательные типы не порождают новую рассылку
	for _, alertType := range []string{"injury", "traffic_violation", "robbery", "heart_attack", ""} {
		assert.False(t, IsFireCompound(alertType), alertType)
	}
}
