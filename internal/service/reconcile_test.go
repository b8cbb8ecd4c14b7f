package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Too-lit247/my-guardian/internal/models"
	"github.com/Too-lit247/my-guardian/internal/service/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestReconciler(t *testing.T) (*Reconciler, *mocks.MockAlertRepository, *mocks.MockStationDirectory) {
	ctrl := gomock.NewController(t)
	alerts := mocks.NewMockAlertRepository(ctrl)
	directory := mocks.NewMockStationDirectory(ctrl)
	cfg := newTestConfig()
	cfg.ReconcileBatchSize = 10
	return NewReconciler(alerts, NewStationFinder(directory, nil), nil, newTestLogger(), cfg), alerts, directory
}

func unassignedAlert(department models.Department) *models.RoutedAlert {
	location := origin
	return &models.RoutedAlert{
		ID:         uuid.New(),
		Department: department,
		Status:     models.AlertStatusActive,
		Location:   &location,
	}
}

func TestReconcile_AssignsNearestStation(t *testing.T) {
	// Подготовка
	reconciler, alerts, directory := newTestReconciler(t)
	ctx := context.Background()
	assignable := unassignedAlert(models.DepartmentFire)
	outOfRange := unassignedAlert(models.DepartmentMedical)
	raced := unassignedAlert(models.DepartmentPolice)
	noLocation := unassignedAlert(models.DepartmentPolice)
	noLocation.Location = nil
	fire := stationAt("fire", models.DepartmentFire, 8)
	police := stationAt("police", models.DepartmentPolice, 2)

	// Ожидания
	alerts.EXPECT().
		ListUnassigned(ctx, nil, 10).
		Return([]*models.RoutedAlert{assignable, outOfRange, raced, noLocation}, nil)
	directory.EXPECT().ListActiveStations(gomock.Any(), models.DepartmentFire).Return([]models.Station{fire}, nil)
	directory.EXPECT().
		ListActiveStations(gomock.Any(), models.DepartmentMedical).
		Return([]models.Station{stationAt("far", models.DepartmentMedical, 300)}, nil)
	directory.EXPECT().ListActiveStations(gomock.Any(), models.DepartmentPolice).Return([]models.Station{police}, nil)
	alerts.EXPECT().AssignStation(ctx, assignable.ID, fire.ID, gomock.Any()).Return(true, nil)
	alerts.EXPECT().AssignStation(ctx, raced.ID, police.ID, gomock.Any()).Return(false, nil)

	// Действие
	report, err := reconciler.Run(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.ReconcileReport{Processed: 3, Assigned: 1, Skipped: 2, Failed: 0}, *report)
}

func TestReconcile_LookupAndAssignFailures(t *testing.T) {
	// Подготовка
	reconciler, alerts, directory := newTestReconciler(t)
	ctx := context.Background()
	first := unassignedAlert(models.DepartmentFire)
	second := unassignedAlert(models.DepartmentMedical)
	medical := stationAt("med", models.DepartmentMedical, 1)

	// Ожидания
	alerts.EXPECT().ListUnassigned(ctx, nil, 10).Return([]*models.RoutedAlert{first, second}, nil)
	directory.EXPECT().ListActiveStations(gomock.Any(), models.DepartmentFire).Return(nil, errors.New("timeout"))
	directory.EXPECT().ListActiveStations(gomock.Any(), models.DepartmentMedical).Return([]models.Station{medical}, nil)
	alerts.EXPECT().AssignStation(ctx, second.ID, medical.ID, gomock.Any()).Return(false, errors.New("update failed"))

	// Действие
	report, err := reconciler.Run(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 2, report.Failed)
	assert.Zero(t, report.Assigned)
}

func TestReconcile_ListFails(t *testing.T) {
	reconciler, alerts, _ := newTestReconciler(t)
	ctx := context.Background()

	alerts.EXPECT().ListUnassigned(ctx, nil, 10).Return(nil, errors.New("connection reset"))

	report, err := reconciler.Run(ctx)

	require.Error(t, err)
	assert.Nil(t, report)
	assert.ErrorContains(t, err, "could not list unassigned alerts")
}

func TestReconcile_AdvancesPastUnroutableBatch(t *testing.T) {
	// Подготовка
	ctrl := gomock.NewController(t)
	alerts := mocks.NewMockAlertRepository(ctrl)
	directory := mocks.NewMockStationDirectory(ctrl)
	cfg := newTestConfig()
	cfg.ReconcileBatchSize = 2
	reconciler := NewReconciler(alerts, NewStationFinder(directory, nil), nil, newTestLogger(), cfg)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	stuckFirst := unassignedAlert(models.DepartmentMedical)
	stuckFirst.CreatedAt = base
	stuckSecond := unassignedAlert(models.DepartmentMedical)
	stuckSecond.CreatedAt = base.Add(time.Minute)
	fresh := unassignedAlert(models.DepartmentFire)
	fresh.CreatedAt = base.Add(2 * time.Minute)
	far := stationAt("far", models.DepartmentMedical, 300)
	fire := stationAt("fire", models.DepartmentFire, 3)

	// Ожидания
	gomock.InOrder(
		alerts.EXPECT().ListUnassigned(ctx, nil, 2).Return([]*models.RoutedAlert{stuckFirst, stuckSecond}, nil),
		alerts.EXPECT().
			ListUnassigned(ctx, &models.AlertCursor{CreatedAt: stuckSecond.CreatedAt, ID: stuckSecond.ID}, 2).
			Return([]*models.RoutedAlert{fresh}, nil),
		alerts.EXPECT().ListUnassigned(ctx, nil, 2).Return(nil, nil),
	)
	directory.EXPECT().ListActiveStations(gomock.Any(), models.DepartmentMedical).Return([]models.Station{far}, nil).Times(2)
	directory.EXPECT().ListActiveStations(gomock.Any(), models.DepartmentFire).Return([]models.Station{fire}, nil)
	alerts.EXPECT().AssignStation(ctx, fresh.ID, fire.ID, gomock.Any()).Return(true, nil)

	// Действие
	first, err := reconciler.Run(ctx)
	require.NoError(t, err)
	second, err := reconciler.Run(ctx)
	require.NoError(t, err)
	third, err := reconciler.Run(ctx)
	require.NoError(t, err)

	// Проверки
	assert.Equal(t, models.ReconcileReport{Processed: 2, Skipped: 2}, *first)
	assert.Equal(t, models.ReconcileReport{Processed: 1, Assigned: 1}, *second)
	assert.Zero(t, third.Processed)
}

func TestReconcile_StartDisabled(t *testing.T) {
	reconciler, _, _ := newTestReconciler(t)

	// Нулевой интервал: горутина не запускается, вызовов репозитория нет
	reconciler.Start(context.Background())
}
