package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Too-lit247/my-guardian/internal/geo"
	"github.com/Too-lit247/my-guardian/internal/models"
	"github.com/Too-lit247/my-guardian/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestFinder(t *testing.T) (*StationFinder, *mocks.MockStationDirectory) {
	ctrl := gomock.NewController(t)
	directory := mocks.NewMockStationDirectory(ctrl)
	return NewStationFinder(directory, nil), directory
}

func TestFindNearest_PicksClosest(t *testing.T) {
	// Подготовка
	finder, directory := newTestFinder(t)
	ctx := context.Background()
	far := stationAt("far", models.DepartmentFire, 50)
	near := stationAt("near", models.DepartmentFire, 2)
	mid := stationAt("mid", models.DepartmentFire, 10)

	// Ожидания
	directory.EXPECT().
		ListActiveStations(ctx, models.DepartmentFire).
		Return([]models.Station{far, near, mid}, nil).
		Times(1)

	// Действие
	match, err := finder.FindNearest(ctx, origin, models.DepartmentFire, 100)

	// Проверки
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, near.ID, match.Station.ID)
	assert.InDelta(t, 2.0, match.DistanceKm, 1e-6)
}

func TestFindNearest_BeyondCap(t *testing.T) {
	// Подготовка
	finder, directory := newTestFinder(t)
	ctx := context.Background()
	stations := []models.Station{
		stationAt("a", models.DepartmentFire, 2),
		stationAt("b", models.DepartmentFire, 10),
		stationAt("c", models.DepartmentFire, 50),
	}

	// Ожидания
	directory.EXPECT().ListActiveStations(ctx, models.DepartmentFire).Return(stations, nil)

	// Действие
	match, err := finder.FindNearest(ctx, origin, models.DepartmentFire, 1.0)

	// Проверки
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestFindNearest_CapIsInclusive(t *testing.T) {
	// Подготовка
	finder, directory := newTestFinder(t)
	ctx := context.Background()
	station := stationAt("edge", models.DepartmentMedical, 10)
	exact := geo.DistanceKm(origin, *station.Location)

	// Ожидания
	directory.EXPECT().ListActiveStations(ctx, models.DepartmentMedical).Return([]models.Station{station}, nil)

	// Действие
	match, err := finder.FindNearest(ctx, origin, models.DepartmentMedical, exact)

	// Проверки
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, station.ID, match.Station.ID)
}

func TestFindNearest_TieKeepsFirstListed(t *testing.T) {
	// Подготовка
	finder, directory := newTestFinder(t)
	ctx := context.Background()
	first := stationAt("first", models.DepartmentPolice, 5)
	second := stationAt("second", models.DepartmentPolice, 5)

	// Ожидания
	directory.EXPECT().ListActiveStations(ctx, models.DepartmentPolice).Return([]models.Station{first, second}, nil)

	// Действие
	match, err := finder.FindNearest(ctx, origin, models.DepartmentPolice, 100)

	// Проверки
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, first.ID, match.Station.ID)
}

func TestFindNearest_SkipsIneligibleStations(t *testing.T) {
	// Подготовка
	finder, directory := newTestFinder(t)
	ctx := context.Background()
	inactive := stationAt("inactive", models.DepartmentFire, 1)
	inactive.Active = false
	noLocation := stationAt("no-location", models.DepartmentFire, 0)
	noLocation.Location = nil
	otherDepartment := stationAt("police", models.DepartmentPolice, 1)
	eligible := stationAt("eligible", models.DepartmentFire, 30)

	// Ожидания
	directory.EXPECT().
		ListActiveStations(ctx, models.DepartmentFire).
		Return([]models.Station{inactive, noLocation, otherDepartment, eligible}, nil)

	// Действие
	match, err := finder.FindNearest(ctx, origin, models.DepartmentFire, 100)

	// Проверки
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, eligible.ID, match.Station.ID)
}

func TestFindNearest_EmptyDirectory(t *testing.T) {
	// Подготовка
	finder, directory := newTestFinder(t)
	ctx := context.Background()

	// Ожидания
	directory.EXPECT().ListActiveStations(ctx, models.DepartmentFire).Return(nil, nil)

	// Действие
	match, err := finder.FindNearest(ctx, origin, models.DepartmentFire, 100)

	// Проверки
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestFindNearest_DefaultCap(t *testing.T) {
	// Подготовка
	finder, directory := newTestFinder(t)
	ctx := context.Background()
	station := stationAt("ninety", models.DepartmentFire, 90)
	tooFar := stationAt("far", models.DepartmentMedical, 110)

	// Ожидания
	directory.EXPECT().ListActiveStations(ctx, models.DepartmentFire).Return([]models.Station{station}, nil)
	directory.EXPECT().ListActiveStations(ctx, models.DepartmentMedical).Return([]models.Station{tooFar}, nil)

	// Действие
	match, err := finder.FindNearest(ctx, origin, models.DepartmentFire, 0)
	miss, missErr := finder.FindNearest(ctx, origin, models.DepartmentMedical, -1)

	// Проверки
	require.NoError(t, err)
	require.NotNil(t, match)
	require.NoError(t, missErr)
	assert.Nil(t, miss)
}

func TestFindNearest_DirectoryError(t *testing.T) {
	// Подготовка
	finder, directory := newTestFinder(t)
	ctx := context.Background()
	dbErr := errors.New("connection refused")

	// Ожидания
	directory.EXPECT().ListActiveStations(ctx, models.DepartmentFire).Return(nil, dbErr)

	// Действие
	match, err := finder.FindNearest(ctx, origin, models.DepartmentFire, 100)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, match)
	assert.ErrorIs(t, err, dbErr)
	assert.ErrorContains(t, err, "could not list fire stations")
}

func TestFindWithinRadius_SortedAndFiltered(t *testing.T) {
	// Подготовка
	finder, directory := newTestFinder(t)
	ctx := context.Background()
	s30 := stationAt("s30", models.DepartmentFire, 30)
	s5 := stationAt("s5", models.DepartmentFire, 5)
	s60 := stationAt("s60", models.DepartmentFire, 60)
	s12 := stationAt("s12", models.DepartmentFire, 12)
	inactive := stationAt("inactive", models.DepartmentFire, 1)
	inactive.Active = false
	noLocation := stationAt("no-location", models.DepartmentFire, 0)
	noLocation.Location = nil

	// Ожидания
	directory.EXPECT().
		ListActiveStations(ctx, models.DepartmentFire).
		Return([]models.Station{s30, inactive, s5, s60, noLocation, s12}, nil)

	// Действие
	matches, err := finder.FindWithinRadius(ctx, origin, models.DepartmentFire, 0)

	// Проверки
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, s5.ID, matches[0].Station.ID)
	assert.Equal(t, s12.ID, matches[1].Station.ID)
	assert.Equal(t, s30.ID, matches[2].Station.ID)
	for i := 1; i < len(matches); i++ {
		assert.Less(t, matches[i-1].DistanceKm, matches[i].DistanceKm)
	}
}

func TestFindWithinRadius_Empty(t *testing.T) {
	// Подготовка
	finder, directory := newTestFinder(t)
	ctx := context.Background()

	// Ожидания
	directory.EXPECT().
		ListActiveStations(ctx, models.DepartmentPolice).
		Return([]models.Station{stationAt("far", models.DepartmentPolice, 20)}, nil)

	// Действие
	matches, err := finder.FindWithinRadius(ctx, origin, models.DepartmentPolice, 10)

	// Проверки
	require.NoError(t, err)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestFindWithinRadius_RecomputedEachCall(t *testing.T) {
	// Подготовка
	finder, directory := newTestFinder(t)
	ctx := context.Background()
	first := stationAt("first", models.DepartmentMedical, 3)
	second := stationAt("second", models.DepartmentMedical, 4)

	// Ожидания
	gomock.InOrder(
		directory.EXPECT().ListActiveStations(ctx, models.DepartmentMedical).Return([]models.Station{first}, nil),
		directory.EXPECT().ListActiveStations(ctx, models.DepartmentMedical).Return([]models.Station{first, second}, nil),
	)

	// Действие
	before, err1 := finder.FindWithinRadius(ctx, origin, models.DepartmentMedical, 50)
	after, err2 := finder.FindWithinRadius(ctx, origin, models.DepartmentMedical, 50)

	// Проверки
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Len(t, before, 1)
	assert.Len(t, after, 2)
}
