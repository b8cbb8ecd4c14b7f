package repository

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Too-lit247/my-guardian/internal/models"
	"github.com/Too-lit247/my-guardian/internal/service/mocks"
	redisclient "github.com/Too-lit247/my-guardian/pkg/redis"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// unreachableRedis возвращает клиент, все команды которого сразу завершаются ошибкой
func unreachableRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func newCacheTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return logger
}

func TestStationCacheKey(t *testing.T) {
	assert.Equal(t, "stations:active:fire", stationCacheKey(models.DepartmentFire))
	assert.Equal(t, "stations:active:medical", stationCacheKey(models.DepartmentMedical))
}

func TestCachedStationRepository_FallsBackWhenRedisDown(t *testing.T) {
	// Подготовка
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockStationRepository(ctrl)
	repo := NewCachedStationRepository(inner, unreachableRedis(t), time.Minute, newCacheTestLogger())
	stations := []models.Station{{ID: uuid.New(), Code: "FIRE-1", Department: models.DepartmentFire, Active: true}}

	// Ожидания
	inner.EXPECT().ListActiveStations(gomock.Any(), models.DepartmentFire).Return(stations, nil).Times(1)

	// Действие
	got, err := repo.ListActiveStations(context.Background(), models.DepartmentFire)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, stations, got)
}

func TestCachedStationRepository_PropagatesStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockStationRepository(ctrl)
	repo := NewCachedStationRepository(inner, unreachableRedis(t), time.Minute, newCacheTestLogger())
	storeErr := errors.New("db down")

	inner.EXPECT().ListActiveStations(gomock.Any(), models.DepartmentPolice).Return(nil, storeErr).Times(1)

	got, err := repo.ListActiveStations(context.Background(), models.DepartmentPolice)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, storeErr)
}

func TestCachedStationRepository_UpsertIgnoresInvalidationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockStationRepository(ctrl)
	repo := NewCachedStationRepository(inner, unreachableRedis(t), time.Minute, newCacheTestLogger())
	station := &models.Station{Code: "MED-1", Department: models.DepartmentMedical}

	inner.EXPECT().Upsert(gomock.Any(), station).Return(nil).Times(1)

	assert.NoError(t, repo.Upsert(context.Background(), station))
}

func TestCachedStationRepository_GetByIDDelegates(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockStationRepository(ctrl)
	repo := NewCachedStationRepository(inner, unreachableRedis(t), time.Minute, newCacheTestLogger())
	station := &models.Station{ID: uuid.New()}

	inner.EXPECT().GetByID(gomock.Any(), station.ID).Return(station, nil).Times(1)

	got, err := repo.GetByID(context.Background(), station.ID)
	require.NoError(t, err)
	assert.Same(t, station, got)
}

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func cachedStations() []models.Station {
	created := time.Date(2026, 2, 10, 8, 30, 0, 0, time.UTC)
	return []models.Station{
		{
			ID:         uuid.New(),
			Name:       "Central Fire Station",
			Code:       "FIRE-1",
			Department: models.DepartmentFire,
			Region:     "Central",
			Location:   &models.GeoPoint{Latitude: -13.9626, Longitude: 33.7741},
			Active:     true,
			CreatedAt:  created,
			UpdatedAt:  created,
		},
		{
			// без координат: в кэше location опускается и должен вернуться как nil
			ID:         uuid.New(),
			Name:       "Depot",
			Code:       "FIRE-2",
			Department: models.DepartmentFire,
			Active:     true,
			CreatedAt:  created,
			UpdatedAt:  created,
		},
	}
}

func TestCachedStationRepository_ServesSecondReadFromCache(t *testing.T) {
	// Подготовка
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockStationRepository(ctrl)
	mr, client := newMiniredisClient(t)
	repo := NewCachedStationRepository(inner, client, time.Minute, newCacheTestLogger())
	stations := cachedStations()

	// Ожидания: база читается только один раз
	inner.EXPECT().ListActiveStations(gomock.Any(), models.DepartmentFire).Return(stations, nil).Times(1)

	// Действие
	first, err := repo.ListActiveStations(context.Background(), models.DepartmentFire)
	require.NoError(t, err)
	second, err := repo.ListActiveStations(context.Background(), models.DepartmentFire)
	require.NoError(t, err)

	// Проверки
	assert.Equal(t, stations, first)
	assert.Equal(t, stations, second)
	assert.Nil(t, second[1].Location)
	assert.True(t, mr.Exists(stationCacheKey(models.DepartmentFire)))
	assert.Equal(t, time.Minute, mr.TTL(stationCacheKey(models.DepartmentFire)))
}

func TestCachedStationRepository_ExpiredEntryReadsStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockStationRepository(ctrl)
	mr, client := newMiniredisClient(t)
	repo := NewCachedStationRepository(inner, client, 30*time.Second, newCacheTestLogger())
	stations := cachedStations()

	inner.EXPECT().ListActiveStations(gomock.Any(), models.DepartmentFire).Return(stations, nil).Times(2)

	_, err := repo.ListActiveStations(context.Background(), models.DepartmentFire)
	require.NoError(t, err)
	mr.FastForward(31 * time.Second)
	got, err := repo.ListActiveStations(context.Background(), models.DepartmentFire)

	require.NoError(t, err)
	assert.Equal(t, stations, got)
}

func TestCachedStationRepository_CorruptEntryReadsStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockStationRepository(ctrl)
	mr, client := newMiniredisClient(t)
	repo := NewCachedStationRepository(inner, client, time.Minute, newCacheTestLogger())
	stations := cachedStations()
	require.NoError(t, mr.Set(stationCacheKey(models.DepartmentFire), "{not json"))

	inner.EXPECT().ListActiveStations(gomock.Any(), models.DepartmentFire).Return(stations, nil).Times(1)

	got, err := repo.ListActiveStations(context.Background(), models.DepartmentFire)

	require.NoError(t, err)
	assert.Equal(t, stations, got)
}

func TestCachedStationRepository_UpsertInvalidatesEveryDepartment(t *testing.T) {
	// Подготовка
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockStationRepository(ctrl)
	mr, client := newMiniredisClient(t)
	repo := NewCachedStationRepository(inner, client, time.Minute, newCacheTestLogger())
	for _, department := range models.Departments() {
		require.NoError(t, mr.Set(stationCacheKey(department), "[]"))
	}
	// станция переходит из fire в medical: список fire тоже устарел
	station := &models.Station{Code: "FIRE-1", Department: models.DepartmentMedical}

	// Ожидания
	inner.EXPECT().Upsert(gomock.Any(), station).Return(nil).Times(1)

	// Действие
	err := repo.Upsert(context.Background(), station)

	// Проверки
	require.NoError(t, err)
	for _, department := range models.Departments() {
		assert.False(t, mr.Exists(stationCacheKey(department)), department)
	}
}

func TestCachedStationRepository_UpsertStoreErrorKeepsCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockStationRepository(ctrl)
	mr, client := newMiniredisClient(t)
	repo := NewCachedStationRepository(inner, client, time.Minute, newCacheTestLogger())
	require.NoError(t, mr.Set(stationCacheKey(models.DepartmentPolice), "[]"))
	station := &models.Station{Code: "POL-1", Department: models.DepartmentPolice}

	inner.EXPECT().Upsert(gomock.Any(), station).Return(errors.New("db down"))

	assert.Error(t, repo.Upsert(context.Background(), station))
	assert.True(t, mr.Exists(stationCacheKey(models.DepartmentPolice)))
}

// startStallingRedis поднимает сервер, который проходит рукопожатие и PING, но не отвечает на GET
func startStallingRedis(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go serveStalling(conn)
		}
	}()
	return ln.Addr().String()
}

func serveStalling(conn net.Conn) {
	defer conn.Close()
	reader := bufio.NewReader(conn)
	for {
		args, err := readRESPCommand(reader)
		if err != nil {
			return
		}
		switch strings.ToUpper(args[0]) {
		case "PING":
			_, err = io.WriteString(conn, "+PONG\r\n")
		case "GET":
			// зависаем: ответа не будет
			continue
		default:
			_, err = fmt.Fprintf(conn, "-ERR unknown command '%s'\r\n", args[0])
		}
		if err != nil {
			return
		}
	}
}

func readRESPCommand(r *bufio.Reader) ([]string, error) {
	header, err := r.ReadString('\n')
	if err != nil {
		return nil, err
	}
	header = strings.TrimSpace(header)
	if !strings.HasPrefix(header, "*") {
		return nil, fmt.Errorf("unexpected header %q", header)
	}
	n, err := strconv.Atoi(header[1:])
	if err != nil || n < 1 {
		return nil, fmt.Errorf("bad array length %q", header)
	}

	args := make([]string, 0, n)
	for i := 0; i < n; i++ {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		size, err := strconv.Atoi(strings.TrimSpace(line)[1:])
		if err != nil {
			return nil, err
		}
		buf := make([]byte, size+2)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		args = append(args, string(buf[:size]))
	}
	return args, nil
}

func TestCachedStationRepository_StalledRedisFallsBackWithinDeadline(t *testing.T) {
	// Подготовка
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockStationRepository(ctrl)
	client, err := redisclient.NewRedisClient(context.Background(), startStallingRedis(t), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	repo := NewCachedStationRepository(inner, client, time.Minute, newCacheTestLogger())
	stations := cachedStations()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	// Ожидания
	inner.EXPECT().ListActiveStations(gomock.Any(), models.DepartmentFire).Return(stations, nil).Times(1)

	// Действие
	type result struct {
		stations []models.Station
		err      error
	}
	done := make(chan result, 1)
	go func() {
		got, err := repo.ListActiveStations(ctx, models.DepartmentFire)
		done <- result{got, err}
	}()

	// Проверки
	select {
	case res := <-done:
		require.NoError(t, res.err)
		assert.Equal(t, stations, res.stations)
	case <-time.After(3 * time.Second):
		t.Fatal("station lookup did not return after the context deadline")
	}
}
