package usecase

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"ludoteca-api/internal/delivery/dto"
	"ludoteca-api/internal/domain/entity"
	"ludoteca-api/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// noopLocker stands in for the redis reservation lock in single-threaded tests.
type noopLocker struct{}

func (noopLocker) Acquire(ctx context.Context, keys ...string) (func(), error) {
	return func() {}, nil
}

// keyedLocker serializes in process the way the redis lock does across
// processes: one mutex per reservation key, taken in sorted order.
type keyedLocker struct {
	mu      sync.Mutex
	mutexes map[string]*sync.Mutex
}

func newKeyedLocker() *keyedLocker {
	return &keyedLocker{mutexes: make(map[string]*sync.Mutex)}
}

func (l *keyedLocker) Acquire(ctx context.Context, keys ...string) (func(), error) {
	sorted := make([]string, len(keys))
	copy(sorted, keys)
	sort.Strings(sorted)

	held := make([]*sync.Mutex, 0, len(sorted))
	for _, key := range sorted {
		l.mu.Lock()
		m, ok := l.mutexes[key]
		if !ok {
			m = &sync.Mutex{}
			l.mutexes[key] = m
		}
		l.mu.Unlock()

		m.Lock()
		held = append(held, m)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}, nil
}

type loanTestEnv struct {
	db *gorm.DB
	uc LoanUsecase
}

func newLoanTestEnv(t *testing.T) *loanTestEnv {
	t.Helper()
	return newLoanTestEnvWithLocker(t, noopLocker{})
}

func newLoanTestEnvWithLocker(t *testing.T, locker ReservationLocker) *loanTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A second pool connection would see its own empty :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&entity.Client{}, &entity.Game{}, &entity.Loan{}))

	log := logrus.New()
	log.SetOutput(io.Discard)

	uc := NewLoanUsecase(
		db,
		log,
		repository.NewLoanRepository(),
		repository.NewGameRepository(),
		repository.NewClientRepository(),
		locker,
	)

	return &loanTestEnv{db: db, uc: uc}
}

func (env *loanTestEnv) seedGame(t *testing.T, title string) int64 {
	t.Helper()
	game := &entity.Game{Title: title, Age: 8, Category: "family"}
	require.NoError(t, env.db.Create(game).Error)
	return game.ID
}

func (env *loanTestEnv) seedClient(t *testing.T, name string) int64 {
	t.Helper()
	client := &entity.Client{Name: name}
	require.NoError(t, env.db.Create(client).Error)
	return client.ID
}

func (env *loanTestEnv) save(gameID, clientID int64, startDate, endDate string) (*dto.LoanResponse, error) {
	return env.uc.Save(context.Background(), &dto.CreateLoanRequest{
		Game:      dto.GameRef{ID: gameID},
		Client:    dto.ClientRef{ID: clientID},
		StartDate: startDate,
		EndDate:   endDate,
	})
}

func (env *loanTestEnv) loanCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, env.db.Model(&entity.Loan{}).Count(&count).Error)
	return count
}

func TestSaveRejectsEndBeforeStart(t *testing.T) {
	env := newLoanTestEnv(t)
	gameID := env.seedGame(t, "Catan")
	clientID := env.seedClient(t, "Alice")

	_, err := env.save(gameID, clientID, "2025-07-07", "2025-07-03")

	require.ErrorIs(t, err, ErrEndBeforeStart)
	assert.Equal(t, "return date cannot precede start date", err.Error())
	assert.Zero(t, env.loanCount(t), "no record may be created on a failed save")
}

func TestSaveRejectsPeriodOverFourteenDays(t *testing.T) {
	env := newLoanTestEnv(t)
	gameID := env.seedGame(t, "Catan")
	clientID := env.seedClient(t, "Alice")

	// 20-day span
	_, err := env.save(gameID, clientID, "2025-07-07", "2025-07-27")

	require.ErrorIs(t, err, ErrLoanTooLong)
	assert.Zero(t, env.loanCount(t))
}

func TestSaveAcceptsBoundarySpans(t *testing.T) {
	tests := []struct {
		name      string
		startDate string
		endDate   string
	}{
		{name: "same-day loan", startDate: "2025-07-07", endDate: "2025-07-07"},
		{name: "exactly fourteen days", startDate: "2025-07-07", endDate: "2025-07-21"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newLoanTestEnv(t)
			gameID := env.seedGame(t, "Azul")
			clientID := env.seedClient(t, "Bob")

			resp, err := env.save(gameID, clientID, tc.startDate, tc.endDate)

			require.NoError(t, err)
			assert.Equal(t, tc.startDate, resp.StartDate)
			assert.Equal(t, tc.endDate, resp.EndDate)
			assert.EqualValues(t, 1, env.loanCount(t))
		})
	}
}

func TestSaveRejectsInvalidDateFormat(t *testing.T) {
	env := newLoanTestEnv(t)
	gameID := env.seedGame(t, "Catan")
	clientID := env.seedClient(t, "Alice")

	_, err := env.save(gameID, clientID, "07/07/2025", "2025-07-08")

	require.ErrorIs(t, err, ErrInvalidLoanDate)
	assert.Zero(t, env.loanCount(t))
}

func TestSaveRejectsUnknownReferences(t *testing.T) {
	env := newLoanTestEnv(t)
	gameID := env.seedGame(t, "Catan")
	clientID := env.seedClient(t, "Alice")

	_, err := env.save(gameID+99, clientID, "2025-07-07", "2025-07-08")
	require.ErrorIs(t, err, ErrGameNotFound)

	_, err = env.save(gameID, clientID+99, "2025-07-07", "2025-07-08")
	require.ErrorIs(t, err, ErrClientNotFound)

	assert.Zero(t, env.loanCount(t))
}

func TestSaveRejectsOverlappingGameReservation(t *testing.T) {
	env := newLoanTestEnv(t)
	gameID := env.seedGame(t, "Catan")
	firstClient := env.seedClient(t, "Alice")
	secondClient := env.seedClient(t, "Bob")

	_, err := env.save(gameID, firstClient, "2025-10-20", "2025-10-22")
	require.NoError(t, err)

	// Overlaps on 2025-10-21 and 2025-10-22
	_, err = env.save(gameID, secondClient, "2025-10-21", "2025-10-23")

	require.ErrorIs(t, err, ErrGameAlreadyReserved)
	assert.Equal(t, "game already reserved for this day", err.Error())
	assert.EqualValues(t, 1, env.loanCount(t))
}

func TestSaveAllowsAdjacentGameReservations(t *testing.T) {
	env := newLoanTestEnv(t)
	gameID := env.seedGame(t, "Catan")
	firstClient := env.seedClient(t, "Alice")
	secondClient := env.seedClient(t, "Bob")

	_, err := env.save(gameID, firstClient, "2025-10-20", "2025-10-22")
	require.NoError(t, err)

	// Starts the day after the first loan ends
	_, err = env.save(gameID, secondClient, "2025-10-23", "2025-10-25")

	require.NoError(t, err)
	assert.EqualValues(t, 2, env.loanCount(t))
}

func TestSaveRejectsClientOverDailyLimit(t *testing.T) {
	env := newLoanTestEnv(t)
	firstGame := env.seedGame(t, "Catan")
	secondGame := env.seedGame(t, "Azul")
	thirdGame := env.seedGame(t, "Carcassonne")
	clientID := env.seedClient(t, "Carol")

	_, err := env.save(firstGame, clientID, "2025-10-20", "2025-10-20")
	require.NoError(t, err)
	_, err = env.save(secondGame, clientID, "2025-10-20", "2025-10-20")
	require.NoError(t, err)

	// Third game on the same day exceeds the two-loan limit
	_, err = env.save(thirdGame, clientID, "2025-10-20", "2025-10-20")

	require.ErrorIs(t, err, ErrClientLoanLimit)
	assert.Equal(t, "client already has two games reserved for that day", err.Error())
	assert.EqualValues(t, 2, env.loanCount(t))
}

func TestSaveClientLimitChecksEveryDayInRange(t *testing.T) {
	env := newLoanTestEnv(t)
	firstGame := env.seedGame(t, "Catan")
	secondGame := env.seedGame(t, "Azul")
	thirdGame := env.seedGame(t, "Carcassonne")
	clientID := env.seedClient(t, "Carol")

	_, err := env.save(firstGame, clientID, "2025-10-22", "2025-10-24")
	require.NoError(t, err)
	_, err = env.save(secondGame, clientID, "2025-10-23", "2025-10-25")
	require.NoError(t, err)

	// Only 2025-10-23 is over the limit, in the middle of the candidate range
	_, err = env.save(thirdGame, clientID, "2025-10-20", "2025-10-23")

	require.ErrorIs(t, err, ErrClientLoanLimit)
	assert.EqualValues(t, 2, env.loanCount(t))
}

func TestSaveSucceedsWithoutConflicts(t *testing.T) {
	env := newLoanTestEnv(t)
	gameID := env.seedGame(t, "Wingspan")
	clientID := env.seedClient(t, "Bob")

	before := env.loanCount(t)
	resp, err := env.save(gameID, clientID, "2024-07-20", "2024-07-25")

	require.NoError(t, err)
	assert.Equal(t, before+1, env.loanCount(t))
	assert.NotZero(t, resp.ID)
	require.NotNil(t, resp.Game)
	assert.Equal(t, "Wingspan", resp.Game.Title)
	require.NotNil(t, resp.Client)
	assert.Equal(t, "Bob", resp.Client.Name)
}

func TestConcurrentSavesForSameGameAreSerialized(t *testing.T) {
	env := newLoanTestEnvWithLocker(t, newKeyedLocker())
	gameID := env.seedGame(t, "Catan")
	firstClient := env.seedClient(t, "Alice")
	secondClient := env.seedClient(t, "Bob")

	// Both saves would pass the availability scan against the empty store;
	// the per-game lock forces them through one at a time so the second
	// sees the first one's insert.
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, clientID := range []int64{firstClient, secondClient} {
		wg.Add(1)
		go func(clientID int64) {
			defer wg.Done()
			_, err := env.save(gameID, clientID, "2025-10-20", "2025-10-22")
			errs <- err
		}(clientID)
	}
	wg.Wait()
	close(errs)

	var succeeded, conflicted int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrGameAlreadyReserved):
			conflicted++
		default:
			t.Fatalf("unexpected save error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)
	assert.EqualValues(t, 1, env.loanCount(t))
}

func TestConcurrentSavesOverClientLimitAreSerialized(t *testing.T) {
	env := newLoanTestEnvWithLocker(t, newKeyedLocker())
	clientID := env.seedClient(t, "Carol")
	games := []int64{
		env.seedGame(t, "Catan"),
		env.seedGame(t, "Azul"),
		env.seedGame(t, "Carcassonne"),
	}

	// Three different games, one client, one day: the daily limit admits
	// exactly two no matter how the saves interleave.
	errs := make(chan error, len(games))
	var wg sync.WaitGroup
	for _, gameID := range games {
		wg.Add(1)
		go func(gameID int64) {
			defer wg.Done()
			_, err := env.save(gameID, clientID, "2025-10-20", "2025-10-20")
			errs <- err
		}(gameID)
	}
	wg.Wait()
	close(errs)

	var succeeded, conflicted int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrClientLoanLimit):
			conflicted++
		default:
			t.Fatalf("unexpected save error: %v", err)
		}
	}

	assert.Equal(t, 2, succeeded)
	assert.Equal(t, 1, conflicted)
	assert.EqualValues(t, 2, env.loanCount(t))
}

func TestDeleteIsDestructiveAndFinal(t *testing.T) {
	env := newLoanTestEnv(t)
	gameID := env.seedGame(t, "Catan")
	clientID := env.seedClient(t, "Alice")

	resp, err := env.save(gameID, clientID, "2025-03-01", "2025-03-03")
	require.NoError(t, err)

	require.NoError(t, env.uc.Delete(context.Background(), resp.ID))
	assert.Zero(t, env.loanCount(t))

	err = env.uc.Delete(context.Background(), resp.ID)
	require.ErrorIs(t, err, ErrLoanNotFound)
}

func TestSearchFiltersAreCombined(t *testing.T) {
	env := newLoanTestEnv(t)
	firstGame := env.seedGame(t, "Catan")
	secondGame := env.seedGame(t, "Azul")
	firstClient := env.seedClient(t, "Alice")
	secondClient := env.seedClient(t, "Bob")

	_, err := env.save(firstGame, firstClient, "2025-05-01", "2025-05-03")
	require.NoError(t, err)
	_, err = env.save(secondGame, firstClient, "2025-05-02", "2025-05-04")
	require.NoError(t, err)
	_, err = env.save(firstGame, secondClient, "2025-05-10", "2025-05-12")
	require.NoError(t, err)

	pageable := dto.PageableRequest{PageNumber: 0, PageSize: 10}

	t.Run("by game", func(t *testing.T) {
		page, err := env.uc.Search(context.Background(), &dto.SearchLoanRequest{
			IDGame:   &firstGame,
			Pageable: pageable,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 2, page.TotalElements)
	})

	t.Run("by client and date", func(t *testing.T) {
		page, err := env.uc.Search(context.Background(), &dto.SearchLoanRequest{
			IDClient: &firstClient,
			Date:     "2025-05-02",
			Pageable: pageable,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 2, page.TotalElements)
	})

	t.Run("by game, client and date", func(t *testing.T) {
		page, err := env.uc.Search(context.Background(), &dto.SearchLoanRequest{
			IDGame:   &firstGame,
			IDClient: &firstClient,
			Date:     "2025-05-04",
			Pageable: pageable,
		})
		require.NoError(t, err)
		assert.Zero(t, page.TotalElements)
	})
}

func TestSearchIsIdempotent(t *testing.T) {
	env := newLoanTestEnv(t)
	gameID := env.seedGame(t, "Catan")
	clientID := env.seedClient(t, "Alice")

	_, err := env.save(gameID, clientID, "2025-05-01", "2025-05-03")
	require.NoError(t, err)
	_, err = env.save(gameID, clientID, "2025-05-10", "2025-05-12")
	require.NoError(t, err)

	req := &dto.SearchLoanRequest{
		IDGame:   &gameID,
		Pageable: dto.PageableRequest{PageNumber: 0, PageSize: 10},
	}

	first, err := env.uc.Search(context.Background(), req)
	require.NoError(t, err)
	second, err := env.uc.Search(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.TotalElements, second.TotalElements)
	assert.Equal(t, first.Content, second.Content)
}

func TestValidateLoanPeriod(t *testing.T) {
	day := func(value string) time.Time {
		parsed, err := time.ParseInLocation("2006-01-02", value, time.UTC)
		require.NoError(t, err)
		return parsed
	}

	tests := []struct {
		name      string
		startDate string
		endDate   string
		wantErr   error
	}{
		{name: "same day", startDate: "2025-01-10", endDate: "2025-01-10", wantErr: nil},
		{name: "fourteen day span", startDate: "2025-01-10", endDate: "2025-01-24", wantErr: nil},
		{name: "fifteen day span", startDate: "2025-01-10", endDate: "2025-01-25", wantErr: ErrLoanTooLong},
		{name: "end before start", startDate: "2025-01-10", endDate: "2025-01-09", wantErr: ErrEndBeforeStart},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateLoanPeriod(day(tc.startDate), day(tc.endDate))
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}
