// Package dbtest opens isolated in-memory SQLite databases for tests.
package dbtest

import (
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// New returns a migrated database private to t. A single connection keeps the
// shared-cache database alive and serialises writers like a real SQLite file.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	gdb, err := db.Open(sqlite.Open(dsn), zerolog.New(io.Discard))
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

// Fixture is a minimal salon: one customer, one barber working weekdays
// 09:00-17:00 and two services.
type Fixture struct {
	Customer   models.User
	BarberUser models.User
	Barber     models.Barber
	Haircut    models.Service // 30 min
	Beard      models.Service // 45 min
}

func Seed(t *testing.T, gdb *gorm.DB) Fixture {
	t.Helper()

	f := Fixture{
		Customer:   models.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "x", Role: models.RoleCustomer},
		BarberUser: models.User{Name: "Bruno", Email: "bruno@example.com", PasswordHash: "x", Role: models.RoleBarber},
	}
	require.NoError(t, gdb.Create(&f.Customer).Error)
	require.NoError(t, gdb.Create(&f.BarberUser).Error)

	f.Barber = models.Barber{UserID: &f.BarberUser.ID, Name: "Bruno", IsActive: true}
	require.NoError(t, gdb.Create(&f.Barber).Error)

	f.Haircut = models.Service{Name: "Haircut", DurationMinutes: 30, Price: 40, IsActive: true}
	f.Beard = models.Service{Name: "Beard", DurationMinutes: 45, Price: 25, IsActive: true}
	require.NoError(t, gdb.Create(&f.Haircut).Error)
	require.NoError(t, gdb.Create(&f.Beard).Error)

	for day := 1; day <= 5; day++ {
		wh := models.WorkingHours{
			BarberID:    f.Barber.ID,
			DayOfWeek:   day,
			StartTime:   "09:00",
			EndTime:     "17:00",
			IsAvailable: true,
		}
		require.NoError(t, gdb.Create(&wh).Error)
	}

	return f
}
