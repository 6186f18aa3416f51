package board_test

import (
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"campusboard/internal/board"
	"campusboard/internal/database"
	"campusboard/internal/store"
)

// 测试统一使用固定时钟，便于断言时间戳。
var testNow = time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap db: %v", err)
	}
	// 单连接使并发写在连接池层串行化，唯一约束检查保持原子。
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&database.User{}, &database.Job{}, &database.JobApplication{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type testEnv struct {
	db    *gorm.DB
	users *board.UserService
	jobs  *board.JobService
	apps  *board.ApplicationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	jobStore := store.NewJobStore(db)
	return &testEnv{
		db:    db,
		users: board.NewUserService(store.NewUserStore(db), fakeHash, fixedClock),
		jobs:  board.NewJobService(jobStore, fixedClock),
		apps:  board.NewApplicationService(store.NewApplicationStore(db), jobStore, fixedClock),
	}
}

// fakeHash 避免单元测试承担 bcrypt 的开销。
func fakeHash(password string) (string, error) {
	return "hashed:" + password, nil
}

func seedUser(t *testing.T, db *gorm.DB, email string, role database.Role) database.User {
	t.Helper()
	user := database.User{
		Email:        email,
		PasswordHash: "hashed",
		Name:         email,
		Role:         role,
		Status:       database.UserActive,
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

func actorFor(user database.User) board.Actor {
	return board.Actor{ID: user.ID, Role: user.Role}
}

func validJobInput() board.JobInput {
	return board.JobInput{
		Title:       "Campus Barista",
		Description: "Part-time barista at the student union cafe.",
		Location:    "Student Union",
		Category:    "food-service",
	}
}

func mustKind(t *testing.T, err error, kind board.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	if !board.IsKind(err, kind) {
		t.Fatalf("expected %s error, got %v", kind, err)
	}
}
