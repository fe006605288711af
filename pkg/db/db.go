package db

import (
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	constant "liyu1981.xyz/maternity-monitor-service/pkg/common"
	"liyu1981.xyz/maternity-monitor-service/pkg/models"
)

type DB struct {
	Conn *gorm.DB
}

var (
	instance *DB
	once     sync.Once
)

// ActiveSessionIndexName guards the one-active-session-per-subject-and-type
// invariant. Both sqlite and postgres support partial unique indexes.
const ActiveSessionIndexName = "idx_one_active_session"

const createActiveSessionIndex = `CREATE UNIQUE INDEX IF NOT EXISTS ` + ActiveSessionIndexName +
	` ON counting_sessions (subject_id, type) WHERE status = 'ACTIVE'`

func GetInstance(dialector gorm.Dialector) *DB {
	var logger = constant.GetLogger()
	once.Do(func() {
		conn, err := gorm.Open(dialector, &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}

		logger.Info("Connected to database with dialector:", zap.String("dialector", dialector.Name()))

		instance = &DB{Conn: conn}

		if err := Migrate(instance.Conn); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}

		logger.Info("Database migration completed")

		if dialector.Name() == "sqlite" {
			if err := instance.Conn.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
				log.Fatal("Failed to set sqlite journal mode", err)
			}
		}
	})
	return instance
}

func Migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.VitalReading{},
		&models.Alert{},
		&models.Thresholds{},
		&models.CountingSession{},
		&models.SessionEvent{},
	)
	if err != nil {
		return err
	}
	return conn.Exec(createActiveSessionIndex).Error
}

func UseSqliteDialector() gorm.Dialector {
	var dbPath string
	var found bool
	if dbPath, found = os.LookupEnv(constant.EnvKeyMaternityDbPath); !found {
		dbPath = "maternity.db"
	}
	return sqlite.Open(dbPath)
}

func UseMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open("file::memory:?cache=shared")
}

func UsePostgresDialector() gorm.Dialector {
	return postgres.Open(os.Getenv(constant.EnvKeyMaternityPostgresDSN))
}
