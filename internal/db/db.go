package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shopkhata/shopkhata-api/internal/config"
	"github.com/shopkhata/shopkhata-api/internal/repository/dao"
)

func OpenPostgres(conf *config.PostgresConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=disable",
		conf.Host, conf.Port, conf.User, conf.Password, conf.DBName,
	)

	return open(dsn)
}

// OpenPostgresWithURL connects with a full database URL, the form hosting
// platforms inject via DATABASE_URL.
func OpenPostgresWithURL(databaseURL string) (*gorm.DB, error) {
	return open(databaseURL)
}

func open(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	if err = dao.InitTables(conn); err != nil {
		return nil, fmt.Errorf("dao.InitTables -> %w", err)
	}

	return conn, nil
}
