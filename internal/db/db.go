package db

import (
	"database/sql"
	"fmt"

	"github.com/Popolzen/url2/internal/config"
	migration "github.com/Popolzen/url2/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// DBConfig содержит конфигурацию для подключения к БД
type DBConfig struct {
	DBurl string
}

// DataBase представляет подключение к базе данных
type DataBase struct {
	*sql.DB
}

// NewDBConfig создает новую конфигурацию БД
func NewDBConfig(c config.Config) DBConfig {
	return DBConfig{
		DBurl: c.DBurl,
	}
}

// NewDataBase открывает пул подключений к БД
func NewDataBase(cfg DBConfig) (*DataBase, error) {
	db, err := sql.Open("pgx", cfg.DBurl)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть подключение: %w", err)
	}
	return &DataBase{DB: db}, nil
}

// PingDB проверяет подключение к базе данных (без создания постоянного соединения)
func (d *DBConfig) PingDB() error {
	db, err := sql.Open("pgx", d.DBurl)
	if err != nil {
		return fmt.Errorf("ошибка при создании подключения: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ошибка при подключении к БД: %w", err)
	}

	return nil
}

func (d *DataBase) Migrate() error {
	return migration.MigrateUp(d.DB)
}
