package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresConfig contém as configurações para conexão com o PostgreSQL
type PostgresConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxConnections  int32
	MinConnections  int32
	MaxConnLifetime time.Duration
}

// NewPostgresConfigFromEnv cria uma nova configuração a partir de variáveis de ambiente
func NewPostgresConfigFromEnv() *PostgresConfig {
	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	maxConns, _ := strconv.Atoi(getEnv("DB_MAX_CONNECTIONS", "10"))
	minConns, _ := strconv.Atoi(getEnv("DB_MIN_CONNECTIONS", "2"))
	maxLifetime, _ := strconv.Atoi(getEnv("DB_MAX_LIFETIME", "300"))

	return &PostgresConfig{
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            port,
		User:            getEnv("DB_USER", "postgres"),
		Password:        getEnv("DB_PASSWORD", "postgres"),
		Database:        getEnv("DB_NAME", "backoffice"),
		SSLMode:         getEnv("DB_SSL_MODE", "disable"),
		MaxConnections:  int32(maxConns),
		MinConnections:  int32(minConns),
		MaxConnLifetime: time.Duration(maxLifetime) * time.Second,
	}
}

// ConnectionString retorna a string de conexão para o PostgreSQL
func (c *PostgresConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// URL retorna a URL de conexão usada pelas migrações
func (c *PostgresConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

// PostgresDB gerencia a conexão com o PostgreSQL
type PostgresDB struct {
	pool   *pgxpool.Pool
	config *PostgresConfig
}

// NewPostgresDB cria uma nova conexão com o banco de dados PostgreSQL
func NewPostgresDB(cfg *PostgresConfig) (*PostgresDB, error) {
	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		connString = cfg.ConnectionString()
	}

	// Configurar pool de conexões
	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("erro ao analisar configuração do pool: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConnections
	poolConfig.MinConns = cfg.MinConnections
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar pool de conexões: %w", err)
	}

	// Testar conexão
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("erro ao verificar conexão com o banco de dados: %w", err)
	}

	return &PostgresDB{pool: pool, config: cfg}, nil
}

// Pool retorna o pool de conexões
func (db *PostgresDB) Pool() *pgxpool.Pool {
	return db.pool
}

// Close fecha o pool de conexões
func (db *PostgresDB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Transaction executa uma função dentro de uma transação
func (db *PostgresDB) Transaction(ctx context.Context, txFunc func(tx pgx.Tx) error) error {
	conn, err := db.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("erro ao adquirir conexão do pool: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}

	if err := txFunc(tx); err != nil {
		// Rollback em caso de erro
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			log.Printf("erro ao fazer rollback: %v", rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("erro ao fazer commit: %w", err)
	}

	return nil
}

// getEnv retorna o valor de uma variável de ambiente ou um valor padrão
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
