package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB es la instancia global del pool de conexiones
var DB *pgxpool.Pool

// ConnectDB establece la conexión con la base de datos usando un pool
func ConnectDB() {
	config, err := pgxpool.ParseConfig(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("Error al parsear la URL de la base de datos: %v", err)
	}
	config.MaxConns = 30
	config.MinConns = 5
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = time.Minute * 30
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	DB, err = pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatalf("Error al crear el pool de conexiones: %v", err)
	}

	// Consulta rápida para verificar que la base responde
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var version string
	if err := DB.QueryRow(ctx, "SELECT version()").Scan(&version); err != nil {
		log.Fatalf("Error al probar la conexión: %v", err)
	}
	log.Println("Conectado exitosamente a la base de datos:", version)
}

// Migrate aplica el esquema inicial si el archivo de migración existe
func Migrate(path string) {
	sql, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Migración no encontrada, se omite: %v", err)
		return
	}
	if _, err := DB.Exec(context.Background(), string(sql)); err != nil {
		log.Printf("Advertencia de migración: %v", err)
		return
	}
	log.Println("Migración aplicada")
}

// CloseDB cierra el pool de conexiones
func CloseDB() {
	if DB != nil {
		DB.Close()
		log.Println("Pool de conexiones cerrado")
	}
}

// GetDB retorna la instancia del pool de conexiones
func GetDB() *pgxpool.Pool {
	return DB
}
