package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"kesif-backend/internal/config"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// 按文件名顺序执行 db/migrations 下的全部 .sql，或只执行命令行指定的文件
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
		cfg.Database.Password, cfg.Database.Database, cfg.Database.SSLMode)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Cannot open database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("Cannot connect to database: %v", err)
	}

	var files []string
	if len(os.Args) > 1 {
		files = os.Args[1:]
	} else {
		files, err = filepath.Glob("db/migrations/*.sql")
		if err != nil || len(files) == 0 {
			log.Fatalf("No migration files found under db/migrations: %v", err)
		}
		sort.Strings(files)
	}

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", file, err)
		}
		fmt.Printf("Applying %s...\n", file)
		if _, err := db.Exec(string(content)); err != nil {
			log.Fatalf("Failed to apply %s: %v", file, err)
		}
	}

	fmt.Println("All migrations applied successfully")
}
