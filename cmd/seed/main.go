// Seeds the category reference data. Run once against a fresh database;
// reruns are safe, existing keys only get their label refreshed.
package main

import (
	"database/sql"
	"log"
	"os"

	_ "github.com/lib/pq"
	"github.com/joho/godotenv"
)

type category struct {
	key   string
	label string
}

var categories = []category{
	{"workshop", "Workshop"},
	{"palestra", "Palestra"},
	{"festa", "Festa"},
	{"cultural", "Cultural"},
	{"esportivo", "Esportivo"},
	{"social", "Social"},
	{"educativo", "Educativo"},
	{"networking", "Networking"},
	{"arte", "Arte"},
	{"musica", "Música"},
	{"danca", "Dança"},
	{"teatro", "Teatro"},
	{"cinema", "Cinema"},
	{"literatura", "Literatura"},
	{"gastronomia", "Gastronomia"},
	{"saude", "Saúde e Bem-estar"},
	{"tecnologia", "Tecnologia"},
	{"voluntariado", "Voluntariado"},
	{"debate", "Debate"},
	{"outros", "Outros"},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	addr := os.Getenv("DB_ADDR")
	if addr == "" {
		log.Fatal("DB_ADDR is required")
	}

	db, err := sql.Open("postgres", addr)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	const q = `
		INSERT INTO categories (key, label)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET label = EXCLUDED.label
	`

	for _, c := range categories {
		if _, err := db.Exec(q, c.key, c.label); err != nil {
			log.Fatalf("seed category %q: %v", c.key, err)
		}
	}

	log.Printf("seeded %d categories", len(categories))
}
