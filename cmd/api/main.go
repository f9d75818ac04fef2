package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	// Criar aplicação
	app, err := NewApp()
	if err != nil {
		log.Fatalf("Erro ao inicializar aplicação: %v", err)
	}
	defer app.Close()

	basePath := os.Getenv("API_BASE_PATH")
	if basePath == "" {
		basePath = "/api"
	}
	app.SetupRoutes(basePath)

	// Iniciar o servidor
	app.Start()
}
