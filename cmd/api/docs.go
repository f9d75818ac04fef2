package main

// @title           Backoffice API
// @version         1.0
// @description     API de back-office para catálogo, vendas, compras e aprovações

// @contact.name   Suporte
// @contact.email  suporte@varejotech.example

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: "Bearer {token}"
