// cmd/seeduser — Crea/actualiza el usuario admin de demo.
// Uso: go run ./cmd/seeduser
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/mgfuentes-ct/OTech-respaldo/internal/config"
	"github.com/mgfuentes-ct/OTech-respaldo/internal/infra"
	"github.com/mgfuentes-ct/OTech-respaldo/internal/model"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	username := "admin"
	password := "admin1"
	nombre := "Admin User"
	email := "admin@otech.local"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatalf("bcrypt error: %v", err)
	}

	db, err := infra.NewDatabase(cfg.DSN())
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}

	result := db.WithContext(context.Background()).Exec(`
		INSERT INTO usuario (username, nombre, email, password_hash, rol, activo, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, true, NOW(), NOW())
		ON DUPLICATE KEY UPDATE
		    password_hash = VALUES(password_hash),
		    nombre = VALUES(nombre),
		    email = VALUES(email),
		    rol = VALUES(rol),
		    activo = true
	`, username, nombre, email, string(hash), model.RolAdmin)

	if result.Error != nil {
		log.Fatalf("insert error: %v", result.Error)
	}
	fmt.Printf("✅ Usuario '%s' creado/actualizado con password '%s'\n", username, password)
}
