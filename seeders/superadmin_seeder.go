package seeders

import (
	"context"
	"fmt"
	"log"

	"ops-portal/pkg/config"
	"ops-portal/pkg/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedSuperAdmin создает root-пользователя с ролью Super Admin.
// Email и пароль берутся из SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD.
func SeedSuperAdmin(db *pgxpool.Pool, cfg *config.Config) error {
	ctx := context.Background()
	log.Println("  - Запуск сидера SuperAdmin...")

	email := cfg.Seeder.AdminEmail
	password := cfg.Seeder.AdminPassword
	if email == "" || password == "" {
		log.Println("    ℹ️  SEED_ADMIN_EMAIL или SEED_ADMIN_PASSWORD не заданы. Пропускаем создание.")
		return nil
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var userID uint64
	if err := tx.QueryRow(ctx, "SELECT id FROM users WHERE LOWER(email) = LOWER($1)", email).Scan(&userID); err == nil {
		log.Println("    ℹ️  Root пользователь уже существует. Не трогаем.")
		return tx.Commit(ctx)
	}

	var roleID uint64
	if err := tx.QueryRow(ctx, "SELECT id FROM roles WHERE type = 'superadmin' LIMIT 1").Scan(&roleID); err != nil {
		return fmt.Errorf("роль superadmin не найдена, сначала запустите сидер справочников")
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (fio, email, password, role_id) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := tx.QueryRow(ctx, query, "System Administrator", email, hashedPassword, roleID).Scan(&userID); err != nil {
		return err
	}

	log.Printf("    ✅ Root пользователь создан (id=%d)", userID)
	return tx.Commit(ctx)
}
