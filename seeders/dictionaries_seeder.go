package seeders

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedCoreDictionaries наполняет неизменяемые справочники: департаменты,
// роли, этапы. Повторный запуск безопасен.
func SeedCoreDictionaries(db *pgxpool.Pool) {
	ctx := context.Background()
	if err := seedDepartments(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка сидера департаментов: %v", err)
	}
	if err := seedRoles(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка сидера ролей: %v", err)
	}
	if err := seedStages(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка сидера этапов: %v", err)
	}
	log.Println("  ✅ Справочники наполнены")
}

func seedDepartments(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'departments'...")
	query := `
		INSERT INTO departments (key, name, name_ru, document_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE SET name = EXCLUDED.name, name_ru = EXCLUDED.name_ru`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	for _, d := range departmentsData {
		if _, err := tx.Exec(ctx, query, d.Key, d.Name, d.NameRu, uuid.NewString()); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func seedRoles(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'roles'...")
	query := `
		INSERT INTO roles (name, type)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET type = EXCLUDED.type`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	for _, r := range rolesData {
		if _, err := tx.Exec(ctx, query, r.Name, r.Type); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func seedStages(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'stages'...")

	var count int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM stages").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		log.Println("    ℹ️  Этапы уже есть. Пропускаем.")
		return nil
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	for _, s := range stagesData {
		if _, err := tx.Exec(ctx, "INSERT INTO stages (name, sort_order) VALUES ($1, $2)", s.Name, s.SortOrder); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
