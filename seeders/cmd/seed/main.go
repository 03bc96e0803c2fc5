package main

import (
	"flag"
	"log"

	"ops-portal/pkg/config"
	"ops-portal/pkg/database/postgresql"
	"ops-portal/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runCore := flag.Bool("core", false, "Запустить наполнение справочников (департаменты, роли, этапы)")
	runAdmin := flag.Bool("admin", false, "Запустить создание Супер-Администратора")
	runAll := flag.Bool("all", false, "Запустить все сидеры (эквивалентно -core -admin)")

	flag.Parse()

	if !*runCore && !*runAdmin && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed/main.go -core")
		log.Println("  go run ./seeders/cmd/seed/main.go -all")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	dbPool := postgresql.ConnectDB()
	defer dbPool.Close()

	log.Println("======================================================")

	if *runAll || *runCore {
		seeders.SeedCoreDictionaries(dbPool)
		log.Println("======================================================")
	}

	if *runAll || *runAdmin {
		// Админ зависит от ролей из справочников.
		if err := seeders.SeedSuperAdmin(dbPool, cfg); err != nil {
			log.Fatalf("❌ Ошибка сидера SuperAdmin: %v", err)
		}
		log.Println("======================================================")
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
	log.Println("======================================================")
}
