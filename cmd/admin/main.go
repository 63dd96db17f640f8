package main

import (
	"fmt"
	"log"
	"os"

	"chatmate/backend/internal/config"
	"chatmate/backend/internal/storage"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.FromEnv()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "users":
		if err := listUsers(storageSvc); err != nil {
			log.Fatalf("Error listing users: %v", err)
		}
	case "friends":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin friends <user_id>")
			os.Exit(1)
		}
		if err := listFriends(storageSvc, os.Args[2]); err != nil {
			log.Fatalf("Error listing friends: %v", err)
		}
	case "stats":
		if err := showStats(storageSvc); err != nil {
			log.Fatalf("Error collecting stats: %v", err)
		}
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func listUsers(s storage.Storage) error {
	users, err := s.ListUsers()
	if err != nil {
		return err
	}
	for _, u := range users {
		fmt.Printf("%s  %-32s  %-32s  last login: %s\n",
			u.ID, u.Username, u.DisplayName, u.LastLogin.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("%d users total\n", len(users))
	return nil
}

func listFriends(s storage.Storage, userID string) error {
	friendList, err := s.ListFriends(userID)
	if err != nil {
		return err
	}
	for _, f := range friendList {
		fmt.Printf("%s  %-32s  since %s\n", f.ID, f.Username, f.Since.Format("2006-01-02"))
	}
	fmt.Printf("%d friends\n", len(friendList))
	return nil
}

func showStats(s storage.Storage) error {
	users, err := s.ListUsers()
	if err != nil {
		return err
	}
	messages, err := s.CountMessages()
	if err != nil {
		return err
	}
	fmt.Printf("users: %d\nmessages: %d\n", len(users), messages)
	return nil
}
