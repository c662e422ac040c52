package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/campusly/college-management/internal/config"
	"github.com/campusly/college-management/internal/database"
	"github.com/campusly/college-management/internal/logger"
	"github.com/campusly/college-management/internal/model"
	"github.com/campusly/college-management/internal/repository"
	"github.com/campusly/college-management/internal/service"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	authService := service.NewAuthService(cfg, repository.NewUserRepository(pool))

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New User ===")

	fmt.Print("Enter Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)
	if len(username) < 3 {
		fmt.Println("Error: Username must be at least 3 characters")
		return
	}

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Println("Error reading password")
		return
	}
	password := string(bytePassword)
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	fmt.Print("Enter Roles, comma separated (default USER): ")
	rolesStr, _ := reader.ReadString('\n')
	roles := parseRoles(rolesStr)

	// ─── Logic ─────────────────────────────────────────────────────────
	user, err := authService.CreateUser(ctx, username, password, roles)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create user")
	}

	fmt.Printf("\nSuccess! User '%s' created with ID %d and roles %v\n", user.Username, user.ID, user.Roles)
}

func parseRoles(raw string) []model.Role {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []model.Role{model.RoleUser}
	}
	var roles []model.Role
	for _, part := range strings.Split(raw, ",") {
		if part = strings.ToUpper(strings.TrimSpace(part)); part != "" {
			roles = append(roles, model.Role(part))
		}
	}
	return roles
}
