// Command token issues access tokens for the attendance API, signed with the
// configured JWT secret. It is meant for operators and service accounts.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/attendance-summary-go/internal/config"
	"github.com/cmlabs-hris/attendance-summary-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/jwt"
	"github.com/google/uuid"
)

func main() {
	userID := flag.String("user", "", "user id carried in the token (random when empty)")
	email := flag.String("email", "", "login email of the caller")
	employeeID := flag.String("employee", "", "employee id of the caller")
	role := flag.String("role", string(auth.RoleEmployee), "role: employee, manager or owner")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "-email is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	if *userID == "" {
		*userID = uuid.NewString()
	}

	var empID *string
	if *employeeID != "" {
		empID = employeeID
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	token, expiresAt, err := JWTService.GenerateAccessToken(*userID, *email, empID, auth.Role(*role))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error generating token:", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "expires at %s\n", time.Unix(expiresAt, 0).Format(time.RFC3339))
	fmt.Println(token)
}
