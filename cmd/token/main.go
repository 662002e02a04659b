// Command token in ra access token cho doctor/admin, dùng khi vận hành
// hoặc test API bằng curl.
//
//	go run ./cmd/token -role admin
//	go run ./cmd/token -role doctor -doctor 12
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"ayurveda-backend/internal/config"
	"ayurveda-backend/pkg/jwt"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "token: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	doctorID := fs.Int64("doctor", 0, "doctor id (required for role doctor)")
	role := fs.String("role", jwt.RoleDoctor, "token role: doctor | admin")
	if err := fs.Parse(args); err != nil {
		return err
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	manager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	token, err := manager.GenerateAccessToken(*doctorID, *role)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, token)
	return err
}
