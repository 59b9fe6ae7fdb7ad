// Command token mints a bearer token for a driver device or a test rider,
// signed with the JWT settings of the given config file.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/yatralink/bustrack/internal/pkg/config"
	"github.com/yatralink/bustrack/internal/pkg/constants"
	jwtpkg "github.com/yatralink/bustrack/internal/pkg/jwt"
	"github.com/yatralink/bustrack/internal/pkg/models"
)

func main() {
	configPath := flag.String("config", config.GetEnv("CONFIG_PATH", "config/tracking.env"), "env file holding JWT_SECRET")
	vehicleID := flag.String("vehicle", "", "vehicle id, used as the token subject")
	email := flag.String("email", "", "owner email stored on the vehicle position")
	role := flag.String("role", constants.RoleDriver, "driver or rider")
	flag.Parse()

	if *vehicleID == "" {
		log.Fatal("-vehicle is required")
	}

	configs := config.MustInitConfig(*configPath)
	if configs.JWT.Secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	token, expiresAt, err := jwtpkg.GenerateToken(models.Identity{
		UserID: *vehicleID,
		Email:  *email,
		Role:   *role,
	}, configs.JWT)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	fmt.Println(token)
	log.Printf("expires at %s", time.Unix(expiresAt, 0).Format(time.RFC3339))
}
