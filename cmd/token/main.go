// Command token emite un JWT de acceso para operar la API (no hay login en el servicio).
//
//	go run ./cmd/token --user 7f0c... --role bodeguero
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/pkg/config"
	"github.com/jhoicas/Inventario-pos/pkg/jwt"
)

func main() {
	userID := pflag.StringP("user", "u", "", "ID del usuario (claim user_id)")
	role := pflag.StringP("role", "r", entity.RoleVendedor, "rol: admin | bodeguero | vendedor")
	minutes := pflag.IntP("exp", "e", 0, "minutos de validez (0 = JWT_EXPIRATION_MINUTES)")
	pflag.Parse()

	if *userID == "" {
		fail("--user es obligatorio")
	}
	switch *role {
	case entity.RoleAdmin, entity.RoleBodeguero, entity.RoleVendedor:
	default:
		fail(fmt.Sprintf("rol desconocido %q", *role))
	}

	cfg, err := config.Load()
	if err != nil {
		fail(err.Error())
	}
	if cfg.JWT.Secret == "" {
		fail("JWT_SECRET es obligatorio")
	}
	exp := cfg.JWT.Expiration
	if *minutes > 0 {
		exp = *minutes
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, *userID, *role, cfg.JWT.Issuer, exp)
	if err != nil {
		fail(err.Error())
	}
	fmt.Println(tok)
}

func fail(msg string) {
	fmt.Fprintln(os.Stderr, "token:", msg)
	os.Exit(1)
}
