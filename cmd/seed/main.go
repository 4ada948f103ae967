// seed crea datos de demostración: una bodega con sus bins virtuales
// provisionados y un pasillo de ubicaciones físicas de almacenamiento.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que el API (DATABASE_URL o DB_*).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jhoicas/kardex-api/internal/application/warehousing"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/infrastructure/postgres"
	"github.com/jhoicas/kardex-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	warehouseRepo := postgres.NewWarehouseRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	warehouseUC := warehousing.NewWarehouseUseCase(warehouseRepo, locationRepo)
	locationUC := warehousing.NewLocationUseCase(warehouseRepo, locationRepo, ledgerRepo)

	w, err := warehouseUC.Create(warehousing.CreateWarehouseInput{
		Code:  "BOD-DEMO",
		Name:  "Bodega Demo",
		Actor: "seed",
	})
	if err != nil {
		if !errors.Is(err, domain.ErrDuplicate) {
			fmt.Fprintf(os.Stderr, "crear bodega: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("bodega BOD-DEMO ya existe, omitiendo")
		return
	}
	fmt.Printf("bodega %s creada (%s)\n", w.Code, w.ID)

	// Pasillo A: tres niveles por posición, dos posiciones
	for _, code := range []string{"A-01-1", "A-01-2", "A-01-3", "A-02-1", "A-02-2", "A-02-3"} {
		loc, err := locationUC.Create(warehousing.CreateLocationInput{
			WarehouseID: w.ID,
			Type:        entity.LocationPhysical,
			Code:        code,
			DisplayName: "Estante " + code,
			Actor:       "seed",
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "crear ubicación %s: %v\n", code, err)
			os.Exit(1)
		}
		fmt.Printf("ubicación %s creada (%s)\n", loc.Code, loc.ID)
	}
	fmt.Println("seed completado")
}
