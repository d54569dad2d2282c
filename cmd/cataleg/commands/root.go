package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/adomenech/cataleg/internal/infrastructure/postgres"
	"github.com/adomenech/cataleg/pkg/config"
	"github.com/adomenech/cataleg/pkg/logger"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "cataleg",
	Short: "Catálogo de piezas industriales sobre PostgreSQL",
	Long: `Herramienta de consulta y mantenimiento del catálogo de piezas:
componentes, productos fabricados, sus listas de materiales (BOM) y las
ofertas de proveedores con su precio medio derivado.

La conexión se configura con DATABASE_URL o con DB_HOST, DB_PORT, DB_USER,
DB_PASSWORD, DB_NAME y DB_SSLMODE (también desde un archivo .env).`,
}

// Execute ejecuta el comando raíz.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "salida detallada (nivel debug)")
}

// setup carga configuración, construye logger y pool, y devuelve un contexto
// cancelable con la señal de interrupción. El cleanup cierra el pool.
func setup() (context.Context, context.CancelFunc, *pgxpool.Pool, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: level})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		cancel()
		return nil, nil, nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return ctx, cancel, pool, log, nil
}
