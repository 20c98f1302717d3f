// import_products carga el catálogo de productos de una empresa desde un CSV exportado
// de la planilla anterior (separador ';', ISO-8859-1 o UTF-8).
//
// Columnas: sku;nombre;categoria;costo;precio;cantidad;stock_minimo;proveedor
// La primera fila es el encabezado. Los SKU ya existentes se informan y se saltan.
//
// Uso: go run ./cmd/import_products -company <uuid> -file productos.csv [-charset latin1]
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/application/usecase"
	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/infrastructure/postgres"
	"github.com/jhoicas/eventos-erp/pkg/config"
	"github.com/jhoicas/eventos-erp/pkg/logger"
)

const columns = 8

func main() {
	companyID := flag.String("company", "", "ID de la empresa destino")
	path := flag.String("file", "productos.csv", "ruta del CSV")
	charset := flag.String("charset", "utf8", "utf8 o latin1")
	flag.Parse()

	if *companyID == "" {
		fmt.Fprintln(os.Stderr, "-company es obligatorio")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "import_products"})

	f, err := os.Open(*path)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	var r io.Reader = f
	if strings.EqualFold(*charset, "latin1") || strings.EqualFold(*charset, "ISO-8859-1") {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	products := usecase.NewProductUseCase(
		postgres.NewProductRepository(pool),
		postgres.NewCompanyRepository(pool),
		nil, nil, log.Zerolog(),
	)

	rows := csv.NewReader(r)
	rows.Comma = ';'
	rows.FieldsPerRecord = columns
	rows.TrimLeadingSpace = true

	if _, err := rows.Read(); err != nil {
		log.Fatal().Err(err).Msg("leer encabezado")
	}

	var created, skipped, failed int
	for line := 2; ; line++ {
		rec, err := rows.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Error().Err(err).Int("line", line).Msg("fila ilegible")
			failed++
			continue
		}
		in, err := parseRow(rec)
		if err != nil {
			log.Error().Err(err).Int("line", line).Msg("fila inválida")
			failed++
			continue
		}
		if _, err := products.Create(ctx, *companyID, in); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				log.Warn().Str("sku", in.SKU).Int("line", line).Msg("SKU existente, se omite")
				skipped++
				continue
			}
			log.Error().Err(err).Str("sku", in.SKU).Int("line", line).Msg("no se pudo crear")
			failed++
			continue
		}
		created++
	}

	log.Info().Int("created", created).Int("skipped", skipped).Int("failed", failed).Msg("importación finalizada")
	if failed > 0 {
		os.Exit(1)
	}
}

func parseRow(rec []string) (dto.CreateProductRequest, error) {
	cost, err := parseAmount(rec[3])
	if err != nil {
		return dto.CreateProductRequest{}, fmt.Errorf("costo: %w", err)
	}
	price, err := parseAmount(rec[4])
	if err != nil {
		return dto.CreateProductRequest{}, fmt.Errorf("precio: %w", err)
	}
	qty, err := strconv.Atoi(strings.TrimSpace(rec[5]))
	if err != nil {
		return dto.CreateProductRequest{}, fmt.Errorf("cantidad: %w", err)
	}
	in := dto.CreateProductRequest{
		SKU:      rec[0],
		Name:     rec[1],
		Category: strings.ToLower(strings.TrimSpace(rec[2])),
		Cost:     cost,
		Price:    price,
		Quantity: qty,
		Supplier: strings.TrimSpace(rec[7]),
	}
	if s := strings.TrimSpace(rec[6]); s != "" {
		minStock, err := strconv.Atoi(s)
		if err != nil {
			return dto.CreateProductRequest{}, fmt.Errorf("stock_minimo: %w", err)
		}
		in.MinStock = &minStock
	}
	return in, nil
}

// parseAmount acepta "1.234,56" y "1234.56".
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}
