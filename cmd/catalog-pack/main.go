// Command catalog-pack validates a catalog file and packs it into the
// compressed form the storefront loads at startup.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"

	"github.com/xenking/mobile-zone/catalogdata"
	"github.com/xenking/mobile-zone/internal/domain/catalog"
)

func main() {
	var (
		in  string
		out string
	)
	flag.StringVar(&in, "in", "catalogdata/products.json", "input catalog file (.json or .json.gz)")
	flag.StringVar(&out, "out", "products.json.gz", "output packed catalog file")
	flag.Parse()

	if err := run(in, out); err != nil {
		slog.Error("catalog pack failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(in, out string) error {
	products, err := catalogdata.LoadFile(in)
	if err != nil {
		return errors.Wrap(err, "load catalog")
	}

	// Building the store runs full validation: ids unique, prices positive,
	// categories known.
	store, err := catalog.NewStore(products)
	if err != nil {
		return errors.Wrap(err, "validate catalog")
	}
	slog.Info("catalog validated", slog.Int("products", store.Len()))

	f, err := os.Create(out)
	if err != nil {
		return errors.Wrapf(err, "create %s", out)
	}
	defer func() { _ = f.Close() }()

	gz := pgzip.NewWriter(f)
	if _, err := gz.Write(catalogdata.Encode(store.All())); err != nil {
		return errors.Wrap(err, "write packed catalog")
	}
	if err := gz.Close(); err != nil {
		return errors.Wrap(err, "flush packed catalog")
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "close %s", out)
	}

	slog.Info("catalog packed", slog.String("out", out))
	return nil
}
