package cmd

import (
	"fmt"
	"os"

	"github.com/Alex-H307/cafe-system/integrity"
	"github.com/Alex-H307/cafe-system/loader"
	"github.com/Alex-H307/cafe-system/schema"
	"github.com/Alex-H307/cafe-system/store"
)

// app is what every data command needs: the catalog, the store and the
// foreign-key checker over both.
type app struct {
	registry *schema.Registry
	store    *store.Store
	checker  *integrity.Checker
}

func openApp() (*app, error) {
	registry, err := loader.LoadRegistry(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	st := store.New(storePath)
	return &app{
		registry: registry,
		store:    st,
		checker:  integrity.New(registry, st),
	}, nil
}

func mustOpenApp() *app {
	a, err := openApp()
	if err != nil {
		fail(err)
	}
	return a
}

func (a *app) model(identifier string) schema.Model {
	m, err := a.registry.Resolve(identifier)
	if err != nil {
		fail(err)
	}
	return m
}

func fail(err error) {
	fmt.Println("❌", err)
	os.Exit(1)
}
