// Shared helpers for uniqueref CLI commands.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/reddishgreen/contentful-unique-references/internal/editor"
	"github.com/reddishgreen/contentful-unique-references/internal/sqlite"
	"github.com/reddishgreen/contentful-unique-references/pkg/types"
)

// openStore resolves the data directory and opens the SQLite store. The
// caller must defer store.Close().
func openStore() (*sqlite.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	store := sqlite.NewStore()
	err = store.Open(types.Config{Backend: types.BackendSQLite, DataDir: dataDir})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return store, nil
}

// parentID returns the effective parent record id (flag over config).
func parentID() (string, error) {
	if flagParent != "" {
		return flagParent, nil
	}
	if configParent != "" {
		return configParent, nil
	}
	return "", fmt.Errorf("no parent record configured (use --parent or set parent in config.yaml)")
}

// fieldID returns the effective field id (flag over config).
func fieldID() string {
	if flagField != "" {
		return flagField
	}
	return configField
}

// workingLocale returns the effective locale (flag over config).
func workingLocale() string {
	if flagLocale != "" {
		return flagLocale
	}
	return configLocale
}

// openEngine opens the store and assembles an engine over it. selectIDs
// and assumeYes parameterize the argument-driven dialogs. The caller must
// defer the returned cleanup.
func openEngine(ctx context.Context, selectIDs []string, assumeYes bool) (*editor.Engine, *sqlite.Store, func(), error) {
	store, err := openStore()
	if err != nil {
		return nil, nil, nil, err
	}
	parent, err := parentID()
	if err != nil {
		store.Close()
		return nil, nil, nil, err
	}

	eng := editor.New(editor.Deps{
		Store:    store,
		Registry: store.Types(),
		Field: &storeFieldHost{
			store:    store,
			parentID: parent,
			fieldID:  fieldID(),
			locale:   workingLocale(),
			allowed:  configAllowed,
		},
		Dialogs: &argDialogs{
			store:     store,
			selectIDs: selectIDs,
			assumeYes: assumeYes,
			in:        os.Stdin,
			out:       os.Stdout,
		},
		Nav:      printNavigator{},
		Notifier: stdNotifier{},
		ParentID: parent,
	})
	if err := eng.Open(ctx); err != nil {
		store.Close()
		return nil, nil, nil, err
	}
	cleanup := func() {
		eng.Close()
		store.Close()
	}
	return eng, store, cleanup, nil
}

// rowByPosition resolves a 1-based list position to its row.
func rowByPosition(ctx context.Context, eng *editor.Engine, pos int) (editor.Row, error) {
	rows := eng.Rows(ctx)
	if pos < 1 || pos > len(rows) {
		return editor.Row{}, fmt.Errorf("position %d out of range (list has %d entries)", pos, len(rows))
	}
	return rows[pos-1], nil
}

// printRows renders the collection as a table or JSON.
func printRows(ctx context.Context, eng *editor.Engine) error {
	rows := eng.Rows(ctx)
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	if len(rows) == 0 {
		fmt.Println("No entries linked.")
		return nil
	}
	for i, row := range rows {
		marker := " "
		if row.Duplicate {
			marker = "!"
		}
		status := row.Status
		if status == "" {
			status = "-"
		}
		fmt.Printf("%3d %s %-40q %-10s %s\n", i+1, marker, row.Title, status, row.TargetID)
	}
	return nil
}
