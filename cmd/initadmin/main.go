// Command initadmin creates the default admin account in the data directory
// if it does not exist yet.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/settingskeeper/internal/logging"
	"github.com/dmitrijs2005/settingskeeper/internal/server/admin"
	"github.com/dmitrijs2005/settingskeeper/internal/server/config"
	"github.com/dmitrijs2005/settingskeeper/internal/server/repositories/repomanager"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	opts := admin.ParseOptions()

	fmt.Println("Initializing default admin user...")
	fmt.Println(strings.Repeat("-", 50))

	m, err := repomanager.NewCSVRepositoryManager(ctx, cfg.DataDir, logging.Nop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "storage init error: %v\n", err)
		os.Exit(1)
	}

	if _, err := admin.Seed(ctx, m.Users(), opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating admin user: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(strings.Repeat("-", 50))
}
