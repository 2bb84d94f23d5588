// The uploader is the admin batch-upload tool. It keeps the original bytes
// local: metadata extraction and variant generation happen here, and every
// storage write goes directly to object storage through a presigned URL.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Jophkins/lastshoot/internal/uploader"
)

func main() {
	_ = godotenv.Load()

	serverURL := flag.String("server", envOr("LASTSHOOT_SERVER", "http://localhost:8080"), "portfolio API base URL")
	username := flag.String("user", os.Getenv("ADMIN_USERNAME"), "admin username")
	password := flag.String("pass", os.Getenv("ADMIN_PASSWORD"), "admin password")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: uploader [flags] image...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	client := uploader.NewClient(*serverURL)
	if err := client.Login(ctx, *username, *password); err != nil {
		log.Fatalf("Login failed: %v", err)
	}

	batch := uploader.NewBatch(client, logger)
	batch.Add(files...)
	batch.Run(ctx)

	failed := 0
	for _, item := range batch.Items() {
		if item.Status == uploader.StatusError {
			failed++
			fmt.Printf("%-40s  ERROR  %s\n", item.Path, item.Err)
		} else {
			fmt.Printf("%-40s  %s\n", item.Path, item.Status)
		}
	}

	if failed > 0 {
		fmt.Printf("%d of %d uploads failed; re-run to retry failed items\n", failed, len(batch.Items()))
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
