// ABOUTME: Basic example showing metadata extraction with the LinkMeta library
// ABOUTME: Demonstrates minimal configuration and common use cases

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"linkmeta-api/linkmeta"
)

func main() {
	// Example 1: Create a client with default configuration
	client, err := linkmeta.NewClient()
	if err != nil {
		log.Fatal("Failed to create client:", err)
	}
	defer client.Close()

	// Example 2: Extract metadata from a single page
	fmt.Println("=== Single Page ===")
	result, err := client.FetchAndExtract(context.Background(), "https://go.dev/",
		linkmeta.WithTimeout(3*time.Second),
		linkmeta.WithResponseHeaders(),
	)
	if err != nil {
		log.Printf("Error extracting metadata: %v\n", err)
	} else {
		fmt.Printf("Title: %s\n", result.Standard["title"])
		fmt.Printf("Favicon: %s\n", result.Standard["favicon"])
		fmt.Printf("OG image: %s\n", result.OG["image"])
	}

	// Example 3: Several pages at once, results in request order
	fmt.Println("\n=== Batch ===")
	items, err := client.FetchAndExtractBatch(context.Background(), []string{
		"https://go.dev/",
		"https://pkg.go.dev/",
		"not a url",
	})
	if err != nil {
		log.Fatal(err)
	}
	for _, item := range items {
		if item.Error != "" {
			fmt.Printf("- %s: %s\n", item.URL, item.Error)
			continue
		}
		fmt.Printf("- %s: %s\n", item.URL, item.Metadata.OG["title"])
	}

	// Example 4: Markup you already have
	fmt.Println("\n=== Inline Markup ===")
	inline := linkmeta.Extract(
		`<title>Inline</title><meta name="generator" content="hugo"><link rel="alternate" href="/feed.xml">`,
		"https://blog.example/post",
		linkmeta.WithAllMeta(),
	)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(inline)
}
