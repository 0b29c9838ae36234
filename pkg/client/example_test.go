package client_test

import (
	"context"
	"fmt"
	"log"

	"github.com/theshadowable/iws-sh/pkg/client"
)

// Example demonstrates basic usage of the client
func Example() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.iws.example.com",
		Token:   "eyJhbGciOi...",
	})

	ctx := context.Background()

	// List unread alerts
	page, err := c.Alerts().List(ctx, &client.AlertListOptions{Status: "unread"})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Found %d unread alerts\n", page.TotalItems)
}

// ExampleLeakService_Detect demonstrates running leak detection for a device
func ExampleLeakService_Detect() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.iws.example.com",
		Token:   "eyJhbGciOi...",
	})

	analysis, err := c.Leaks().Detect(context.Background(), "DEV-001")
	if err != nil {
		log.Fatal(err)
	}

	if analysis.InsufficientData {
		fmt.Println("Not enough readings to classify")
		return
	}
	if analysis.LeakDetected {
		fmt.Printf("Leak detected: %s, avg %.2f m3/h vs baseline %.2f m3/h\n",
			analysis.Severity, analysis.AvgRate, analysis.Baseline)
	}
}

// ExampleTipService_Generate demonstrates generating water saving tips
func ExampleTipService_Generate() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.iws.example.com",
		Token:   "eyJhbGciOi...",
	})

	tips, err := c.Tips().Generate(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	for _, t := range tips {
		fmt.Printf("[%s] %s\n", t.Category, t.Title)
	}
}
