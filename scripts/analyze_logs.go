package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

type LogStats struct {
	TotalErrors        int
	LoginSuccess       int
	LoginFailures      int
	WebhooksReceived   int
	WebhookDuplicates  int
	DonationsCredited  int
	OwnershipDenials   int
	UserActivities     map[string]int
	ErrorPatterns      map[string]int
}

func main() {
	// Get today's date for log file names
	today := time.Now().Format("2006-01-02")
	logDir := "./logs"

	// Initialize stats
	stats := &LogStats{
		UserActivities: make(map[string]int),
		ErrorPatterns:  make(map[string]int),
	}

	// Analyze error logs
	analyzeErrorLogs(filepath.Join(logDir, fmt.Sprintf("error-%s.log", today)), stats)

	// Analyze info logs
	analyzeInfoLogs(filepath.Join(logDir, fmt.Sprintf("info-%s.log", today)), stats)

	// Print report
	printReport(stats)
}

func analyzeErrorLogs(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		stats.TotalErrors++

		// Count login failures
		if strings.Contains(line, "Login attempt failed") {
			stats.LoginFailures++
			extractUserActivity(line, stats)
		}

		// Count ownership denials
		if strings.Contains(line, "attempted to update") || strings.Contains(line, "attempted to delete") ||
			strings.Contains(line, "attempted to create campaign") || strings.Contains(line, "attempted to export") {
			stats.OwnershipDenials++
		}

		// Extract error patterns
		extractErrorPattern(line, stats)
	}
}

func analyzeInfoLogs(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()

		// Count successful logins
		if strings.Contains(line, "User logged in successfully") {
			stats.LoginSuccess++
			extractUserActivity(line, stats)
		}

		// Count webhook traffic and reconciliation outcomes
		if strings.Contains(line, "webhook received") {
			stats.WebhooksReceived++
		}
		if strings.Contains(line, "duplicate delivery") {
			stats.WebhookDuplicates++
		}
		if strings.Contains(line, "credited to campaign") || strings.Contains(line, "Recorded donation") {
			stats.DonationsCredited++
		}
	}
}

func extractUserActivity(line string, stats *LogStats) {
	// Extract email from log line
	emailRegex := regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	if email := emailRegex.FindString(line); email != "" {
		stats.UserActivities[email]++
	}
}

func extractErrorPattern(line string, stats *LogStats) {
	// Extract the main error message
	parts := strings.Split(line, ":")
	if len(parts) > 1 {
		errorMsg := strings.TrimSpace(parts[1])
		stats.ErrorPatterns[errorMsg]++
	}
}

func printReport(stats *LogStats) {
	fmt.Println("\n=== Log Analysis Report ===")
	fmt.Println("Generated:", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Println("\n1. Authentication Statistics:")
	fmt.Printf("   Successful Logins: %d\n", stats.LoginSuccess)
	fmt.Printf("   Failed Logins: %d\n", stats.LoginFailures)

	fmt.Println("\n2. Payment Reconciliation:")
	fmt.Printf("   Webhooks Received: %d\n", stats.WebhooksReceived)
	fmt.Printf("   Duplicate Deliveries: %d\n", stats.WebhookDuplicates)
	fmt.Printf("   Donations Credited: %d\n", stats.DonationsCredited)

	fmt.Println("\n3. Access Control:")
	fmt.Printf("   Ownership Denials: %d\n", stats.OwnershipDenials)

	fmt.Println("\n4. Error Statistics:")
	fmt.Printf("   Total Errors: %d\n", stats.TotalErrors)

	fmt.Println("\n5. Most Active Users:")
	printTopUsers(stats.UserActivities, 5)

	fmt.Println("\n6. Most Common Errors:")
	printTopErrors(stats.ErrorPatterns, 5)
}

func printTopUsers(users map[string]int, limit int) {
	type userActivity struct {
		email string
		count int
	}

	var activities []userActivity
	for email, count := range users {
		activities = append(activities, userActivity{email, count})
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].count > activities[j].count
	})

	for i, activity := range activities {
		if i >= limit {
			break
		}
		fmt.Printf("   %s: %d activities\n", activity.email, activity.count)
	}
}

func printTopErrors(errors map[string]int, limit int) {
	type errorCount struct {
		error string
		count int
	}

	var errorList []errorCount
	for err, count := range errors {
		errorList = append(errorList, errorCount{err, count})
	}

	sort.Slice(errorList, func(i, j int) bool {
		return errorList[i].count > errorList[j].count
	})

	for i, err := range errorList {
		if i >= limit {
			break
		}
		fmt.Printf("   %s: %d occurrences\n", err.error, err.count)
	}
}
