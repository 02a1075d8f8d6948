// cmd/tools/registry-check/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	apperrors "topic-communities/internal/common/errors"
	"topic-communities/internal/common/validation"
	"topic-communities/internal/suggest"
	"topic-communities/pkg/registry"

	rc "topic-communities/internal/workers/topic/resolve-communities"
	stw "topic-communities/internal/workers/topic/search-topics"
)

// requiredTaskTypes are the activities the service loads contracts for.
var requiredTaskTypes = []string{stw.TaskType, rc.TaskType, suggest.TaskType}

var knownCodes = func() map[string]bool {
	known := make(map[string]bool, len(apperrors.BPMNErrorMapping))
	for _, code := range apperrors.BPMNErrorMapping {
		known[code] = true
	}
	return known
}()

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	validatePath := validateCmd.String("path", "", "Registry file (default: embedded registry)")

	listCmd := flag.NewFlagSet("list", flag.ExitOnError)
	listPath := listCmd.String("path", "", "Registry file (default: embedded registry)")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		if err := validateRegistry(*validatePath); err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Registry validation passed.")

	case "list":
		listCmd.Parse(os.Args[2:])
		if err := listActivities(*listPath); err != nil {
			fmt.Printf("Error listing activities: %v\n", err)
			os.Exit(1)
		}

	case "help":
		fallthrough
	default:
		help()
	}
}

// validateRegistry checks that every required activity is present and that
// its schemas compile.
func validateRegistry(path string) error {
	reg, err := registry.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	seen := make(map[string]bool, len(reg.Activities))
	for _, a := range reg.Activities {
		if a.ID == "" || a.TaskType == "" {
			return fmt.Errorf("activity %q is missing id or taskType", a.DisplayName)
		}
		if seen[a.TaskType] {
			return fmt.Errorf("duplicate taskType %s", a.TaskType)
		}
		seen[a.TaskType] = true

		if _, err := a.TimeoutDuration(); err != nil {
			return err
		}
		for _, code := range a.ErrorCodes {
			if !knownCodes[code] {
				return fmt.Errorf("activity %s declares unknown error code %s", a.TaskType, code)
			}
		}
	}

	for _, taskType := range requiredTaskTypes {
		if _, err := validation.NewContract(reg, taskType); err != nil {
			return err
		}
	}
	return nil
}

func listActivities(path string) error {
	reg, err := registry.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	activities := append([]registry.Activity(nil), reg.Activities...)
	sort.Slice(activities, func(i, j int) bool { return activities[i].TaskType < activities[j].TaskType })

	fmt.Printf("Registry %s (updated %s)\n", reg.Version, reg.LastUpdated)
	for _, a := range activities {
		fmt.Printf("  %-22s %-10s retries=%d timeout=%s\n", a.TaskType, a.ImplementationStatus, a.Retries, a.Timeout)
	}
	return nil
}

func help() {
	fmt.Println("Usage: registry-check <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  validate  Check that the registry holds every activity the service needs")
	fmt.Println("  list      Print the registered activities")
}
