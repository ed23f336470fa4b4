package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"ai-grocery-assistant/internal/app"
	"ai-grocery-assistant/internal/config"
	"ai-grocery-assistant/internal/grocery"
	"ai-grocery-assistant/internal/mealplan"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Close()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "parse":
		parseCmd := flag.NewFlagSet("parse", flag.ExitOnError)
		save := parseCmd.Bool("save", false, "Save the parsed list")
		parseCmd.Parse(os.Args[2:])

		text := readInput(parseCmd.Args())
		result, err := application.ParseGroceryList(text, "cli", *save)
		if err != nil {
			log.Fatalf("Parse failed: %v", err)
		}
		printGroceryList(result)

	case "extract":
		text := readInput(os.Args[2:])
		result := application.ExtractMealPlan(text)
		printExtraction(result)

	case "import":
		importCmd := flag.NewFlagSet("import", flag.ExitOnError)
		user := importCmd.String("user", "cli", "User ID to attach the plan to")
		importCmd.Parse(os.Args[2:])
		if importCmd.NArg() < 1 {
			log.Fatal("Usage: ai-grocery-assistant import [-user id] <plan.json>")
		}

		raw, err := os.ReadFile(importCmd.Arg(0))
		if err != nil {
			log.Fatalf("Failed to read plan file: %v", err)
		}

		imported, validation, err := application.ImportMealPlan(ctx, *user, raw)
		if err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		if !validation.Success {
			fmt.Println("Plan rejected:")
			for _, e := range validation.Errors {
				fmt.Printf("  - %s\n", e)
			}
			os.Exit(1)
		}
		printImported(imported)

	case "plan":
		planCmd := flag.NewFlagSet("plan", flag.ExitOnError)
		days := planCmd.Int("days", 7, "Number of days to plan")
		servings := planCmd.Int("servings", 2, "Servings per meal")
		user := planCmd.String("user", "cli", "User ID to attach the plan to")
		planCmd.Parse(os.Args[2:])
		if planCmd.NArg() < 1 {
			log.Fatal("Usage: ai-grocery-assistant plan [flags] \"<request>\"")
		}

		request := strings.Join(planCmd.Args(), " ")
		fmt.Printf("Generating meal plan for: %q...\n", request)

		result, err := application.GeneratePlan(ctx, *user, request, *days, *servings)
		if err != nil {
			log.Fatalf("Plan generation failed: %v", err)
		}
		if result.UsedFallback {
			fmt.Println("(recovered from free-form model output)")
		}
		printImported(result.Plan)

	case "clip":
		clipCmd := flag.NewFlagSet("clip", flag.ExitOnError)
		publish := clipCmd.Bool("publish", false, "Publish the clipped plan to Ghost")
		clipCmd.Parse(os.Args[2:])
		if clipCmd.NArg() < 1 {
			log.Fatal("Usage: ai-grocery-assistant clip [-publish] <url>")
		}

		result, err := application.ClipURL(ctx, clipCmd.Arg(0), *publish)
		if err != nil {
			log.Fatalf("Clip failed: %v", err)
		}
		fmt.Printf("Clipped %d recipe(s) from %s\n", len(result.Recipes), result.SourceURL)
		for _, r := range result.Recipes {
			fmt.Printf("  - %s (%d ingredients)\n", r.Title, len(r.Ingredients))
		}
		if result.Post != nil {
			fmt.Printf("Published: %s\n", result.Post.URL)
		}

	case "lists":
		lists, err := application.SavedLists()
		if err != nil {
			log.Fatalf("Failed to load saved lists: %v", err)
		}
		if len(lists) == 0 {
			fmt.Println("No saved grocery lists.")
			return
		}
		for _, l := range lists {
			fmt.Printf("%s  %s  %d item(s)  source=%s\n",
				l.ID, l.SavedAt.Format("2006-01-02 15:04"), len(l.Items), l.Source)
		}

	case "usage":
		usageCmd := flag.NewFlagSet("usage", flag.ExitOnError)
		days := usageCmd.Int("days", 7, "Report usage for the last N days")
		usageCmd.Parse(os.Args[2:])

		usage, err := application.DailyUsage(*days)
		if err != nil {
			log.Fatalf("Failed to fetch usage: %v", err)
		}
		if len(usage) == 0 {
			fmt.Println("No model usage recorded.")
			return
		}
		for _, d := range usage {
			fmt.Printf("%s: %d prompt + %d completion tokens (%d calls)\n",
				d.Date, d.TotalPrompt, d.TotalCompletion, d.TotalCalls)
		}

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// readInput joins remaining args, or reads stdin when no args are given.
func readInput(args []string) string {
	if len(args) > 0 {
		return strings.Join(args, "\n")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatalf("Failed to read stdin: %v", err)
	}
	return string(data)
}

func printGroceryList(result app.ParsedList) {
	fmt.Printf("Parsed %d item(s)\n", len(result.Items))
	for category, items := range result.Grouped {
		fmt.Printf("\n[%s]\n", category)
		for _, item := range items {
			fmt.Print("  - ")
			if item.Quantity != nil {
				fmt.Printf("%g ", *item.Quantity)
			}
			if item.Unit != "" {
				fmt.Printf("%s ", item.Unit)
			}
			fmt.Println(item.ItemName)
		}
	}
	if result.SavedID != "" {
		fmt.Printf("\nSaved as %s\n", result.SavedID)
	}
}

func printExtraction(result mealplan.ExtractResult) {
	fmt.Printf("Found %d meal(s)", len(result.Recipes))
	if result.TotalRecipes > len(result.Recipes) {
		fmt.Printf(" of %d", result.TotalRecipes)
	}
	fmt.Println()
	for _, r := range result.Recipes {
		if r.Day != "" {
			fmt.Printf("  %s - %s (%s)\n", r.Day, r.Title, r.MealType)
		} else {
			fmt.Printf("  %s (%s)\n", r.Title, r.MealType)
		}
	}
}

func printImported(plan *mealplan.Imported) {
	fmt.Printf("\n=== %s ===\n", plan.Name)
	fmt.Printf("%d meals, %d ingredients\n", plan.TotalMeals, plan.TotalItems)

	for _, day := range mealplan.WeekOrder {
		meals, ok := plan.Days[day]
		if !ok {
			continue
		}
		fmt.Printf("\n%s:\n", day)
		for mealType, meal := range meals {
			fmt.Printf("  %-10s %s\n", mealType+":", meal.Name)
		}
	}

	fmt.Println("\n=== SHOPPING LIST ===")
	var lastCategory grocery.Category
	for _, item := range plan.ShoppingList.Items {
		if item.Category != lastCategory {
			fmt.Printf("[%s]\n", item.Category)
			lastCategory = item.Category
		}
		fmt.Print("  - ")
		if item.Quantity > 0 {
			fmt.Printf("%g ", item.Quantity)
		}
		if item.Unit != "" {
			fmt.Printf("%s ", item.Unit)
		}
		fmt.Println(item.Name)
	}
}

func printUsage() {
	fmt.Println("Usage: ai-grocery-assistant <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  parse      Parse a grocery list from args or stdin")
	fmt.Println("  extract    Extract recipes from meal-plan text on stdin")
	fmt.Println("  import     Import a structured meal-plan JSON file")
	fmt.Println("  plan       Generate a meal plan from a request")
	fmt.Println("  clip       Extract recipes from a web page")
	fmt.Println("  lists      Show saved grocery lists")
	fmt.Println("  usage      Show recent model token usage")
}
