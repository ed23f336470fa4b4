package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"ai-grocery-assistant/internal/clipper"
	"ai-grocery-assistant/internal/config"
	"ai-grocery-assistant/internal/database"
	"ai-grocery-assistant/internal/ghost"
	"ai-grocery-assistant/internal/grocery"
	"ai-grocery-assistant/internal/llm"
	"ai-grocery-assistant/internal/mealplan"
	"ai-grocery-assistant/internal/metrics"
	"ai-grocery-assistant/internal/planner"
	"ai-grocery-assistant/internal/shopping"
	"ai-grocery-assistant/internal/storage"
)

// App holds the application's dependencies and exposes its operations to the
// CLI and the Telegram bot.
type App struct {
	cfg *config.Config
	db  *database.DB

	textGen      llm.TextGenerator
	ghostClient  ghost.Client
	mealPlanner  *planner.Planner
	planClipper  *clipper.Clipper
	planRepo     *planner.PlanRepository
	shoppingRepo *shopping.Repository
	metricsStore *metrics.Store
	listStore    *storage.ListStore
}

// NewApp wires the application together from configuration.
func NewApp(cfg *config.Config) (*App, error) {
	textGen, err := newTextGenerator(cfg)
	if err != nil {
		return nil, err
	}

	var ghostClient ghost.Client
	if cfg.PublishingEnabled() {
		ghostClient = ghost.NewClient(cfg)
	}

	return NewAppWithClients(cfg, textGen, ghostClient)
}

// newTextGenerator builds the model client selected by cfg.LLMProvider.
func newTextGenerator(cfg *config.Config) (llm.TextGenerator, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		return llm.NewGeminiClient(context.Background(), cfg)
	default:
		return llm.NewGroqClient(cfg, llm.GroqModelVersatile, 0.1, true), nil
	}
}

// NewAppWithClients wires the application with the given model and publishing
// clients. Tests use it to inject mocks.
func NewAppWithClients(cfg *config.Config, textGen llm.TextGenerator, ghostClient ghost.Client) (*App, error) {
	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	listStore, err := storage.NewListStore(cfg.ListStorePath)
	if err != nil {
		db.Close()
		return nil, err
	}

	planRepo := planner.NewPlanRepository(db.SQL)

	return &App{
		cfg:          cfg,
		db:           db,
		textGen:      textGen,
		ghostClient:  ghostClient,
		mealPlanner:  planner.NewPlanner(textGen, planRepo),
		planClipper:  clipper.NewClipper(ghostClient, textGen),
		planRepo:     planRepo,
		shoppingRepo: shopping.NewRepository(db.SQL),
		metricsStore: metrics.NewStore(db.SQL),
		listStore:    listStore,
	}, nil
}

// Close releases the model client (when it holds a connection) and the
// database.
func (a *App) Close() error {
	if closer, ok := a.textGen.(llm.Closer); ok {
		if err := closer.Close(); err != nil {
			log.Printf("Warning: failed to close model client: %v", err)
		}
	}
	return a.db.Close()
}

// ParsedList is the result of parsing free-form grocery text.
type ParsedList struct {
	Items   []grocery.ParsedItem
	Grouped map[grocery.Category][]grocery.ParsedItem
	SavedID string
}

// ParseGroceryList parses free-form grocery text into categorized items and
// optionally persists the result to the list store.
func (a *App) ParseGroceryList(text, source string, save bool) (ParsedList, error) {
	items := grocery.ParseList(text)
	result := ParsedList{
		Items:   items,
		Grouped: grocery.GroupByCategory(items),
	}

	if save && len(items) > 0 {
		saved, err := a.listStore.Save(source, items)
		if err != nil {
			return result, fmt.Errorf("failed to save grocery list: %w", err)
		}
		result.SavedID = saved.ID
	}
	return result, nil
}

// ExtractMealPlan runs the narrative extractor over free-form meal-plan text.
func (a *App) ExtractMealPlan(text string) mealplan.ExtractResult {
	return mealplan.ExtractNarrative(text)
}

// ImportMealPlan validates and imports a structured meal-plan JSON document.
// Validation failures are returned in the ValidationResult, not as an error.
func (a *App) ImportMealPlan(ctx context.Context, userID string, raw []byte) (*mealplan.Imported, mealplan.ValidationResult, error) {
	var doc mealplan.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, mealplan.ValidationResult{}, fmt.Errorf("invalid meal plan JSON: %w", err)
	}

	validation := mealplan.Validate(doc)
	if !validation.Success {
		return nil, validation, nil
	}

	imported := mealplan.Import(doc, userID)

	if err := a.planRepo.Save(ctx, imported); err != nil {
		return nil, validation, fmt.Errorf("failed to save imported plan: %w", err)
	}
	if err := a.shoppingRepo.Save(ctx, imported.ID, imported.ShoppingList); err != nil {
		return nil, validation, fmt.Errorf("failed to save shopping list: %w", err)
	}

	return imported, validation, nil
}

// GeneratePlan asks the model for a meal plan, imports it and persists the
// derived shopping list.
func (a *App) GeneratePlan(ctx context.Context, userID, request string, days, servings int) (planner.Result, error) {
	result, err := a.mealPlanner.GeneratePlan(ctx, userID, request, days, servings)

	// Token usage is recorded even when generation failed downstream.
	if result.Meta.Usage.TotalTokens > 0 {
		if recErr := a.metricsStore.RecordMeta(result.Meta); recErr != nil {
			log.Printf("Warning: failed to record planner metrics: %v", recErr)
		}
	}
	if err != nil {
		return result, err
	}

	if err := a.shoppingRepo.Save(ctx, result.Plan.ID, result.Plan.ShoppingList); err != nil {
		log.Printf("Warning: failed to save shopping list for plan %s: %v", result.Plan.ID, err)
	}
	return result, nil
}

// ClipURL extracts recipes from a web page. Publishing requires Ghost
// credentials; without them the extraction still runs.
func (a *App) ClipURL(ctx context.Context, url string, publish bool) (*clipper.ClipResult, error) {
	if publish && a.ghostClient == nil {
		return nil, fmt.Errorf("publishing requested but Ghost credentials are not configured")
	}

	result, err := a.planClipper.ClipURL(ctx, url, publish)
	if result != nil && result.UsedLLM {
		if recErr := a.metricsStore.RecordMeta(result.Meta); recErr != nil {
			log.Printf("Warning: failed to record clipper metrics: %v", recErr)
		}
	}
	return result, err
}

// RecentPlans lists the newest stored plans for a user.
func (a *App) RecentPlans(ctx context.Context, userID string, limit int) ([]planner.StoredPlan, error) {
	return a.planRepo.ListRecentByUserID(ctx, userID, limit)
}

// SavedLists returns every stored grocery-list export, newest first.
func (a *App) SavedLists() ([]storage.SavedList, error) {
	return a.listStore.ListAll()
}

// ShoppingListForPlan loads the stored shopping list of a plan.
func (a *App) ShoppingListForPlan(ctx context.Context, planID string) (*shopping.StoredList, error) {
	return a.shoppingRepo.GetByPlanID(ctx, planID)
}

// DailyUsage reports model token usage for the last N days.
func (a *App) DailyUsage(days int) ([]metrics.DailyUsage, error) {
	return a.metricsStore.GetDailyUsage(days)
}

// DataPath returns the list-store directory, used for the health report.
func (a *App) DataPath() string {
	return a.cfg.ListStorePath
}
