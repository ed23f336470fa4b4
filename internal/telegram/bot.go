package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"ai-grocery-assistant/internal/app"
	"ai-grocery-assistant/internal/config"
	"ai-grocery-assistant/internal/grocery"
	"ai-grocery-assistant/internal/mealplan"
	"ai-grocery-assistant/internal/metrics"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Telegram API around the application's operations.
type Bot struct {
	api *tgbotapi.BotAPI
	app *app.App
	cfg *config.Config
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, application *app.App) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", botAPI.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := botAPI.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api: botAPI,
		app: application,
		cfg: cfg,
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil || update.Message.Text == "" {
		return
	}

	isAllowed := false
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if update.Message.From.ID == id {
			isAllowed = true
			break
		}
	}
	if !isAllowed {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

// mealPlanHint detects free-form meal-plan text so it is routed to the
// extractor instead of the grocery parser.
var mealPlanHint = regexp.MustCompile(`(?im)^[-•*]?\s*(breakfast|lunch|dinner|snacks?)\s*:`)

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)

	switch {
	case text == "/start" || text == "/help":
		b.reply(msg.Chat.ID, helpText)
	case text == "/metrics":
		b.handleMetrics(msg.Chat.ID)
	case strings.HasPrefix(text, "/plan"):
		b.handlePlan(msg, strings.TrimSpace(strings.TrimPrefix(text, "/plan")))
	case strings.HasPrefix(text, "/import"):
		b.handleImport(msg, strings.TrimSpace(strings.TrimPrefix(text, "/import")))
	case strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://"):
		b.handleClip(msg)
	case mealPlanHint.MatchString(text):
		b.handleExtract(msg)
	default:
		b.handleGroceryList(msg)
	}
}

const helpText = `🛒 *Grocery Assistant*

Send me a grocery list and I will sort it by store section.
Paste a meal plan (with Breakfast/Lunch/Dinner lines) and I will pull out the recipes.

Commands:
/plan <request> - generate a weekly meal plan
/import <json> - import a structured meal plan
/metrics - usage report`

func (b *Bot) handleGroceryList(msg *tgbotapi.Message) {
	result, err := b.app.ParseGroceryList(msg.Text, "telegram", true)
	if err != nil {
		b.replyError(msg.Chat.ID, "parsing your list", err)
		return
	}
	if len(result.Items) == 0 {
		b.reply(msg.Chat.ID, "I could not find any items in that message. Send one item per line, or use /help.")
		return
	}

	b.reply(msg.Chat.ID, formatGroceryList(result.Grouped))
}

func (b *Bot) handleExtract(msg *tgbotapi.Message) {
	result := b.app.ExtractMealPlan(msg.Text)
	if len(result.Recipes) == 0 {
		b.reply(msg.Chat.ID, "That looked like a meal plan, but I could not find any meals in it.")
		return
	}
	b.reply(msg.Chat.ID, formatExtraction(result))
}

func (b *Bot) handleImport(msg *tgbotapi.Message, raw string) {
	if raw == "" {
		b.reply(msg.Chat.ID, "Send the plan JSON after the command: `/import {\"mealPlan\": ...}`")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userID := fmt.Sprintf("%d", msg.From.ID)
	imported, validation, err := b.app.ImportMealPlan(ctx, userID, []byte(raw))
	if err != nil {
		b.replyError(msg.Chat.ID, "importing your plan", err)
		return
	}
	if !validation.Success {
		b.reply(msg.Chat.ID, "❌ *Plan rejected:*\n• "+strings.Join(validation.Errors, "\n• "))
		return
	}

	b.reply(msg.Chat.ID, formatImported(imported))
}

func (b *Bot) handlePlan(msg *tgbotapi.Message, request string) {
	if request == "" {
		b.reply(msg.Chat.ID, "Tell me what to plan: `/plan cheap vegetarian dinners`")
		return
	}

	statusMsg, err := b.sendStatus(msg.Chat.ID, "🧑‍🍳 *Thinking...* \n(Generating your meal plan)")
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	userID := fmt.Sprintf("%d", msg.From.ID)
	result, err := b.app.GeneratePlan(ctx, userID, request, 7, 2)
	if err != nil {
		b.editError(msg.Chat.ID, statusMsg.MessageID, "generating your plan", err)
		return
	}

	b.edit(msg.Chat.ID, statusMsg.MessageID, formatImported(result.Plan))

	// Shopping list goes out as a second message so it can be forwarded on
	// its own.
	b.reply(msg.Chat.ID, formatShoppingList(result.Plan.ShoppingList))
}

func (b *Bot) handleClip(msg *tgbotapi.Message) {
	statusMsg, err := b.sendStatus(msg.Chat.ID, "✂️ *Clipping...* \n(Fetching and extracting recipes)")
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	publish := b.cfg.PublishingEnabled()
	result, err := b.app.ClipURL(ctx, msg.Text, publish)
	if err != nil {
		b.editError(msg.Chat.ID, statusMsg.MessageID, "clipping that page", err)
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "✅ *Clipped %d recipe(s)*\n\n", len(result.Recipes))
	for _, r := range result.Recipes {
		fmt.Fprintf(&sb, "• %s", r.Title)
		if r.MealType != "" {
			fmt.Fprintf(&sb, " _(%s)_", r.MealType)
		}
		sb.WriteString("\n")
	}
	if result.Post != nil {
		fmt.Fprintf(&sb, "\n📝 Published: %s", result.Post.URL)
	}
	b.edit(msg.Chat.ID, statusMsg.MessageID, sb.String())
}

func (b *Bot) handleMetrics(chatID int64) {
	usage, err := b.app.DailyUsage(7)
	if err != nil {
		b.replyError(chatID, "fetching metrics", err)
		return
	}

	health := metrics.GetSysHealth(b.app.DataPath())

	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent LLM Activity*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		fmt.Fprintf(&sb, "• *%s*: %d tokens (%d calls)\n", d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalCalls)
	}

	sb.WriteString("\n🧠 *System Health*\n")
	fmt.Fprintf(&sb, "• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB)
	fmt.Fprintf(&sb, "• Goroutines: %d\n", health.Goroutines)
	fmt.Fprintf(&sb, "• Disk Data: %s\n", health.DataDirSize)

	b.reply(chatID, sb.String())
}

// --- formatting ---

var categoryEmoji = map[grocery.Category]string{
	grocery.CategoryDairy:   "🥛",
	grocery.CategoryBakery:  "🍞",
	grocery.CategoryProduce: "🥦",
	grocery.CategoryMeat:    "🍗",
	grocery.CategoryPantry:  "🥫",
	grocery.CategoryFrozen:  "🧊",
	grocery.CategoryOther:   "🧺",
}

// categoryOrder fixes the display order of the reply sections.
var categoryOrder = []grocery.Category{
	grocery.CategoryProduce,
	grocery.CategoryMeat,
	grocery.CategoryDairy,
	grocery.CategoryBakery,
	grocery.CategoryPantry,
	grocery.CategoryFrozen,
	grocery.CategoryOther,
}

func formatGroceryList(grouped map[grocery.Category][]grocery.ParsedItem) string {
	var sb strings.Builder
	sb.WriteString("🛒 *Your Grocery List*\n")

	for _, cat := range categoryOrder {
		items := grouped[cat]
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n%s *%s*\n", categoryEmoji[cat], strings.Title(string(cat)))
		for _, item := range items {
			sb.WriteString("• ")
			if item.Quantity != nil {
				fmt.Fprintf(&sb, "%g ", *item.Quantity)
			}
			if item.Unit != "" {
				fmt.Fprintf(&sb, "%s ", item.Unit)
			}
			sb.WriteString(item.ItemName)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func formatExtraction(result mealplan.ExtractResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 *Found %d meal(s)*", len(result.Recipes))
	if result.TotalRecipes > len(result.Recipes) {
		fmt.Fprintf(&sb, " _(of %d)_", result.TotalRecipes)
	}
	sb.WriteString("\n\n")

	for _, r := range result.Recipes {
		if r.Day != "" {
			fmt.Fprintf(&sb, "*%s* - ", r.Day)
		}
		fmt.Fprintf(&sb, "%s", r.Title)
		if r.MealType != "" {
			fmt.Fprintf(&sb, " _(%s)_", r.MealType)
		}
		sb.WriteString("\n")
		if len(r.Ingredients) > 0 {
			fmt.Fprintf(&sb, "  %d ingredient(s)\n", len(r.Ingredients))
		}
	}
	return sb.String()
}

func formatImported(plan *mealplan.Imported) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "✅ *%s*\n%d meals, %d ingredients\n", plan.Name, plan.TotalMeals, plan.TotalItems)

	weekdays := map[string]bool{}
	for _, day := range mealplan.WeekOrder {
		weekdays[day] = true
		if meals, ok := plan.Days[day]; ok {
			writeDay(&sb, day, meals)
		}
	}

	// Days with non-weekday labels come after the regular week.
	var extra []string
	for day := range plan.Days {
		if !weekdays[day] {
			extra = append(extra, day)
		}
	}
	sort.Strings(extra)
	for _, day := range extra {
		writeDay(&sb, day, plan.Days[day])
	}
	return sb.String()
}

func writeDay(sb *strings.Builder, day string, meals map[string]mealplan.NormalizedMeal) {
	fmt.Fprintf(sb, "\n*%s*\n", day)

	var types []string
	for mealType := range meals {
		types = append(types, mealType)
	}
	sort.Strings(types)
	for _, mealType := range types {
		fmt.Fprintf(sb, "• %s: %s\n", mealType, meals[mealType].Name)
	}
}

func formatShoppingList(list mealplan.ShoppingList) string {
	var sb strings.Builder
	sb.WriteString("🛒 *Shopping List*\n")

	var lastCategory grocery.Category
	for _, item := range list.Items {
		if item.Category != lastCategory {
			fmt.Fprintf(&sb, "\n%s *%s*\n", categoryEmoji[item.Category], strings.Title(string(item.Category)))
			lastCategory = item.Category
		}
		sb.WriteString("• ")
		if item.Quantity > 0 {
			fmt.Fprintf(&sb, "%g ", item.Quantity)
		}
		if item.Unit != "" {
			fmt.Fprintf(&sb, "%s ", item.Unit)
		}
		sb.WriteString(item.Name)
		sb.WriteString("\n")
	}
	return sb.String()
}

// --- send helpers ---

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func (b *Bot) sendStatus(chatID int64, text string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	sent, err := b.api.Send(msg)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
	}
	return sent, err
}

func (b *Bot) edit(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = "Markdown"
	if _, err := b.api.Send(edit); err != nil {
		log.Printf("Failed to edit message: %v", err)
	}
}

func (b *Bot) replyError(chatID int64, action string, err error) {
	log.Printf("Error %s: %v", action, err)
	safeErr := strings.ReplaceAll(err.Error(), "`", "'")
	b.reply(chatID, fmt.Sprintf("❌ *Error %s:*\n```\n%v\n```", action, safeErr))
}

func (b *Bot) editError(chatID int64, messageID int, action string, err error) {
	log.Printf("Error %s: %v", action, err)
	safeErr := strings.ReplaceAll(err.Error(), "`", "'")
	b.edit(chatID, messageID, fmt.Sprintf("❌ *Error %s:*\n```\n%v\n```", action, safeErr))
}
