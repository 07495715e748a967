package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"attractions/internal/client"
	"attractions/internal/config"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpText = `Команды оператора:
/add название; провинция; город; широта; долгота[; категория[; описание]]
/rename <ид> <новое название>
/delete <ид>
/reset: перезалить исходные данные
/users: пользователи
/complete <ид пользователя> <ид впечатления>
/demo: содержимое demotable
/demo_add <ид> <имя>
/demo_rename <старое имя> <новое имя>
/demo_count`

func main() {
	cfg := config.Load(".env")

	if cfg.AdminBotToken == "" {
		log.Fatal("Не указан токен бота оператора (ADMIN_BOT_TOKEN)")
	}
	if len(cfg.AdminChatIDs) == 0 {
		log.Println("ADMIN_CHAT_IDS пуст: бот не будет выполнять команды")
	}
	bot, err := tgbotapi.NewBotAPI(cfg.AdminBotToken)
	if err != nil {
		log.Fatal("Ошибка инициализации бота оператора:", err)
	}
	log.Printf("Запущен бот оператора %s", bot.Self.UserName)

	api := client.New(cfg.APIURL)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}
		msg := update.Message
		chatID := msg.Chat.ID

		if !allowed(cfg.AdminChatIDs, chatID) {
			bot.Send(tgbotapi.NewMessage(chatID, "Команда недоступна."))
			continue
		}
		if !msg.IsCommand() {
			bot.Send(tgbotapi.NewMessage(chatID, helpText))
			continue
		}

		reply := handleCommand(api, msg.Command(), msg.CommandArguments())
		bot.Send(tgbotapi.NewMessage(chatID, reply))
	}
}

// handleCommand выполняет команду оператора и возвращает текст ответа.
func handleCommand(api *client.Client, command, args string) string {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch command {
	case "add":
		a, err := parseNewAttraction(args)
		if err != nil {
			return "Использование: /add название; провинция; город; широта; долгота[; категория[; описание]]"
		}
		id, err := api.AddAttraction(ctx, a)
		if err != nil {
			return errorText(err)
		}
		return fmt.Sprintf("Добавлено: #%d %s", id, client.Sanitize(a.Name))

	case "rename":
		id, name, err := parseIDAndText(args)
		if err != nil {
			return "Использование: /rename <ид> <новое название>"
		}
		if err := api.UpdateAttraction(ctx, client.AttractionUpdate{ID: id, Name: name}); err != nil {
			return errorText(err)
		}
		return "Название изменено."

	case "delete":
		id, err := strconv.Atoi(strings.TrimSpace(args))
		if err != nil {
			return "Использование: /delete <ид>"
		}
		if err := api.DeleteAttraction(ctx, id); err != nil {
			return errorText(err)
		}
		return fmt.Sprintf("Достопримечательность #%d удалена.", id)

	case "reset":
		all, err := api.Repopulate(ctx)
		if err != nil {
			return errorText(err)
		}
		return fmt.Sprintf("Данные перезалиты, достопримечательностей: %d", len(all))

	case "users":
		users, err := api.Users(ctx)
		if err != nil {
			return errorText(err)
		}
		var b strings.Builder
		for _, u := range users {
			fmt.Fprintf(&b, "%d %s\n", u.ID, u.Name)
		}
		return b.String()

	case "complete":
		fields := strings.Fields(args)
		if len(fields) != 2 {
			return "Использование: /complete <ид пользователя> <ид впечатления>"
		}
		userID, err1 := strconv.Atoi(fields[0])
		experienceID, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil {
			return "Использование: /complete <ид пользователя> <ид впечатления>"
		}
		if err := api.CompleteExperience(ctx, userID, experienceID); err != nil {
			return errorText(err)
		}
		return "Впечатление отмечено."

	case "demo":
		rows, err := api.Demotable(ctx)
		if err != nil {
			return errorText(err)
		}
		if len(rows) == 0 {
			return "demotable пуста."
		}
		var b strings.Builder
		for _, r := range rows {
			fmt.Fprintf(&b, "%d %s\n", r.ID, r.Name)
		}
		return b.String()

	case "demo_add":
		id, name, err := parseIDAndText(args)
		if err != nil {
			return "Использование: /demo_add <ид> <имя>"
		}
		if err := api.InsertDemo(ctx, id, name); err != nil {
			return errorText(err)
		}
		return "Строка добавлена."

	case "demo_rename":
		fields := strings.Fields(args)
		if len(fields) != 2 {
			return "Использование: /demo_rename <старое имя> <новое имя>"
		}
		if err := api.RenameDemo(ctx, fields[0], fields[1]); err != nil {
			return errorText(err)
		}
		return "Имя изменено."

	case "demo_count":
		count, err := api.CountDemo(ctx)
		if err != nil {
			return errorText(err)
		}
		return fmt.Sprintf("Строк в demotable: %d", count)

	default:
		return helpText
	}
}

func errorText(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return fmt.Sprintf("Ошибка (%d): %s", apiErr.StatusCode, apiErr.Message)
		}
		return fmt.Sprintf("Ошибка (%d)", apiErr.StatusCode)
	}
	log.Printf("Ошибка API: %v", err)
	return "Ошибка: " + err.Error()
}
