package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"attractions/internal/client"
	"attractions/internal/config"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpText = `Команды:
/attractions <провинция>, <город>: достопримечательности города
/count <провинция>, <город>: сколько их в городе
/busy [N]: города, где достопримечательностей больше N
/avg: среднее число достопримечательностей на город по провинциям
/provinces: известные локации
/experiences <ид> <столбцы...>: впечатления (experienceID experienceName experienceDesc company price)
/budget <оператор> <цена>: впечатления по цене, например /budget <= 50
/completionists <ид>: кто прошел все впечатления достопримечательности
/status: состояние базы данных`

func main() {
	cfg := config.Load(".env")

	// Инициализация Telegram Bot API
	if cfg.BotToken == "" {
		log.Fatal("Не указан токен бота (BOT_TOKEN)")
	}
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatal("Ошибка инициализации бота:", err)
	}
	log.Printf("Запущен бот %s, API: %s", bot.Self.UserName, cfg.APIURL)

	api := client.New(cfg.APIURL)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	// Состояние диалогов
	pendingSearch := make(map[int64]bool) // userID -> ждем "провинция, город"

	for update := range updates {
		// --- CallbackQuery (inline buttons) ---
		if cq := update.CallbackQuery; cq != nil {
			bot.Request(tgbotapi.NewCallback(cq.ID, ""))
			fromID := cq.From.ID

			// Впечатления достопримечательности
			if attractionID, ok := parseExperiencesCallback(cq.Data); ok {
				columns := []string{"experienceName", "company", "price"}
				rows, err := withTimeout(func(ctx context.Context) ([][]any, error) {
					return api.ProjectExperiences(ctx, attractionID, columns)
				})
				if err != nil {
					bot.Send(tgbotapi.NewMessage(fromID, errorText(err)))
					continue
				}
				bot.Send(tgbotapi.NewMessage(fromID, formatRows(columns, rows)))
			}
			continue
		}

		// --- Обычные сообщения ---
		if update.Message == nil {
			continue
		}
		msg := update.Message
		chatID := msg.Chat.ID
		userID := msg.From.ID

		if msg.IsCommand() {
			delete(pendingSearch, userID)
			args := msg.CommandArguments()

			switch msg.Command() {
			case "start", "help":
				bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Здравствуйте, %s!\n\n%s", msg.From.FirstName, helpText)))

			case "status":
				status, err := withTimeout(api.CheckConnection)
				if err != nil {
					bot.Send(tgbotapi.NewMessage(chatID, "connection timed out"))
				} else {
					bot.Send(tgbotapi.NewMessage(chatID, status))
				}

			case "attractions":
				if strings.TrimSpace(args) == "" {
					pendingSearch[userID] = true
					bot.Send(tgbotapi.NewMessage(chatID, "Введите провинцию и город через запятую:"))
					continue
				}
				sendAttractions(bot, api, chatID, args)

			case "count":
				province, city, err := parseLocation(args)
				if err != nil {
					bot.Send(tgbotapi.NewMessage(chatID, "Используйте: /count <провинция>, <город>"))
					continue
				}
				count, err := withTimeout(func(ctx context.Context) (int, error) {
					return api.CountAttractions(ctx, province, city)
				})
				if err != nil {
					bot.Send(tgbotapi.NewMessage(chatID, errorText(err)))
				} else {
					bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("В %s (%s) достопримечательностей: %d", city, province, count)))
				}

			case "busy":
				minCount, err := parseID(args, 2)
				if err != nil {
					bot.Send(tgbotapi.NewMessage(chatID, "Используйте: /busy [N]"))
					continue
				}
				cities, err := withTimeout(func(ctx context.Context) ([]client.CityCount, error) {
					return api.CitiesWithMoreThan(ctx, minCount)
				})
				if err != nil {
					bot.Send(tgbotapi.NewMessage(chatID, errorText(err)))
					continue
				}
				var b strings.Builder
				fmt.Fprintf(&b, "Города, где достопримечательностей больше %d:\n", minCount)
				for _, c := range cities {
					fmt.Fprintf(&b, "%s (%s): %d\n", c.City, c.Province, c.Count)
				}
				bot.Send(tgbotapi.NewMessage(chatID, b.String()))

			case "avg":
				avgs, err := withTimeout(api.AveragePerProvince)
				if err != nil {
					bot.Send(tgbotapi.NewMessage(chatID, errorText(err)))
					continue
				}
				var b strings.Builder
				for _, a := range avgs {
					fmt.Fprintf(&b, "%s: %.2f\n", a.Province, a.Average)
				}
				bot.Send(tgbotapi.NewMessage(chatID, "Среднее на город:\n"+b.String()))

			case "provinces":
				locs, err := withTimeout(api.Locations)
				if err != nil {
					bot.Send(tgbotapi.NewMessage(chatID, errorText(err)))
					continue
				}
				var b strings.Builder
				for _, l := range locs {
					fmt.Fprintf(&b, "%s, %s\n", l.Province, l.City)
				}
				bot.Send(tgbotapi.NewMessage(chatID, b.String()))

			case "experiences":
				attractionID, columns, err := parseProjection(args)
				if err != nil {
					bot.Send(tgbotapi.NewMessage(chatID, "Используйте: /experiences <ид> <столбцы...>"))
					continue
				}
				rows, err := withTimeout(func(ctx context.Context) ([][]any, error) {
					return api.ProjectExperiences(ctx, attractionID, columns)
				})
				if err != nil {
					bot.Send(tgbotapi.NewMessage(chatID, errorText(err)))
					continue
				}
				bot.Send(tgbotapi.NewMessage(chatID, formatRows(columns, rows)))

			case "budget":
				op, price, err := parseBudget(args)
				if err != nil {
					bot.Send(tgbotapi.NewMessage(chatID, "Используйте: /budget <оператор> <цена>"))
					continue
				}
				exps, err := withTimeout(func(ctx context.Context) ([]client.ExperiencePrice, error) {
					return api.FilterExperiences(ctx, price, op)
				})
				if err != nil {
					bot.Send(tgbotapi.NewMessage(chatID, errorText(err)))
					continue
				}
				if len(exps) == 0 {
					bot.Send(tgbotapi.NewMessage(chatID, "Ничего не найдено."))
					continue
				}
				var b strings.Builder
				for _, e := range exps {
					fmt.Fprintf(&b, "#%d %s: %.2f\n", e.ID, e.Name, e.Price)
				}
				bot.Send(tgbotapi.NewMessage(chatID, b.String()))

			case "completionists":
				attractionID, err := parseID(args, -1)
				if err != nil {
					bot.Send(tgbotapi.NewMessage(chatID, "Используйте: /completionists <ид>"))
					continue
				}
				users, err := withTimeout(func(ctx context.Context) ([]client.User, error) {
					return api.FindCompletionists(ctx, attractionID)
				})
				if err != nil {
					bot.Send(tgbotapi.NewMessage(chatID, errorText(err)))
					continue
				}
				if len(users) == 0 {
					bot.Send(tgbotapi.NewMessage(chatID, "Никто еще не прошел все впечатления."))
					continue
				}
				names := make([]string, len(users))
				for i, u := range users {
					names[i] = u.Name
				}
				bot.Send(tgbotapi.NewMessage(chatID, "Прошли все впечатления: "+strings.Join(names, ", ")))

			default:
				bot.Send(tgbotapi.NewMessage(chatID, helpText))
			}
			continue
		}

		// Обработка «ожидающих» состояний
		if pendingSearch[userID] {
			delete(pendingSearch, userID)
			sendAttractions(bot, api, chatID, msg.Text)
			continue
		}

		bot.Send(tgbotapi.NewMessage(chatID, helpText))
	}
}

// sendAttractions ищет достопримечательности и отправляет список с кнопками впечатлений.
func sendAttractions(bot *tgbotapi.BotAPI, api *client.Client, chatID int64, args string) {
	province, city, err := parseLocation(args)
	if err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, "Используйте: <провинция>, <город>"))
		return
	}
	attractions, err := withTimeout(func(ctx context.Context) ([]client.Attraction, error) {
		return api.GetAttractions(ctx, province, city)
	})
	if err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, errorText(err)))
		return
	}

	reply := tgbotapi.NewMessage(chatID, formatAttractions(province, city, attractions))
	if len(attractions) > 0 {
		rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(attractions))
		for _, a := range attractions {
			btn := tgbotapi.NewInlineKeyboardButtonData(buttonLabel(a.Name), fmt.Sprintf("%s%d", experiencesPrefix, a.ID))
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(btn))
		}
		reply.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	}
	if _, err := bot.Send(reply); err != nil {
		log.Printf("Не удалось отправить список достопримечательностей: %v", err)
	}
}

// withTimeout выполняет запрос к API с ограничением по времени.
func withTimeout[T any](fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	return fn(ctx)
}

// errorText переводит ошибку клиента в сообщение пользователю.
func errorText(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrNoAttributes):
		return "Выберите хотя бы один столбец."
	case errors.As(err, &apiErr) && apiErr.StatusCode < 500:
		return "Запрос отклонен: " + apiErr.Message
	default:
		log.Printf("Ошибка API: %v", err)
		return "Сервис временно недоступен."
	}
}
