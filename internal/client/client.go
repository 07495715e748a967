// Package client: HTTP-клиент API достопримечательностей. Повторяет поведение
// браузерного клиента: приводит ввод к нижнему регистру, не отправляет заведомо
// пустые запросы и разбирает JSON-конверты ответов.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrMissingLocation: не указаны провинция или город.
	ErrMissingLocation = errors.New("укажите провинцию и город")
	// ErrNoAttributes: для проекции не выбран ни один столбец.
	ErrNoAttributes = errors.New("выберите хотя бы один столбец")
)

// APIError: ответ сервера с кодом не 2xx.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("сервер вернул статус %d", e.StatusCode)
	}
	return fmt.Sprintf("сервер вернул статус %d: %s", e.StatusCode, e.Message)
}

// Client обращается к API по BaseURL.
type Client struct {
	BaseURL string
	Client  *http.Client
}

// New создает клиент с таймаутом запросов по умолчанию.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Sanitize приводит текстовый ввод к виду, в котором он хранится в базе.
func Sanitize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Attraction: строка результата поиска.
type Attraction struct {
	ID   int
	Name string
}

// UnmarshalJSON разбирает строку вида [id, name].
func (a *Attraction) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &[]any{&a.ID, &a.Name})
}

// NewAttraction: поля формы добавления достопримечательности.
type NewAttraction struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Open        string  `json:"open"`
	Close       string  `json:"close"`
	Lat         float64 `json:"lat"`
	Long        float64 `json:"long"`
	Category    string  `json:"category"`
	Province    string  `json:"province"`
	City        string  `json:"city"`
}

// CityCount: [province, city, count].
type CityCount struct {
	Province string
	City     string
	Count    int
}

func (c *CityCount) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &[]any{&c.Province, &c.City, &c.Count})
}

// ProvinceAverage: [province, average].
type ProvinceAverage struct {
	Province string
	Average  float64
}

func (p *ProvinceAverage) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &[]any{&p.Province, &p.Average})
}

// ExperiencePrice: [id, name, price].
type ExperiencePrice struct {
	ID    int
	Name  string
	Price float64
}

func (e *ExperiencePrice) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &[]any{&e.ID, &e.Name, &e.Price})
}

// User: [userID, userName].
type User struct {
	ID   int
	Name string
}

func (u *User) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &[]any{&u.ID, &u.Name})
}

// Location: пара провинция/город.
type Location struct {
	Province string `json:"province"`
	City     string `json:"city"`
}

// CheckConnection возвращает текст статуса подключения к базе ("connected" / "unable to connect").
func (c *Client) CheckConnection(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/check-db-connection", nil)
	if err != nil {
		return "", err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode}
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// GetAttractions ищет достопримечательности города.
func (c *Client) GetAttractions(ctx context.Context, province, city string) ([]Attraction, error) {
	province, city = Sanitize(province), Sanitize(city)
	if province == "" || city == "" {
		return nil, ErrMissingLocation
	}
	var out struct {
		Data []Attraction `json:"data"`
	}
	err := c.do(ctx, http.MethodPost, "/get-attractions", map[string]string{"province": province, "city": city}, &out)
	return out.Data, err
}

// AddAttraction добавляет достопримечательность и возвращает ее идентификатор.
func (c *Client) AddAttraction(ctx context.Context, a NewAttraction) (int, error) {
	a.Name = Sanitize(a.Name)
	a.Description = Sanitize(a.Description)
	a.Category = Sanitize(a.Category)
	a.Province = Sanitize(a.Province)
	a.City = Sanitize(a.City)
	if a.Province == "" || a.City == "" {
		return 0, ErrMissingLocation
	}
	var out struct {
		Data bool `json:"data"`
		ID   int  `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/add-attraction", a, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// DeleteAttraction удаляет достопримечательность.
func (c *Client) DeleteAttraction(ctx context.Context, attractionID int) error {
	return c.do(ctx, http.MethodDelete, "/delete-attraction", map[string]int{"attractionID": attractionID}, nil)
}

// CountAttractions возвращает число достопримечательностей города.
func (c *Client) CountAttractions(ctx context.Context, province, city string) (int, error) {
	province, city = Sanitize(province), Sanitize(city)
	if province == "" || city == "" {
		return 0, ErrMissingLocation
	}
	var out struct {
		Count int `json:"count"`
	}
	err := c.do(ctx, http.MethodPost, "/count-attractions", map[string]string{"province": province, "city": city}, &out)
	return out.Count, err
}

// CitiesWithMoreThan возвращает города, где достопримечательностей больше minCount.
func (c *Client) CitiesWithMoreThan(ctx context.Context, minCount int) ([]CityCount, error) {
	var out struct {
		Data []CityCount `json:"data"`
	}
	err := c.do(ctx, http.MethodPost, "/count-attractions-having", map[string]int{"minCount": minCount}, &out)
	return out.Data, err
}

// AveragePerProvince возвращает среднее число достопримечательностей на город по провинциям.
func (c *Client) AveragePerProvince(ctx context.Context) ([]ProvinceAverage, error) {
	var out struct {
		Data []ProvinceAverage `json:"data"`
	}
	err := c.do(ctx, http.MethodGet, "/avg-attractions-per-province", nil, &out)
	return out.Data, err
}

// ProjectExperiences запрашивает выбранные столбцы впечатлений достопримечательности.
func (c *Client) ProjectExperiences(ctx context.Context, attractionID int, columns []string) ([][]any, error) {
	if len(columns) == 0 {
		return nil, ErrNoAttributes
	}
	var out struct {
		Rows [][]any `json:"projectedExperiences"`
	}
	body := map[string]any{"id": attractionID, "toSelect": columns}
	err := c.do(ctx, http.MethodPost, "/project-tables", body, &out)
	return out.Rows, err
}

// FilterExperiences возвращает впечатления, цена которых удовлетворяет сравнению.
func (c *Client) FilterExperiences(ctx context.Context, price float64, comparison string) ([]ExperiencePrice, error) {
	var out struct {
		Rows []ExperiencePrice `json:"filteredExperiences"`
	}
	body := map[string]any{"price": price, "comparison": strings.TrimSpace(comparison)}
	err := c.do(ctx, http.MethodPost, "/filter-experiences", body, &out)
	return out.Rows, err
}

// FindCompletionists возвращает пользователей, прошедших все впечатления достопримечательности.
func (c *Client) FindCompletionists(ctx context.Context, attractionID int) ([]User, error) {
	var out struct {
		Data []User `json:"data"`
	}
	err := c.do(ctx, http.MethodPost, "/find-completionists", map[string]int{"attractionID": attractionID}, &out)
	return out.Data, err
}

// Locations возвращает все известные локации.
func (c *Client) Locations(ctx context.Context) ([]Location, error) {
	var out struct {
		Data []Location `json:"data"`
	}
	err := c.do(ctx, http.MethodGet, "/locations", nil, &out)
	return out.Data, err
}

// AttractionUpdate: изменяемые поля достопримечательности. Незаполненные поля не отправляются
// и на сервере сохраняют прежние значения.
type AttractionUpdate struct {
	ID          int    `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Open        string `json:"open,omitempty"`
	Close       string `json:"close,omitempty"`
	Category    string `json:"category,omitempty"`
}

// UpdateAttraction изменяет описательные поля достопримечательности.
func (c *Client) UpdateAttraction(ctx context.Context, u AttractionUpdate) error {
	u.Name = Sanitize(u.Name)
	u.Description = Sanitize(u.Description)
	u.Category = Sanitize(u.Category)
	return c.do(ctx, http.MethodPut, "/update-attraction", u, nil)
}

// Repopulate перезаливает исходные данные и возвращает все достопримечательности.
func (c *Client) Repopulate(ctx context.Context) ([]Attraction, error) {
	var out struct {
		Data []Attraction `json:"data"`
	}
	err := c.do(ctx, http.MethodGet, "/initiate-table", nil, &out)
	return out.Data, err
}

// DemoRow: строка demotable.
type DemoRow struct {
	ID   int
	Name string
}

func (d *DemoRow) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &[]any{&d.ID, &d.Name})
}

func (c *Client) Demotable(ctx context.Context) ([]DemoRow, error) {
	var out struct {
		Data []DemoRow `json:"data"`
	}
	err := c.do(ctx, http.MethodGet, "/demotable", nil, &out)
	return out.Data, err
}

func (c *Client) InsertDemo(ctx context.Context, id int, name string) error {
	return c.do(ctx, http.MethodPost, "/insert-demotable", map[string]any{"id": id, "name": name}, nil)
}

func (c *Client) RenameDemo(ctx context.Context, oldName, newName string) error {
	return c.do(ctx, http.MethodPost, "/update-name-demotable", map[string]string{"oldName": oldName, "newName": newName}, nil)
}

func (c *Client) CountDemo(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	err := c.do(ctx, http.MethodGet, "/count-demotable", nil, &out)
	return out.Count, err
}

// Users возвращает всех пользователей.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var out struct {
		Data []User `json:"data"`
	}
	err := c.do(ctx, http.MethodGet, "/users", nil, &out)
	return out.Data, err
}

// CompleteExperience отмечает впечатление пройденным пользователем.
func (c *Client) CompleteExperience(ctx context.Context, userID, experienceID int) error {
	return c.do(ctx, http.MethodPost, "/complete-experience", map[string]int{"userID": userID, "experienceID": experienceID}, nil)
}

// do отправляет JSON-запрос и разбирает ответ в out (если out не nil).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{StatusCode: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("некорректный ответ %s: %w", path, err)
	}
	return nil
}
