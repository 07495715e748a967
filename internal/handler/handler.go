package handler

import (
	"context"
	"log"
	"net/http"

	"attractions/internal/model"

	"github.com/gin-gonic/gin"
)

// AttractionService: операции над достопримечательностями, нужные обработчикам.
type AttractionService interface {
	FindByLocation(ctx context.Context, province, city string) ([]model.AttractionSummary, error)
	AddAttraction(ctx context.Context, a model.NewAttraction) (int, error)
	UpdateAttraction(ctx context.Context, u model.AttractionUpdate) error
	DeleteAttraction(ctx context.Context, id int) error
	CountAttractions(ctx context.Context, province, city string) (int, error)
	CitiesWithMoreThan(ctx context.Context, minCount int) ([]model.CityCount, error)
	AveragePerProvince(ctx context.Context) ([]model.ProvinceAverage, error)
	Repopulate(ctx context.Context) ([]model.AttractionSummary, error)
}

// ExperienceService: операции над впечатлениями.
type ExperienceService interface {
	ProjectExperiences(ctx context.Context, attractionID int, columns []string) ([][]any, error)
	FilterByBudget(ctx context.Context, price float64, comparison string) ([]model.ExperiencePrice, error)
	FindCompletionists(ctx context.Context, attractionID int) ([]model.User, error)
}

// DemoService: операции над демонстрационной таблицей.
type DemoService interface {
	List(ctx context.Context) ([]model.DemoRow, error)
	Insert(ctx context.Context, id int, name string) error
	UpdateName(ctx context.Context, oldName, newName string) error
	Count(ctx context.Context) (int, error)
}

// LocationService: справочник локаций.
type LocationService interface {
	ListLocations(ctx context.Context) ([]model.Location, error)
}

// UserService: пользователи и пройденные впечатления.
type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, name string) (int, error)
	CompleteExperience(ctx context.Context, userID, experienceID int) error
}

// StatusService: проверка подключения к базе.
type StatusService interface {
	Check(ctx context.Context) bool
}

// Handler структурирует зависимости сервисов для обработки HTTP-запросов.
type Handler struct {
	AttractionService AttractionService
	ExperienceService ExperienceService
	DemoService       DemoService
	LocationService   LocationService
	UserService       UserService
	StatusService     StatusService
}

// NewHandler создает новый Handler с внедрением зависимостей (сервисов).
func NewHandler(as AttractionService, es ExperienceService, ds DemoService, ls LocationService, us UserService, ss StatusService) *Handler {
	return &Handler{
		AttractionService: as,
		ExperienceService: es,
		DemoService:       ds,
		LocationService:   ls,
		UserService:       us,
		StatusService:     ss,
	}
}

// Register регистрирует маршруты API.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/check-db-connection", h.CheckDBConnection)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/locations", h.ListLocations)

	r.POST("/get-attractions", h.GetAttractions)
	r.POST("/add-attraction", h.AddAttraction)
	r.PUT("/update-attraction", h.UpdateAttraction)
	r.DELETE("/delete-attraction", h.DeleteAttraction)
	r.POST("/count-attractions", h.CountAttractions)
	r.POST("/count-attractions-having", h.CountAttractionsHaving)
	r.GET("/avg-attractions-per-province", h.AvgAttractionsPerProvince)
	r.GET("/initiate-table", h.InitiateTable)

	r.POST("/project-tables", h.ProjectTables)
	r.POST("/filter-experiences", h.FilterExperiences)
	r.POST("/find-completionists", h.FindCompletionists)
	r.GET("/users", h.ListUsers)
	r.POST("/add-user", h.AddUser)
	r.POST("/complete-experience", h.CompleteExperience)

	r.GET("/demotable", h.GetDemotable)
	r.POST("/insert-demotable", h.InsertDemotable)
	r.POST("/update-name-demotable", h.UpdateNameDemotable)
	r.GET("/count-demotable", h.CountDemotable)
}

// CheckDBConnection обработчик для GET /check-db-connection: отвечает простым текстом.
func (h *Handler) CheckDBConnection(c *gin.Context) {
	if h.StatusService.Check(c.Request.Context()) {
		c.String(http.StatusOK, "connected")
		return
	}
	c.String(http.StatusOK, "unable to connect")
}

// ListLocations обработчик для GET /locations: возвращает список всех локаций.
func (h *Handler) ListLocations(c *gin.Context) {
	locations, err := h.LocationService.ListLocations(c.Request.Context())
	if err != nil {
		abort(c, http.StatusInternalServerError, err, gin.H{"data": []model.Location{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": locations})
}

// abort логирует ошибку с идентификатором запроса и отвечает body, дополненным полем error.
func abort(c *gin.Context, status int, err error, body gin.H) {
	log.Printf("[%s] %s %s: %v", c.GetString(requestIDKey), c.Request.Method, c.Request.URL.Path, err)
	body["error"] = err.Error()
	c.AbortWithStatusJSON(status, body)
}
