package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidColumn: запрошен столбец, которого нет в списке разрешенных.
	ErrInvalidColumn = errors.New("недопустимый столбец")
	// ErrNoColumns: для проекции не выбрано ни одного столбца.
	ErrNoColumns = errors.New("не выбрано ни одного столбца")
	// ErrInvalidComparison: неизвестный оператор сравнения цены.
	ErrInvalidComparison = errors.New("недопустимый оператор сравнения")
)

// ExperiencePrice описывает строку фильтра по бюджету, в JSON это [id, name, price].
type ExperiencePrice struct {
	ID    int     `db:"experience_id"`
	Name  string  `db:"experience_name"`
	Price float64 `db:"price"`
}

func (e ExperiencePrice) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.ID, e.Name, e.Price})
}

// ExperienceColumn: столбец experience_offered, разрешенный для проекции.
type ExperienceColumn string

// Имена столбцов в SQL. В запрос подставляются только они.
const (
	ColumnExperienceID   ExperienceColumn = "experience_id"
	ColumnExperienceName ExperienceColumn = "experience_name"
	ColumnExperienceDesc ExperienceColumn = "experience_desc"
	ColumnCompany        ExperienceColumn = "company"
	ColumnPrice          ExperienceColumn = "price"
)

// experienceColumns сопоставляет имена, которые присылает клиент, со столбцами таблицы.
var experienceColumns = map[string]ExperienceColumn{
	"experienceid":    ColumnExperienceID,
	"experience_id":   ColumnExperienceID,
	"experiencename":  ColumnExperienceName,
	"experience_name": ColumnExperienceName,
	"experiencedesc":  ColumnExperienceDesc,
	"experience_desc": ColumnExperienceDesc,
	"company":         ColumnCompany,
	"price":           ColumnPrice,
}

// ParseExperienceColumns проверяет выбранные клиентом столбцы по списку разрешенных.
// Порядок сохраняется, повторы отбрасываются.
func ParseExperienceColumns(names []string) ([]ExperienceColumn, error) {
	if len(names) == 0 {
		return nil, ErrNoColumns
	}
	cols := make([]ExperienceColumn, 0, len(names))
	seen := make(map[ExperienceColumn]bool, len(names))
	for _, name := range names {
		col, ok := experienceColumns[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidColumn, name)
		}
		if seen[col] {
			continue
		}
		seen[col] = true
		cols = append(cols, col)
	}
	return cols, nil
}

// PriceComparison: оператор сравнения цены в SQL.
type PriceComparison string

const (
	PriceLess         PriceComparison = "<"
	PriceLessEqual    PriceComparison = "<="
	PriceEqual        PriceComparison = "="
	PriceGreaterEqual PriceComparison = ">="
	PriceGreater      PriceComparison = ">"
)

var priceComparisons = map[string]PriceComparison{
	"<":       PriceLess,
	"less":    PriceLess,
	"<=":      PriceLessEqual,
	"=":       PriceEqual,
	"equal":   PriceEqual,
	">=":      PriceGreaterEqual,
	">":       PriceGreater,
	"greater": PriceGreater,
}

// ParsePriceComparison переводит значение из формы клиента в оператор SQL.
func ParsePriceComparison(s string) (PriceComparison, error) {
	cmp, ok := priceComparisons[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidComparison, s)
	}
	return cmp, nil
}
